package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWith_AddsAttributes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	FromContext(With(ctx, "feature", "homescreen")).Info("rendering")

	assert.Contains(t, buf.String(), "feature=homescreen")
	assert.Contains(t, buf.String(), "msg=rendering")
}

func TestFromContext_PanicsWithoutLogger(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { FromContext(context.Background()) })
	assert.NotPanics(t, func() { FromContext(Discard(context.Background())).Info("dropped") })
}
