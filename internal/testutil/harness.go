package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/fmlgen/internal/app"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// Generated maps each target name to the source file it produced.
	Generated map[string]string
}

// Option adjusts the app configuration of a harness run.
type Option func(*app.Config)

// WithCheck runs the app in check mode.
func WithCheck() Option {
	return func(cfg *app.Config) { cfg.Check = true }
}

// WithWorkers sets the number of features rendered concurrently.
func WithWorkers(n int) Option {
	return func(cfg *app.Config) { cfg.Workers = n }
}

// WithOutputDir writes generated files into dir instead of a fresh one.
func WithOutputDir(dir string) Option {
	return func(cfg *app.Config) { cfg.OutputDir = dir }
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, targets []string, opts ...Option) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, targets, opts...)
}

// RunIntegrationTestWithContext writes files (relative path -> content) into
// a temporary manifest directory, generates code for targets and reads back
// every produced file.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, targets []string, opts ...Option) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	manifestDir := filepath.Join(tmpDir, "manifests")
	require.NoError(t, os.Mkdir(manifestDir, 0o755))
	for name, content := range files {
		filePath := filepath.Join(manifestDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := app.Config{
		ManifestPaths: []string{manifestDir},
		Targets:       targets,
		OutputDir:     filepath.Join(tmpDir, "out"),
		LogLevel:      "debug",
		LogFormat:     "text",
		Workers:       4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	testApp, logBuffer := app.SetupAppTest(t, appConfig)
	generatedFiles, runErr := testApp.Generate(ctx)

	generated := make(map[string]string, len(generatedFiles))
	for _, f := range generatedFiles {
		content, err := os.ReadFile(f.Path)
		if err != nil {
			continue // check mode: the file may not exist
		}
		generated[f.Target] = string(content)
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Generated: generated,
	}
}
