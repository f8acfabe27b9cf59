package app

import (
	"context"
	"io"

	"github.com/olekukonko/tablewriter"
)

// List prints every feature property with its type and resolved default as
// a table.
func (a *App) List(ctx context.Context, w io.Writer) error {
	m, err := a.Load(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Feature", "Property", "Type", "Default"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	properties := 0
	for _, f := range m.Features {
		for _, p := range f.Properties {
			table.Append([]string{f.Name, p.Name, p.Type.FriendlyName(), p.Default.GoString()})
			properties++
		}
	}
	table.Render()

	a.logger.Debug("Listed manifest.", "features", len(m.Features), "properties", properties)
	return nil
}
