package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/fmlgen/internal/app"
)

func newListCmd(v *viper.Viper, outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "List features, property types and resolved defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appConfig(v, args)
			if err != nil {
				return err
			}
			a := app.NewApp(outW, cfg, app.DefaultLoader())
			defer a.Close()

			return a.List(cmd.Context(), outW)
		},
	}
}
