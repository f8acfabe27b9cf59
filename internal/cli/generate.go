package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/fmlgen/internal/app"
)

const generateLongDescription = `Generate one registration source file per target into the output directory.

The file is named <object_name>Features with the target's extension. With
--check nothing is written: each file is compared against the one on disk,
a diff is printed for every stale file and the command exits with code 1.`

func newGenerateCmd(v *viper.Viper, outW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate feature registration code",
		Long:  generateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appConfig(v, args)
			if err != nil {
				return err
			}
			a := app.NewApp(outW, cfg, app.DefaultLoader())
			defer a.Close()

			files, err := a.Generate(cmd.Context())
			var stale *app.StaleError
			if errors.As(err, &stale) {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			if err != nil {
				return err
			}
			printGenerated(outW, files, cfg.Check)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceP(targetFlagName, "t", nil, "target backend, repeatable (kotlin, swift)")
	bindFlagToConfig(v, flags.Lookup(targetFlagName), targetsKey)
	flags.StringP(outputFlagName, "o", defaultOutputDir, "output directory for generated files")
	bindFlagToConfig(v, flags.Lookup(outputFlagName), outputKey)
	flags.Bool(checkFlagName, false, "verify generated files are up to date instead of writing them")
	bindFlagToConfig(v, flags.Lookup(checkFlagName), checkKey)
	flags.Int(workersFlagName, defaultWorkers, "number of features rendered concurrently")
	bindFlagToConfig(v, flags.Lookup(workersFlagName), workersKey)

	return cmd
}

func printGenerated(w io.Writer, files []app.GeneratedFile, check bool) {
	verb := "wrote"
	if check {
		verb = "up to date"
	}
	ok := color.New(color.FgGreen).SprintFunc()
	for _, f := range files {
		fmt.Fprintf(w, "%s %s (%s)\n", ok(verb), f.Path, f.Target)
	}
}
