package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/fmlgen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const rootLongDescription = `fmlgen generates the feature registration code of a feature manifest.

Manifests are HCL (.hcl) or YAML (.yaml, .yml) files declaring the registry
object, enums, objects and features with typed, defaulted properties. Paths
may name single files or directories, which are searched recursively.`

// Run executes the fmlgen command line with args, writing command output to
// outW. Usage errors are reported as an *ExitError with code 2.
func Run(ctx context.Context, args []string, outW io.Writer) error {
	slog.Debug("CLI parser started.", "args", args)
	root := NewRootCmd(outW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// NewRootCmd builds the fmlgen command tree. The tree owns its own viper
// instance.
func NewRootCmd(outW io.Writer) *cobra.Command {
	v := newViper()
	var configPath string

	cmd := &cobra.Command{
		Use:           "fmlgen",
		Short:         "Feature manifest code generator",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfigFile(v, configPath); err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(outW)
	cmd.SetErr(outW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, configFlagName, "", "config file (default ./fmlgen.yaml when present)")
	flags.String(logLevelFlagName, defaultLogLevel, "logging level: debug, info, warn or error")
	bindFlagToConfig(v, flags.Lookup(logLevelFlagName), logLevelKey)
	flags.String(logFormatFlagName, defaultLogFormat, "log output format: text or json")
	bindFlagToConfig(v, flags.Lookup(logFormatFlagName), logFormatKey)
	flags.String(logFileFlagName, "", "write logs to this rotating file instead of the terminal")
	bindFlagToConfig(v, flags.Lookup(logFileFlagName), logFileKey)

	cmd.AddCommand(newGenerateCmd(v, outW), newListCmd(v, outW))
	return cmd
}

// appConfig merges args with the viper layers into a validated app.Config.
// Positional paths replace the configured manifest list.
func appConfig(v *viper.Viper, args []string) (*app.Config, error) {
	paths := args
	if len(paths) == 0 {
		paths = v.GetStringSlice(manifestsKey)
	}

	cfg, err := app.NewConfig(app.Config{
		ManifestPaths: paths,
		Targets:       v.GetStringSlice(targetsKey),
		OutputDir:     v.GetString(outputKey),
		Check:         v.GetBool(checkKey),
		Workers:       v.GetInt(workersKey),
		LogFormat:     v.GetString(logFormatKey),
		LogLevel:      v.GetString(logLevelKey),
		LogFile:       v.GetString(logFileKey),
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI configuration resolved.", "config", cfg)
	return cfg, nil
}
