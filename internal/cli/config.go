package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configBaseName   = "fmlgen"
	configFolderPath = "."
	envPrefix        = "FMLGEN"

	configFlagName    = "config"
	logLevelFlagName  = "log-level"
	logFormatFlagName = "log-format"
	logFileFlagName   = "log-file"
	targetFlagName    = "target"
	outputFlagName    = "output"
	checkFlagName     = "check"
	workersFlagName   = "workers"

	manifestsKey = "manifests"
	logLevelKey  = "log.level"
	logFormatKey = "log.format"
	logFileKey   = "log.file"
	targetsKey   = "generate.targets"
	outputKey    = "generate.output"
	checkKey     = "generate.check"
	workersKey   = "generate.workers"

	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultOutputDir = "."
	defaultWorkers   = 4
)

// newViper returns a viper instance with fmlgen's defaults and environment
// binding. Each command tree owns one, so tests never share state.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(manifestsKey, []string{})
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logFormatKey, defaultLogFormat)
	v.SetDefault(logFileKey, "")
	v.SetDefault(targetsKey, []string{})
	v.SetDefault(outputKey, defaultOutputDir)
	v.SetDefault(checkKey, false)
	v.SetDefault(workersKey, defaultWorkers)
	return v
}

// readConfigFile loads path, or ./fmlgen.yaml when path is empty. Only the
// implicit file may be missing.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configBaseName)
		v.SetConfigType("yaml")
		v.AddConfigPath(configFolderPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(v.BindPFlag(key, flag))
}
