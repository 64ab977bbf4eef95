package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/propkeygen/pkg/manifest"
)

const levelTrace = slog.Level(-8)

var (
	configFiles []string
	level       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "propkeygen",
	Short:         "generate constants for properties file keys",
	Long:          "Generate Java or Go source holding one string constant per key of a set of properties files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		if hint := errors.FlattenHints(err); hint != "" {
			pterm.Info.Println(hint)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error, debug+1, etc)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")
}

func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return levelTrace, nil
	}
	var ll slog.Level
	if err := ll.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Wrapf(err, "invalid log level %q", s)
	}
	return ll, nil
}

func setLogger(ll slog.Level) *slog.Logger {
	l := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: false,
		Level:     ll,
	}))
	slog.SetDefault(l)
	return l
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	ll, err := parseLevel(level)
	cobra.CheckErr(err)
	l := setLogger(ll)

	if len(configFiles) > 0 {
		// Use config file from the flag.
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(manifest.DefaultName, ".yaml"))
	}

	viper.SetEnvPrefix("propkeygen")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		l.Debug("using config file(s)", "config", viper.ConfigFileUsed())
	} else {
		l.Debug("unable to use config file(s)", "error", err, "config", viper.ConfigFileUsed())
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			configBytes, err := os.ReadFile(file)
			if err != nil {
				l.Warn("failed to read config file", "error", err, "file", file)
				continue
			}
			if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
				l.Warn("failed to merge config file", "error", err, "file", file)
			} else {
				l.Debug("merged config file", "file", file)
			}
		}
	}

	// log.level from the config applies unless --level was given.
	if lvl := viper.GetString("log.level"); lvl != "" && !rootCmd.PersistentFlags().Changed("level") {
		ll, err := parseLevel(lvl)
		cobra.CheckErr(err)
		setLogger(ll)
	}
}
