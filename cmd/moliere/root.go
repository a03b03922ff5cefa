package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"moliere/pkg/logging"
)

var (
	cfgFile string

	// logger is built in PersistentPreRunE and shared by all commands.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "moliere",
	Short: "Render HTML and CSS to positioned boxes and pixels",
	Long: `moliere is a minimal browser engine core: it parses HTML and CSS,
resolves the cascade, lays out a box tree, and can paint the result to
a PNG or dump any intermediate stage for inspection.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		l, err := logging.New(logging.Config{
			Level:      viper.GetString("log.level"),
			File:       viper.GetString("log.file"),
			MaxSizeMB:  viper.GetInt("log.max-size"),
			MaxBackups: viper.GetInt("log.max-backups"),
		})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./moliere.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also log JSON to this rotated file")

	cobra.CheckErr(viper.BindPFlag("log.level", pf.Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log.file", pf.Lookup("log-file")))
	viper.SetDefault("log.max-size", 10)
	viper.SetDefault("log.max-backups", 3)
}

// initConfig layers configuration: flags, then MOLIERE_* environment
// variables, then an optional YAML config file.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("moliere")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MOLIERE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}
