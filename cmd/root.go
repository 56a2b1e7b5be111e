// Package cmd implements the prompt-editor command line.
package cmd

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prompt-editor/config"
	"prompt-editor/logger"
)

var (
	cfgFile  string
	staticFS fs.FS

	rootCmd = &cobra.Command{
		Use:   "prompt-editor",
		Short: "Keyword prompt editor for image-generation tools",
		Long: "prompt-editor builds the prompt and negative prompt strings used by image-generation tools " +
			"from a library of categorized keywords. Run `serve` for the browser editor, or use " +
			"`render` and `normalize` on keyword files directly.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			slog.SetDefault(logger.New(cfg.Logging, os.Stderr))
			loaded = cfg
			return nil
		},
	}

	// loaded is the configuration resolved before any command runs.
	loaded *config.Config
)

// Execute runs the root command. static holds the editor page served by
// `serve`.
func Execute(static fs.FS) {
	staticFS = static
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.prompt-editor.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "json", "log format: json or text")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	config.BindEnv(viper.GetViper())
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".prompt-editor")
		}
	}
	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "could not read config %s: %v\n", cfgFile, err)
	}
}
