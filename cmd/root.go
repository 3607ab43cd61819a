package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jsphweid/pianosight/config"
	"github.com/jsphweid/pianosight/constants"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "pianosight",
	Short: "Piano sight-reading exercise generator",
	Long: `pianosight generates short two-staff piano sight-reading exercises for a
key, time signature, length and difficulty, and renders them as ABC, MIDI,
JSON or notation layout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		path := cfgFile
		if path == "" {
			path = constants.GetConfigPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default $PIANOSIGHT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
