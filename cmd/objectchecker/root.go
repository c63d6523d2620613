package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Gobd/objectchecker/internal/logging"
	"github.com/spf13/cobra"
)

// errInvalid signals a failed check; the result was already printed.
var errInvalid = errors.New("value is not valid")

var logger = logging.NewNop()

var rootCmd = &cobra.Command{
	Use:   "objectchecker",
	Short: "objectchecker validates values against directive schemas",
	Long: `objectchecker validates JSON or YAML values against schemas made of
$-prefixed directives, and builds documentation and samples from them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(name)
		if err != nil {
			return err
		}
		logger = logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", slog.LevelWarn.String(), "Log level (debug, info, warn, error)")
}
