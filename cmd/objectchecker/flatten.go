package main

import (
	"io"

	oc "github.com/Gobd/objectchecker"
	"github.com/spf13/cobra"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Print the flattened form of a schema",
	Long:  `Prints every nested field of a schema keyed by its dotted path, list elements as "0".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, _ := cmd.Flags().GetString("schema")
		return runFlatten(cmd.OutOrStdout(), cmd.InOrStdin(), schema)
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a sample value generated from a schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, _ := cmd.Flags().GetString("schema")
		return runSample(cmd.OutOrStdout(), cmd.InOrStdin(), schema)
	},
}

func init() {
	for _, c := range []*cobra.Command{flattenCmd, sampleCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringP("schema", "s", "-", "Schema file (JSON or YAML), - for stdin")
	}
}

func runFlatten(w io.Writer, stdin io.Reader, path string) error {
	s, err := loadSchema(path, stdin)
	if err != nil {
		return err
	}
	return printJSON(w, oc.Flatten(s))
}

func runSample(w io.Writer, stdin io.Reader, path string) error {
	s, err := loadSchema(path, stdin)
	if err != nil {
		return err
	}
	return printJSON(w, oc.GenerateSample(s))
}
