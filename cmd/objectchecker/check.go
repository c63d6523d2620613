package main

import (
	"io"

	oc "github.com/Gobd/objectchecker"
	"github.com/Gobd/objectchecker/transform"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	schema   string
	value    string
	optional bool
	strict   bool
	trim     bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a value against a schema",
	Long: `Checks a JSON or YAML value against a schema and prints the result as JSON.
Exits with status 1 when the value is not valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := checkOptions{}
		opts.schema, _ = cmd.Flags().GetString("schema")
		opts.value, _ = cmd.Flags().GetString("value")
		opts.optional, _ = cmd.Flags().GetBool("optional")
		opts.strict, _ = cmd.Flags().GetBool("strict")
		opts.trim, _ = cmd.Flags().GetBool("trim")
		return runCheck(cmd.OutOrStdout(), cmd.InOrStdin(), opts)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("schema", "s", "", "Schema file (JSON or YAML)")
	checkCmd.Flags().StringP("value", "v", "-", "Value file (JSON or YAML), - for stdin")
	checkCmd.Flags().Bool("optional", false, "Treat fields as optional unless marked $isRequired")
	checkCmd.Flags().Bool("strict", false, "Reject documentation keys ($desc, $name, $example)")
	checkCmd.Flags().Bool("trim", false, "Trim spaces around every string of the value before checking")
	_ = checkCmd.MarkFlagRequired("schema")
}

func runCheck(w io.Writer, stdin io.Reader, opts checkOptions) error {
	s, err := loadSchema(opts.schema, stdin)
	if err != nil {
		return err
	}
	v, err := loadValue(opts.value, stdin)
	if err != nil {
		return err
	}
	if opts.trim {
		v = transform.TrimSpace(v)
	}

	checkerOpts := []oc.Option{oc.WithDefaultRequired(!opts.optional)}
	if !opts.strict {
		checkerOpts = append(checkerOpts, oc.WithDocKeys(oc.DocKeys...))
	}
	res := oc.New(checkerOpts...).Check(v, s)
	logger.Debug("checked value", "schema", opts.schema, "value", opts.value, "valid", res.IsValid)

	if err := printJSON(w, res); err != nil {
		return err
	}
	if !res.IsValid {
		return errInvalid
	}
	return nil
}
