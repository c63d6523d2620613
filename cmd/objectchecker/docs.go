package main

import (
	"fmt"
	"io"

	"github.com/Gobd/objectchecker/route"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

type docOptions struct {
	routes string
	title  string
	raw    bool
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Render the documentation of a route table",
	Long:  `Renders the routes flagged showInDoc as markdown, styled for the terminal unless --raw is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := docOptions{}
		opts.routes, _ = cmd.Flags().GetString("routes")
		opts.title, _ = cmd.Flags().GetString("title")
		opts.raw, _ = cmd.Flags().GetBool("raw")
		return runDoc(cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.Flags().StringP("routes", "r", "route.yaml", "Route table file")
	docCmd.Flags().String("title", "API Documents", "Document title")
	docCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}

func runDoc(w io.Writer, opts docOptions) error {
	table, err := route.LoadFile(opts.routes)
	if err != nil {
		return err
	}
	var shown []*route.Route
	for _, rt := range table.Routes() {
		if rt.ShowInDoc {
			shown = append(shown, rt)
		}
	}
	md := route.Markdown(opts.title, shown)

	if !opts.raw {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		if md, err = r.Render(md); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
	}
	_, err = io.WriteString(w, md)
	return err
}
