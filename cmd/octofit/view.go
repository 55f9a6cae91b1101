package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
	"github.com/bagdasarian/octofit-tracker/internal/tui"
)

func newViewCmd(a *app) *cobra.Command {
	var (
		sortBy string
		desc   bool
		format string
	)

	cmd := &cobra.Command{
		Use:       "view <resource>",
		Short:     "Print a tracker view",
		Long:      "Print one of: " + strings.Join(tui.Resources, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: tui.Resources,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tui.IsResource(args[0]) {
				return fmt.Errorf("unknown resource %q (one of %s)", args[0], strings.Join(tui.Resources, ", "))
			}
			switch format {
			case "table", "json":
			default:
				return fmt.Errorf("--format must be table or json, got %q", format)
			}

			v, err := tui.Load(cmd.Context(), a.client(), args[0], readmodel.Sort{Column: sortBy, Desc: desc})
			if err != nil {
				return err
			}
			return v.Write(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "", "Column to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}
