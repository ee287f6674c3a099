package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twclass/internal/report"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the property groups of the catalog in matching order",
	Long: `List the property groups tokens are matched against. Groups are tried in
this order and the first match wins. --categories narrows the list.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		groups, err := selectedGroups()
		if err != nil {
			return err
		}
		useColors := report.ShouldUseColors(getBoolOr("color", false))

		var b strings.Builder
		category := ""
		for _, g := range groups {
			if g.Category != category {
				if category != "" {
					b.WriteString("\n")
				}
				category = g.Category
				b.WriteString(report.RenderStyle(report.StyleCyan, category, useColors))
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "  %s\n", g.Type)
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
		return err
	},
}
