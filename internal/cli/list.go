package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/figure"
)

// listCommand creates the list command, which prints the figure catalog.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the figures in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(catalogTable(catalog.All()).Render())
			printDetail("catalog revision %s", catalog.Revision)
			return nil
		},
	}
}

func catalogRows(specs []figure.Spec) [][]string {
	rows := make([][]string, 0, len(specs))
	for _, s := range specs {
		input := s.Input
		if !s.NeedsInput() {
			input = "—"
		}
		rows = append(rows, []string{s.ID, s.Name, strings.Join(s.Kinds(), ", "), input, s.Output})
	}
	return rows
}

func catalogTable(specs []figure.Spec) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Figure", "Kind", "Input", "Output").
		Rows(catalogRows(specs)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight.Padding(0, 1)
			case col >= 3:
				return lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
