package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/figure"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// FigureListModel is the bubbletea model for interactive figure selection.
type FigureListModel struct {
	Figures  []figure.Spec
	Cursor   int
	Selected *figure.Spec
	Height   int
	Offset   int
}

// NewFigureListModel creates a new figure list model.
func NewFigureListModel(figures []figure.Spec) FigureListModel {
	return FigureListModel{Figures: figures, Height: 15}
}

func (m FigureListModel) Init() tea.Cmd {
	return nil
}

func (m FigureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Figures)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Figures) == 0 {
				return m, nil
			}
			s := m.Figures[m.Cursor]
			m.Selected = &s
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FigureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Figure"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Figures))
	for i := m.Offset; i < end; i++ {
		s := m.Figures[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-5s %-13s %s", cursor, s.ID, s.Name, listDimStyle.Render(s.Description))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Figures))))
	return b.String()
}

// pickCommand creates the pick command: choose a figure from a list, then
// render it.
func (c *CLI) pickCommand() *cobra.Command {
	var flags jobFlags
	var noCache bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a figure interactively and render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := tea.NewProgram(NewFigureListModel(catalog.All()), tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("figure picker: %w", err)
			}
			m, ok := final.(FigureListModel)
			if !ok || m.Selected == nil {
				printInfo("No figure selected")
				return nil
			}

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()
			job, err := c.job(m.Selected.ID, flags)
			if err != nil {
				return err
			}
			return c.runRender(ctx, runner, job)
		},
	}

	addJobFlags(cmd, &flags)
	cmd.Flags().BoolVar(&flags.show, "show", false, "open the figure in the system viewer")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
