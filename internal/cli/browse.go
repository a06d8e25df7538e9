package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/iconsvg/pkg/iconset"
	"github.com/matzehuels/iconsvg/pkg/pipeline"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "browse <set.json>",
		Short: "Pick an icon from a set interactively and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadSet(args[0])
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewIconListModel(set), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			m, ok := final.(IconListModel)
			if !ok || m.Selected == "" {
				printInfo("Nothing selected")
				return nil
			}

			runner, err := c.newRunner(ctx, []string{args[0]})
			if err != nil {
				return err
			}
			defer runner.Close()

			name := iconset.Name{Provider: set.Provider, Prefix: set.Prefix, Name: m.Selected}
			res, err := runner.Execute(ctx, pipeline.Options{Icon: name.String()})
			if err != nil {
				printError("Render %s failed", name)
				return err
			}
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(res.Data))
				return nil
			}
			if err := os.WriteFile(output, res.Data, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered %s", res.Icon)
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// =============================================================================
// IconListModel - Interactive icon selection
// =============================================================================

// IconListModel is the bubbletea model for picking an icon from a set.
// Typing filters the list; Selected holds the chosen name after Enter.
type IconListModel struct {
	Prefix   string
	All      []iconRow
	Rows     []iconRow
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewIconListModel creates a model listing every icon of set.
func NewIconListModel(set *iconset.Set) IconListModel {
	rows := iconRows(set, "")
	return IconListModel{
		Prefix: set.Prefix,
		All:    rows,
		Rows:   rows,
		Height: 15,
	}
}

func (m IconListModel) Init() tea.Cmd {
	return nil
}

func (m IconListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		case tea.KeyPgUp:
			m.move(-m.Height)
		case tea.KeyPgDown:
			m.move(m.Height)
		case tea.KeyEnter:
			if len(m.Rows) > 0 {
				m.Selected = m.Rows[m.Cursor].name
				return m, tea.Quit
			}
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.applyFilter()
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.applyFilter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped, and keeps it in view.
func (m *IconListModel) move(delta int) {
	if len(m.Rows) == 0 {
		m.Cursor, m.Offset = 0, 0
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *IconListModel) applyFilter() {
	m.Rows = m.Rows[:0:0]
	for _, r := range m.All {
		if strings.Contains(r.name, m.Filter) {
			m.Rows = append(m.Rows, r)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m IconListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Icon") + " " + StyleDim.Render(m.Prefix))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  type to filter  ⏎ render  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(StyleValue.Render("filter: " + m.Filter))
	}
	b.WriteString("\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		parent := r.parent
		if parent == "" {
			parent = "—"
		}
		rows = append(rows, []string{cursor, r.name, r.size, parent, r.orient})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Icon", "Size", "Alias of", "Transform").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Rows) == 0 {
		b.WriteString(StyleWarning.Render("  no icons match"))
	} else {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	}
	return b.String()
}
