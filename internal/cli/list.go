package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/iconsvg/pkg/iconset"
	"github.com/matzehuels/iconsvg/pkg/svg"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list <set.json>",
		Short: "List the icons of an icon set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			set, err := loadSet(args[0])
			if err != nil {
				return err
			}
			n := writeIconTable(cmd.OutOrStdout(), set, filter)
			prog.done(fmt.Sprintf("Listed %d of %d icons in %s", n, len(set.Names()), set.Prefix))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only names containing this text")
	return cmd
}

// loadSet parses and validates the icon set at path.
func loadSet(path string) (*iconset.Set, error) {
	return iconset.NewRegistry().LoadFile(path)
}

// iconRow is one line of the icon table.
type iconRow struct {
	name   string
	size   string
	parent string
	orient string
}

func iconRows(set *iconset.Set, filter string) []iconRow {
	var rows []iconRow
	for _, name := range set.Names() {
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}
		row := iconRow{name: name, parent: set.Parent(name)}
		if icon, err := set.Icon(name); err == nil {
			row.size = fmt.Sprintf("%s×%s", svg.Num(icon.Width), svg.Num(icon.Height))
			row.orient = orientationLabel(icon.Orientation())
		} else {
			row.size = "broken"
		}
		rows = append(rows, row)
	}
	return rows
}

// orientationLabel describes baked-in transforms, e.g. "rotate 90° hflip".
func orientationLabel(o svg.Orientation) string {
	var parts []string
	if r := svg.NormalizeRotation(o.Rotate); r != 0 {
		parts = append(parts, fmt.Sprintf("rotate %d°", r*90))
	}
	if o.HFlip {
		parts = append(parts, "hflip")
	}
	if o.VFlip {
		parts = append(parts, "vflip")
	}
	return strings.Join(parts, " ")
}

// writeIconTable renders the icon table to w and returns the row count.
func writeIconTable(w io.Writer, set *iconset.Set, filter string) int {
	rows := iconRows(set, filter)
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.name, r.size, r.parent, r.orient}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Icon", "Size", "Alias of", "Transform").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 1:
				return StyleNumber
			case col == 2 || col == 3:
				return StyleDim
			}
			return StyleValue
		})

	fmt.Fprintln(w, StyleTitle.Render(set.Prefix))
	fmt.Fprintln(w, t.Render())
	return len(rows)
}
