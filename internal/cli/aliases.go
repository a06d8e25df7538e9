package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconsvg/pkg/render/aliasgraph"
)

// aliasesCommand creates the aliases command.
func (c *CLI) aliasesCommand() *cobra.Command {
	var (
		format     string
		output     string
		onlyLinked bool
	)

	cmd := &cobra.Command{
		Use:   "aliases <set.json>",
		Short: "Draw the alias graph of an icon set",
		Long:  `Draw which aliases point at which icons, with the transforms each alias adds. Output is Graphviz DOT or SVG.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("unknown format: %s (must be 'dot' or 'svg')", format)
			}
			set, err := loadSet(args[0])
			if err != nil {
				return err
			}

			dot := aliasgraph.ToDOT(set, aliasgraph.Options{IconsOnlyWithAliases: onlyLinked})
			data := []byte(dot)
			if format == "svg" {
				if data, err = aliasgraph.RenderSVG(cmd.Context(), dot); err != nil {
					return fmt.Errorf("render alias graph: %w", err)
				}
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Alias graph of %s (%d aliases)", set.Prefix, len(set.Aliases))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&onlyLinked, "linked", false, "only show icons that have aliases")
	return cmd
}
