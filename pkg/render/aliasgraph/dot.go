package aliasgraph

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/iconsvg/pkg/iconset"
)

// Options configures alias graph generation.
type Options struct {
	// IconsOnlyWithAliases drops icons nothing refers to.
	IconsOnlyWithAliases bool
}

// ToDOT converts the alias structure of s to Graphviz DOT.
func ToDOT(s *iconset.Set, opts Options) string {
	referenced := make(map[string]bool, len(s.Aliases))
	for _, a := range s.Aliases {
		referenced[a.Parent] = true
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", s.Prefix)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, name := range s.Names() {
		if alias, ok := s.Aliases[name]; ok && s.Parent(name) != "" {
			fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(aliasAttrs(name, alias), ", "))
			continue
		}
		if opts.IconsOnlyWithAliases && !referenced[name] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, name)
	}

	buf.WriteString("\n")
	aliases := make([]string, 0, len(s.Aliases))
	for name := range s.Aliases {
		aliases = append(aliases, name)
	}
	slices.Sort(aliases)
	for _, name := range aliases {
		if s.Parent(name) == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", name, s.Aliases[name].Parent)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func aliasAttrs(name string, a iconset.AliasData) []string {
	label := name
	if t := transformLabel(a.IconData); t != "" {
		label += "\n" + t
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		"style=\"rounded,filled,dashed\"",
		"fillcolor=lightgrey",
	}
}

// transformLabel describes what an alias changes relative to its parent.
func transformLabel(d iconset.IconData) string {
	var parts []string
	if d.Rotate != nil && *d.Rotate != 0 {
		parts = append(parts, fmt.Sprintf("rotate %d°", *d.Rotate*90))
	}
	if d.HFlip != nil && *d.HFlip {
		parts = append(parts, "hFlip")
	}
	if d.VFlip != nil && *d.VFlip {
		parts = append(parts, "vFlip")
	}
	if d.Width != nil || d.Height != nil || d.Left != nil || d.Top != nil {
		parts = append(parts, "box")
	}
	if d.Body != "" {
		parts = append(parts, "body")
	}
	return strings.Join(parts, ", ")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
