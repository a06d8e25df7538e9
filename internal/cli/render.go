package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconsvg/pkg/pipeline"
	"github.com/matzehuels/iconsvg/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	sets      []string // extra icon set files
	output    string   // output file; stdout when empty
	format    string   // svg, html, url or json
	width     string   // width: number, unit string or "auto"
	height    string   // height: number, unit string or "auto"
	flip      string   // "horizontal", "vertical" or both
	rotate    string   // quarter turns, "90deg" or "25%"
	align     string   // e.g. "left,top,slice"
	inline    bool     // add vertical-align style
	color     string   // replaces currentColor
	class     string   // class attribute
	uniqueIDs bool     // rewrite body ids
	refresh   bool     // bypass the cache read
}

// attrs returns the customisation attributes that were set.
func (o *renderOpts) attrs() map[string]string {
	attrs := make(map[string]string)
	set := func(k, v string) {
		if v != "" {
			attrs[k] = v
		}
	}
	set("width", o.width)
	set("height", o.height)
	set("flip", o.flip)
	set("rotate", o.rotate)
	set("align", o.align)
	if o.inline {
		attrs["inline"] = strconv.FormatBool(o.inline)
	}
	return attrs
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: render.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render <icon>",
		Short: "Render an icon",
		Long: `Render an icon from the configured icon directories, --set files or the remote API.

Icon names are "prefix:name", "@provider:prefix:name" or "prefix-name".`,
		Example: `  iconsvg render mdi:home
  iconsvg render mdi:home --height 32 --rotate 90deg --color '#f00' -o home.svg
  iconsvg render my:logo --set ./my-icons.json --format html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.sets, "set", "s", nil, "icon set JSON file (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, html, url, json")
	cmd.Flags().StringVar(&opts.width, "width", "", "width (number, unit such as 2em, or auto)")
	cmd.Flags().StringVar(&opts.height, "height", "", "height (number, unit such as 2em, or auto)")
	cmd.Flags().StringVar(&opts.flip, "flip", "", "flip: horizontal, vertical or both")
	cmd.Flags().StringVar(&opts.rotate, "rotate", "", "rotation: quarter turns, degrees (90deg) or percent (25%)")
	cmd.Flags().StringVar(&opts.align, "align", "", "alignment: left|center|right, top|middle|bottom, meet|slice")
	cmd.Flags().BoolVar(&opts.inline, "inline", false, "add vertical-align style for inline use")
	cmd.Flags().StringVar(&opts.color, "color", "", "replace currentColor")
	cmd.Flags().StringVar(&opts.class, "class", "", "class attribute of the svg element")
	cmd.Flags().BoolVar(&opts.uniqueIDs, "unique-ids", false, "rewrite ids inside the icon so copies can share a page")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached output")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, icon string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.sets)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if opts.output != "" && !c.offline {
		spinner = newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+icon+"...")
		spinner.Start()
	}

	res, err := runner.Execute(ctx, pipeline.Options{
		Icon:      icon,
		Format:    opts.format,
		Attrs:     opts.attrs(),
		Color:     opts.color,
		Class:     opts.class,
		UniqueIDs: opts.uniqueIDs,
		Refresh:   opts.refresh,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	logger.Debug("render finished", "icon", res.Icon, "cached", res.CacheHit)

	if opts.output == "" {
		out := cmd.OutOrStdout()
		_, err := fmt.Fprintln(out, string(res.Data))
		return err
	}

	if err := os.WriteFile(opts.output, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered %s", res.Icon)
	printFile(opts.output)
	printRenderStats(len(res.Data), res.Duration, res.CacheHit)
	return nil
}
