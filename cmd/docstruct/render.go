package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/model"
	"github.com/docstruct/docstruct/raster"
	"github.com/docstruct/docstruct/render"
)

var (
	renderOutput string
	renderCrops  bool
	renderRoles  []string
	renderLabels bool
	renderPad    int
	renderMax    int
)

var renderCmd = &cobra.Command{
	Use:   "render <pdf>",
	Short: "Draw the reconstructed elements onto page images",
	Long: `Reconstruct a PDF, rasterize each page and write it with every element
outlined in its role color. With --crops, each element is also written as
its own image, grouped by role.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "annotated", "output directory")
	renderCmd.Flags().BoolVar(&renderCrops, "crops", false, "also write one image per element")
	renderCmd.Flags().StringSliceVar(&renderRoles, "roles", nil, "only crop these roles (e.g. table,figure)")
	renderCmd.Flags().BoolVar(&renderLabels, "labels", true, "draw role and ID labels")
	renderCmd.Flags().IntVar(&renderPad, "pad", 2, "pixels kept around each crop")
	renderCmd.Flags().IntVar(&renderMax, "max-side", 0, "shrink crops whose longer side exceeds this many pixels")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var roles []model.Role
	for _, name := range renderRoles {
		r, ok := model.ParseRole(name)
		if !ok {
			return fmt.Errorf("unknown role %q", name)
		}
		roles = append(roles, r)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := newProcessor(args[0], 0, 0, false).Process(ctx)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}

	src := extraction.Source{Path: args[0], Password: cfg.Extraction.Password}
	dpi := cfg.Render.DPI
	opts := render.Options{
		Scale:       cfg.Render.Scale,
		Ratio:       dpi / 72 / cfg.Render.Scale,
		Labels:      renderLabels,
		CropPad:     renderPad,
		MaxCropSide: renderMax,
	}

	fz := raster.NewFitz()
	bar := newPageBar("rendering")
	bar.ChangeMax(len(res.Pages))
	written := 0
	for _, page := range res.Pages {
		img, _, err := fz.Render(ctx, src, page.Number-1, dpi)
		if err != nil {
			return err
		}
		if _, err := render.WritePage(renderOutput, img, page, opts); err != nil {
			return err
		}
		written++
		if renderCrops {
			paths, err := render.WriteCrops(filepath.Join(renderOutput, "crops"), img, page, opts, roles...)
			if err != nil {
				return err
			}
			written += len(paths)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Fprintf(os.Stderr, "%s %d image(s) in %s\n", color.GreenString("wrote"), written, renderOutput)
	return nil
}
