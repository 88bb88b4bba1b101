package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/HanHach/Codex-Numeris/internal/galaxy"
	"github.com/HanHach/Codex-Numeris/internal/render"
)

var (
	renderWidth    int
	renderHeight   int
	renderCategory string
	renderYear     string
	renderZoom     float64
)

var renderCmd = &cobra.Command{
	Use:   "render <output.webp|output.png>",
	Short: "Render a still image of the galaxy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := args[0]
		format, err := render.FormatFromPath(out)
		if err != nil {
			return err
		}
		if renderWidth < 1 || renderHeight < 1 {
			return fmt.Errorf("invalid size %dx%d", renderWidth, renderHeight)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		minDate, err := cfg.MinDate()
		if err != nil {
			return err
		}
		items, err := loadItems(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		raster, err := render.NewRaster(renderWidth, renderHeight)
		if err != nil {
			return err
		}
		vp := raster.Size()
		rng := newRand(cfg.Galaxy.Seed)
		now := time.Now()

		orbs, extent := galaxy.BuildOrbs(items, vp, galaxy.LayoutOptions{MinDate: minDate, Now: now, Rand: rng})
		camera := galaxy.NewCamera()
		if err := camera.Initialize(extent, vp); err != nil {
			return fmt.Errorf("nothing to render: %d projects after %s", len(orbs), cfg.Galaxy.MinDate)
		}
		if renderZoom != 1 {
			camera.ZoomBy(renderZoom)
			camera.Step(1)
		}

		sel := galaxy.Selection{Category: renderCategory, Year: renderYear}
		galaxy.ApplyFilters(orbs, sel)
		for _, o := range orbs {
			o.Fade(1)
		}

		bgCount := cfg.Galaxy.BackgroundCount
		if bgCount == 0 {
			bgCount = galaxy.DefaultBackgroundCount
		}
		render.DrawScene(raster, render.Scene{
			Ready:      true,
			View:       camera.View(),
			Viewport:   vp,
			Background: galaxy.NewBackground(bgCount, vp, rng),
			Orbs:       orbs,
			Axes:       galaxy.LayoutOptions{MinDate: minDate, Now: now}.Axes(items, vp),
			Palette:    galaxy.NewPalette(),
		})
		title := fmt.Sprintf("%s  %s projects", cfg.Galaxy.Title, render.FormatCount(len(orbs)))
		if sel.Active() {
			title += fmt.Sprintf("  [%s / %s]", sel.Category, sel.Year)
		}
		raster.Text(galaxy.Point{X: 16, Y: 12}, title, render.TitleSize, render.AlignLeftTop, render.TitleColor, 1)

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := render.Encode(f, raster.Image(), format); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%dx%d, %d projects)\n", out, renderWidth, renderHeight, len(orbs))
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 1600, "image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 900, "image height in pixels")
	renderCmd.Flags().StringVar(&renderCategory, "category", galaxy.All, "only highlight this language")
	renderCmd.Flags().StringVar(&renderYear, "year", galaxy.All, "only highlight this creation year")
	renderCmd.Flags().Float64Var(&renderZoom, "zoom", 1, "zoom factor applied after fitting")
	addSourceFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}
