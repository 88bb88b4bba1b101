// Package tui runs the galaxy explorer on the local terminal through tcell.
package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/explore"
	"github.com/HanHach/Codex-Numeris/internal/render"
)

// Presenter copies canvas cells onto a tcell screen.
type Presenter struct {
	screen tcell.Screen
}

// NewPresenter wraps an initialized screen.
func NewPresenter(s tcell.Screen) *Presenter {
	return &Presenter{screen: s}
}

// Present implements explore.Presenter.
func (p *Presenter) Present(c *render.Canvas) error {
	cells := c.Compose()
	for y, row := range cells {
		for x, cell := range row {
			p.screen.SetContent(x, y, cell.Ch, nil, cellStyle(cell))
		}
	}
	p.screen.Show()
	return nil
}

func cellStyle(c render.Cell) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.FgR), int32(c.FgG), int32(c.FgB))).
		Background(tcell.NewRGBColor(int32(c.BgR), int32(c.BgG), int32(c.BgB))).
		Bold(c.Bold)
	if c.Link != "" {
		st = st.Url(c.Link)
	}
	return st
}

// Run explores the catalog from source on the local terminal until the user
// quits or ctx is canceled.
func Run(ctx context.Context, source catalog.Source, opts explore.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	return run(ctx, screen, source, opts, SystemOpener{})
}

func run(ctx context.Context, screen tcell.Screen, source catalog.Source, opts explore.Options, opener explore.Opener) error {
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents | tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cols, rows := screen.Size()
	session := explore.NewSession(explore.SessionConfig{
		Source:    source,
		Presenter: NewPresenter(screen),
		Opener:    opener,
		Cols:      cols,
		Rows:      rows,
		Frame:     opts,
	})

	// Goroutine: poll terminal events until the screen is finalized
	go func() {
		var tr Translator
		for {
			ev := screen.PollEvent()
			if ev == nil {
				cancel()
				return
			}
			if in, ok := tr.Translate(ev); ok {
				session.Send(in)
			}
		}
	}()

	err := session.Run(ctx)
	if err != nil {
		log.Printf("explore: %v", err)
	}
	return err
}
