package explore

import (
	"math/rand/v2"
	"time"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/galaxy"
	"github.com/HanHach/Codex-Numeris/internal/render"
)

// Options configures a frame.
type Options struct {
	Title           string
	MinDate         time.Time
	BackgroundCount int
	Seed            uint64 // 0 seeds from the runtime's random source
	FrameRate       int
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Codex Numeris"
	}
	if o.MinDate.IsZero() {
		o.MinDate = galaxy.DefaultMinDate
	}
	if o.BackgroundCount <= 0 {
		o.BackgroundCount = galaxy.DefaultBackgroundCount
	}
	if o.FrameRate <= 0 {
		o.FrameRate = DefaultFrameRate
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Effect is a side effect requested by an input, carried out by the session.
type Effect struct {
	Open string // URL to open
	Quit bool
}

// Frame owns all mutable state of one explorer: camera, orbs, hover and
// filters. It is not safe for concurrent use; the session goroutine is its
// only caller.
type Frame struct {
	opts    Options
	rng     *rand.Rand
	started time.Time
	t       float64 // seconds since start, drives the twinkle

	vp         galaxy.Viewport
	camera     *galaxy.Camera
	palette    *galaxy.Palette
	background []galaxy.BackgroundOrb

	items   []catalog.Item
	orbs    []*galaxy.Orb
	axes    galaxy.Axes
	loaded  bool
	loadErr error

	selection galaxy.Selection
	filters   FilterOptions

	hovered   *galaxy.Orb
	pointer   galaxy.Point
	pointerIn bool
	dragging  bool

	status    string
	statusURL string
	statusTTL int
}

// NewFrame returns a frame for the given pixel viewport in the pre-load
// state.
func NewFrame(vp galaxy.Viewport, opts Options) *Frame {
	opts = opts.withDefaults()
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	f := &Frame{
		opts:      opts,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		started:   opts.Now(),
		vp:        vp,
		camera:    galaxy.NewCamera(),
		palette:   galaxy.NewPalette(),
		selection: galaxy.AllSelection(),
	}
	f.background = galaxy.NewBackground(opts.BackgroundCount, vp, f.rng)
	return f
}

// Load delivers the catalog fetch result. Only the first completion is
// applied; it reports whether this call was the one.
func (f *Frame) Load(items []catalog.Item, err error) bool {
	if f.loaded || f.loadErr != nil {
		return false
	}
	if err != nil {
		f.loadErr = err
		return true
	}
	f.items = items
	f.loaded = true
	f.filters = NewFilterOptions(items, f.opts.Now(), f.opts.MinDate)
	f.layout()
	return true
}

// layout places the orbs for the current viewport and frames them.
func (f *Frame) layout() {
	lo := galaxy.LayoutOptions{MinDate: f.opts.MinDate, Now: f.opts.Now(), Rand: f.rng}
	var extent *galaxy.WorldExtent
	f.orbs, extent = galaxy.BuildOrbs(f.items, f.vp, lo)
	f.axes = lo.Axes(f.items, f.vp)
	f.hovered = nil
	// A degenerate extent keeps the previous framing.
	_ = f.camera.Initialize(extent, f.vp)
	galaxy.ApplyFilters(f.orbs, f.selection)
}

// Resize adopts a new pixel viewport: orbs are laid out again, the camera is
// re-framed, the background regenerated and the selection re-applied.
func (f *Frame) Resize(vp galaxy.Viewport) {
	if vp == f.vp {
		return
	}
	f.vp = vp
	f.background = galaxy.NewBackground(f.opts.BackgroundCount, vp, f.rng)
	if f.loaded {
		f.layout()
	}
}

// Ready reports whether there is a catalog to draw.
func (f *Frame) Ready() bool {
	return f.loaded && len(f.items) > 0
}

// Advance moves the frame to time now: the camera chases its targets and
// orb alphas fade toward theirs.
func (f *Frame) Advance(now time.Time) {
	f.t = now.Sub(f.started).Seconds()
	if f.statusTTL > 0 {
		f.statusTTL--
		if f.statusTTL == 0 {
			f.status, f.statusURL = "", ""
		}
	}
	if !f.Ready() {
		return
	}
	f.camera.Step(galaxy.Damping)
	galaxy.FadeOrbs(f.orbs)
}

// Scene returns what the renderer needs for the current frame.
func (f *Frame) Scene() render.Scene {
	return render.Scene{
		Ready:      f.Ready(),
		View:       f.camera.View(),
		Viewport:   f.vp,
		Time:       f.t,
		Background: f.background,
		Orbs:       f.orbs,
		Hovered:    f.hovered,
		Axes:       f.axes,
		Palette:    f.palette,
	}
}

// UpdateHover hit-tests the pointer against the orbs as they were just
// drawn. The ring therefore follows one frame behind the pointer.
func (f *Frame) UpdateHover() {
	if !f.Ready() || !f.pointerIn {
		f.hovered = nil
		return
	}
	f.hovered = galaxy.HitTest(f.orbs, f.camera.View(), f.vp, f.pointer)
}

// Hovered returns the orb under the pointer, nil when none.
func (f *Frame) Hovered() *galaxy.Orb { return f.hovered }

// Selection returns the active filter selection.
func (f *Frame) Selection() galaxy.Selection { return f.selection }

// Camera exposes the frame's camera.
func (f *Frame) Camera() *galaxy.Camera { return f.camera }

// SetStatus shows msg in the HUD for StatusDuration, linked to url when set.
func (f *Frame) SetStatus(msg, url string) {
	f.status, f.statusURL = msg, url
	f.statusTTL = SecsToFrames(StatusDuration, f.opts.FrameRate)
}

// Handle applies one input event between frames.
func (f *Frame) Handle(ev InputEvent) Effect {
	switch ev.Action {
	case ActionPointer:
		f.movePointer(ev)
		f.dragging = false
	case ActionPress:
		f.movePointer(ev)
		f.dragging = true
		if f.hovered != nil {
			url := f.hovered.Item.URL
			f.hovered = nil
			if url != "" {
				return Effect{Open: url}
			}
		}
	case ActionDrag:
		prev := f.pointer
		f.movePointer(ev)
		if f.dragging {
			f.camera.PanBy(f.pointer.X-prev.X, f.pointer.Y-prev.Y)
		}
		f.dragging = true
	case ActionRelease:
		f.movePointer(ev)
		f.dragging = false
	case ActionWheelUp:
		f.camera.Wheel(true)
	case ActionWheelDown:
		f.camera.Wheel(false)
	case ActionBlur:
		f.hovered = nil
		f.dragging = false
		f.pointerIn = false
	case ActionFocus:
	case ActionPanUp:
		f.camera.PanBy(0, f.vp.H*PanStep)
	case ActionPanDown:
		f.camera.PanBy(0, -f.vp.H*PanStep)
	case ActionPanLeft:
		f.camera.PanBy(f.vp.W*PanStep, 0)
	case ActionPanRight:
		f.camera.PanBy(-f.vp.W*PanStep, 0)
	case ActionZoomIn:
		f.camera.ZoomBy(galaxy.ZoomInFactor)
	case ActionZoomOut:
		f.camera.ZoomBy(galaxy.ZoomOutFactor)
	case ActionNextCategory, ActionPrevCategory:
		f.selection.Category = f.filters.NextCategory(f.selection.Category, step(ev.Action == ActionNextCategory))
		galaxy.ApplyFilters(f.orbs, f.selection)
	case ActionNextYear, ActionPrevYear:
		f.selection.Year = f.filters.NextYear(f.selection.Year, step(ev.Action == ActionNextYear))
		galaxy.ApplyFilters(f.orbs, f.selection)
	case ActionReset:
		f.selection = galaxy.ResetFilters(f.orbs)
	case ActionQuit:
		return Effect{Quit: true}
	}
	return Effect{}
}

func step(forward bool) int {
	if forward {
		return 1
	}
	return -1
}

func (f *Frame) movePointer(ev InputEvent) {
	f.pointer = galaxy.Point{X: ev.X, Y: ev.Y}
	f.pointerIn = ev.X >= 0 && ev.Y >= 0 && ev.X <= f.vp.W && ev.Y <= f.vp.H
}

// HUD describes the status panel for the current state.
func (f *Frame) HUD() render.HUD {
	return render.HUD{
		Title:     f.opts.Title,
		Projects:  len(f.orbs),
		Category:  f.selection.Category,
		Year:      f.selection.Year,
		ResetHint: f.selection.Active(),
		Status:    f.status,
		Link:      f.statusURL,
		Loading:   !f.loaded && f.loadErr == nil,
		Failed:    f.loadErr != nil,
	}
}

// Draw paints the frame onto a terminal canvas: scene, tooltip, HUD.
func (f *Frame) Draw(c *render.Canvas) {
	render.DrawScene(c, f.Scene())
	if f.hovered != nil {
		c.DrawTooltip(render.TooltipLines(f.hovered.Item, render.TooltipWidth), f.pointer)
	}
	c.DrawHUD(f.HUD())
}
