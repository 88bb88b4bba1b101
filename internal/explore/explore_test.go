package explore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/galaxy"
	"github.com/HanHach/Codex-Numeris/internal/render"
)

var testNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Seed:            7,
		BackgroundCount: 10,
		Now:             func() time.Time { return testNow },
	}
}

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: 1, Name: "alpha", Stars: 500, Category: "Go", URL: "https://github.com/a/alpha",
			CreatedAt: time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "beta", Stars: 20, Category: "Rust", URL: "https://github.com/b/beta",
			CreatedAt: time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func loadedFrame(t *testing.T, items []catalog.Item) *Frame {
	t.Helper()
	f := NewFrame(galaxy.Viewport{W: 120, H: 60}, testOptions())
	if !f.Load(items, nil) {
		t.Fatal("first Load was not applied")
	}
	return f
}

// pointAt returns the screen position of the orb for the named item.
func pointAt(t *testing.T, f *Frame, name string) galaxy.Point {
	t.Helper()
	for _, o := range f.orbs {
		if o.Item.Name == name {
			return galaxy.WorldToScreen(f.camera.View(), f.vp, galaxy.Point{X: o.X, Y: o.Y})
		}
	}
	t.Fatalf("no orb for %q", name)
	return galaxy.Point{}
}

func TestFilterOptions(t *testing.T) {
	items := append(testItems(), catalog.Item{Name: "gamma", Category: "Go"}, catalog.Item{Name: "delta"})
	opts := NewFilterOptions(items, testNow, galaxy.DefaultMinDate)

	if len(opts.Categories) != 2 || opts.Categories[0] != "Go" || opts.Categories[1] != "Rust" {
		t.Errorf("Categories = %v, want [Go Rust]", opts.Categories)
	}
	if len(opts.Years) != 13 || opts.Years[0] != "2025" || opts.Years[12] != "2013" {
		t.Errorf("Years = %v, want 2025 down to 2013", opts.Years)
	}

	tests := []struct {
		name string
		cur  string
		step int
		want string
	}{
		{"from all", galaxy.All, 1, "Go"},
		{"forward", "Go", 1, "Rust"},
		{"wraps forward", "Rust", 1, galaxy.All},
		{"wraps backward", galaxy.All, -1, "Rust"},
		{"unknown restarts", "COBOL", 1, "Go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := opts.NextCategory(tt.cur, tt.step); got != tt.want {
				t.Errorf("NextCategory(%q, %d) = %q, want %q", tt.cur, tt.step, got, tt.want)
			}
		})
	}
}

func TestLoadOnce(t *testing.T) {
	f := NewFrame(galaxy.Viewport{W: 120, H: 60}, testOptions())
	if !f.HUD().Loading {
		t.Error("HUD should report loading before the fetch completes")
	}
	if f.Scene().Ready {
		t.Error("scene should not be ready before load")
	}

	fetchErr := errors.Join(catalog.ErrFetch, errors.New("connection refused"))
	if !f.Load(nil, fetchErr) {
		t.Fatal("first completion should be applied")
	}
	if f.Load(testItems(), nil) {
		t.Error("second completion should be ignored")
	}
	h := f.HUD()
	if !h.Failed || h.Loading {
		t.Errorf("HUD = %+v, want failed", h)
	}
	if f.Ready() {
		t.Error("failed frame should not be ready")
	}
}

func TestLoadEmptyCatalog(t *testing.T) {
	f := loadedFrame(t, nil)
	if f.Ready() {
		t.Error("empty catalog should not be ready")
	}
	if f.Camera().Initialized() {
		t.Error("camera should stay uninitialized without orbs")
	}
	f.Advance(testNow.Add(time.Second))
	f.UpdateHover()
	if f.Hovered() != nil {
		t.Error("no hover without orbs")
	}
}

func TestHoverAndClick(t *testing.T) {
	f := loadedFrame(t, testItems()[:1])
	p := pointAt(t, f, "alpha")

	f.Handle(InputEvent{Action: ActionPointer, X: p.X, Y: p.Y})
	f.UpdateHover()
	if f.Hovered() == nil || f.Hovered().Item.Name != "alpha" {
		t.Fatalf("Hovered = %v, want alpha", f.Hovered())
	}

	eff := f.Handle(InputEvent{Action: ActionPress, X: p.X, Y: p.Y})
	if eff.Open != "https://github.com/a/alpha" {
		t.Errorf("Open = %q, want the item URL", eff.Open)
	}
	if f.Hovered() != nil {
		t.Error("click should clear hover")
	}
}

func TestFilteredOrbNotHoverable(t *testing.T) {
	f := loadedFrame(t, testItems())
	f.Handle(InputEvent{Action: ActionNextCategory})
	if got := f.Selection().Category; got != "Go" {
		t.Fatalf("Category = %q, want Go", got)
	}

	now := testNow
	for i := 0; i < 5000; i++ {
		now = now.Add(time.Second / 30)
		f.Advance(now)
	}

	p := pointAt(t, f, "beta")
	f.Handle(InputEvent{Action: ActionPointer, X: p.X, Y: p.Y})
	f.UpdateHover()
	if f.Hovered() != nil {
		t.Fatalf("filtered-out orb %q is hovered", f.Hovered().Item.Name)
	}
	if eff := f.Handle(InputEvent{Action: ActionPress, X: p.X, Y: p.Y}); eff.Open != "" {
		t.Errorf("click on filtered-out orb opened %q", eff.Open)
	}
}

func TestPressWithoutHoverDoesNotOpen(t *testing.T) {
	f := loadedFrame(t, testItems()[:1])
	eff := f.Handle(InputEvent{Action: ActionPress, X: 1, Y: 1})
	if eff.Open != "" {
		t.Errorf("Open = %q, want none", eff.Open)
	}
}

func TestBlurClearsHoverAndDrag(t *testing.T) {
	f := loadedFrame(t, testItems()[:1])
	p := pointAt(t, f, "alpha")
	f.Handle(InputEvent{Action: ActionPointer, X: p.X, Y: p.Y})
	f.UpdateHover()
	f.Handle(InputEvent{Action: ActionPress, X: 1, Y: 1})

	f.Handle(InputEvent{Action: ActionBlur})
	f.UpdateHover()
	if f.Hovered() != nil {
		t.Error("blur should clear hover")
	}
	if f.dragging {
		t.Error("blur should clear the held-button flag")
	}

	before := f.Camera().TargetX
	f.Handle(InputEvent{Action: ActionDrag, X: 40, Y: 1})
	if f.Camera().TargetX != before {
		t.Error("first drag after blur should not pan")
	}
}

func TestDragPans(t *testing.T) {
	f := loadedFrame(t, testItems())
	cam := f.Camera()
	x0, zoom := cam.TargetX, cam.Zoom

	f.Handle(InputEvent{Action: ActionPress, X: 50, Y: 30})
	f.Handle(InputEvent{Action: ActionDrag, X: 45, Y: 30})
	f.Handle(InputEvent{Action: ActionRelease, X: 45, Y: 30})

	want := x0 + 5/zoom
	if ext := cam.Extent(); want > ext.MaxX {
		want = ext.MaxX
	}
	if d := cam.TargetX - want; d > 1e-9 || d < -1e-9 {
		t.Errorf("TargetX = %v, want %v", cam.TargetX, want)
	}

	x1 := cam.TargetX
	f.Handle(InputEvent{Action: ActionPointer, X: 10, Y: 30})
	if cam.TargetX != x1 {
		t.Error("pointer motion without a button should not pan")
	}
}

func TestKeyboardCamera(t *testing.T) {
	f := loadedFrame(t, testItems())
	cam := f.Camera()
	z := cam.TargetZoom

	f.Handle(InputEvent{Action: ActionZoomIn})
	if cam.TargetZoom <= z && z < galaxy.ZoomMax {
		t.Errorf("zoom in: %v -> %v", z, cam.TargetZoom)
	}
	for range 100 {
		f.Handle(InputEvent{Action: ActionWheelDown})
	}
	if cam.TargetZoom != galaxy.ZoomMin {
		t.Errorf("TargetZoom = %v, want clamp at %v", cam.TargetZoom, galaxy.ZoomMin)
	}

	x := cam.TargetX
	f.Handle(InputEvent{Action: ActionPanRight})
	if cam.TargetX < x {
		t.Errorf("pan right moved target left: %v -> %v", x, cam.TargetX)
	}
	for range 1000 {
		f.Handle(InputEvent{Action: ActionPanLeft})
	}
	if cam.TargetX != cam.Extent().MinX {
		t.Errorf("TargetX = %v, want clamp at %v", cam.TargetX, cam.Extent().MinX)
	}
}

func TestFilterCycling(t *testing.T) {
	f := loadedFrame(t, testItems())

	f.Handle(InputEvent{Action: ActionNextCategory})
	if got := f.Selection().Category; got != "Go" {
		t.Fatalf("Category = %q, want Go", got)
	}
	if !f.HUD().ResetHint {
		t.Error("reset hint should show while a filter is active")
	}
	for _, o := range f.orbs {
		want := galaxy.DimmedAlpha
		if o.Item.Category == "Go" {
			want = galaxy.VisibleAlpha
		}
		if o.TargetAlpha != want {
			t.Errorf("%s TargetAlpha = %v, want %v", o.Item.Name, o.TargetAlpha, want)
		}
	}

	f.Handle(InputEvent{Action: ActionPrevYear})
	if got := f.Selection().Year; got != "2013" {
		t.Errorf("Year = %q, want 2013 (oldest)", got)
	}

	f.Handle(InputEvent{Action: ActionReset})
	if f.Selection().Active() || f.HUD().ResetHint {
		t.Error("reset should clear the selection")
	}
	for _, o := range f.orbs {
		if o.TargetAlpha != galaxy.VisibleAlpha {
			t.Errorf("%s TargetAlpha = %v after reset", o.Item.Name, o.TargetAlpha)
		}
	}
}

func TestResizeReappliesSelection(t *testing.T) {
	f := loadedFrame(t, testItems())
	f.Handle(InputEvent{Action: ActionNextCategory}) // Go
	old := f.orbs
	bg := f.background

	f.Resize(galaxy.Viewport{W: 200, H: 80})

	if &f.orbs[0] == &old[0] {
		t.Error("resize should lay out new orbs")
	}
	if &f.background[0] == &bg[0] {
		t.Error("resize should regenerate the background")
	}
	ext := f.Camera().Extent()
	if ext == nil || ext.Width() <= 0 {
		t.Fatal("camera should be re-initialized")
	}
	for _, o := range f.orbs {
		if o.Item.Category == "Rust" && o.TargetAlpha != galaxy.DimmedAlpha {
			t.Errorf("Rust orb TargetAlpha = %v, want dimmed after resize", o.TargetAlpha)
		}
	}
	if f.Selection().Category != "Go" {
		t.Errorf("selection lost on resize: %+v", f.Selection())
	}
}

func TestAdvanceFadesAndExpiresStatus(t *testing.T) {
	f := loadedFrame(t, testItems())
	f.Handle(InputEvent{Action: ActionNextCategory})
	f.SetStatus("open: x", "x")

	frames := SecsToFrames(StatusDuration, DefaultFrameRate)
	for i := range frames {
		f.Advance(testNow.Add(time.Duration(i) * time.Second / DefaultFrameRate))
	}
	if h := f.HUD(); h.Status != "" || h.Link != "" {
		t.Errorf("status should expire, got %+v", h)
	}
	for _, o := range f.orbs {
		if o.Item.Category == "Rust" && o.Alpha >= 0.2 {
			t.Errorf("Rust orb alpha = %v after %d frames, want faded", o.Alpha, frames)
		}
	}
}

func TestDrawCanvas(t *testing.T) {
	c := render.NewCanvas(80, 24)
	f := NewFrame(render.PixelViewport(80, 24), testOptions())
	f.Load(testItems(), nil)
	f.Advance(testNow)
	f.Draw(c)
	if out := c.Flush(); out == "" {
		t.Error("first frame should produce output")
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		r    rune
		want Action
	}{
		{'q', ActionQuit},
		{3, ActionQuit},
		{'+', ActionZoomIn},
		{'-', ActionZoomOut},
		{'c', ActionNextCategory},
		{'C', ActionPrevCategory},
		{'y', ActionNextYear},
		{'Y', ActionPrevYear},
		{'r', ActionReset},
		{'w', ActionPanUp},
		{'x', ActionNone},
	}
	for _, tt := range tests {
		if got := KeyAction(tt.r); got != tt.want {
			t.Errorf("KeyAction(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestCellPoint(t *testing.T) {
	p := CellPoint(3, 4)
	if p.X != 3.5 || p.Y != 9 {
		t.Errorf("CellPoint(3, 4) = %+v, want {3.5 9}", p)
	}
}

// --- session ---

type staticSource struct {
	items []catalog.Item
	err   error
}

func (s staticSource) Projects(context.Context) ([]catalog.Item, error) {
	return s.items, s.err
}

type countingPresenter struct {
	mu     sync.Mutex
	frames int
	after  int
	cancel context.CancelFunc
}

func (p *countingPresenter) Present(c *render.Canvas) error {
	c.Flush()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames++
	if p.frames == p.after && p.cancel != nil {
		p.cancel()
	}
	return nil
}

type recordingOpener struct{ urls []string }

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

func TestSessionRunsUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := testOptions()
	opts.FrameRate = 200
	p := &countingPresenter{after: 3, cancel: cancel}
	s := NewSession(SessionConfig{
		Source:    staticSource{items: testItems()},
		Presenter: p,
		Cols:      60,
		Rows:      20,
		Frame:     opts,
	})
	if s.ID == "" {
		t.Error("session should have an ID")
	}
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frames < 3 {
		t.Errorf("presented %d frames, want at least 3", p.frames)
	}
}

func TestSessionQuit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := testOptions()
	opts.FrameRate = 200
	p := &countingPresenter{}
	s := NewSession(SessionConfig{
		Source:    staticSource{err: catalog.ErrFetch},
		Presenter: p,
		Cols:      60,
		Rows:      20,
		Frame:     opts,
	})
	s.Send(InputEvent{Action: ActionQuit})
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Error("quit should end the session before the timeout")
	}
}

func TestSessionOpensHoveredOrb(t *testing.T) {
	tests := []struct {
		name       string
		opener     *recordingOpener
		wantLink   bool
		wantOpened int
	}{
		{"local opener", &recordingOpener{}, false, 1},
		{"remote status link", nil, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SessionConfig{Cols: 60, Rows: 20, Frame: testOptions()}
			if tt.opener != nil {
				cfg.Opener = tt.opener
			}
			s := NewSession(cfg)
			canvas := render.NewCanvas(60, 20)
			f := NewFrame(render.PixelViewport(60, 20), testOptions())
			f.Load(testItems()[:1], nil)

			p := pointAt(t, f, "alpha")
			s.Send(InputEvent{Action: ActionPointer, X: p.X, Y: p.Y})
			s.drain(f, canvas)
			f.UpdateHover()
			s.Send(InputEvent{Action: ActionPress, X: p.X, Y: p.Y})
			if s.drain(f, canvas) {
				t.Fatal("press should not quit")
			}

			h := f.HUD()
			if tt.wantLink && h.Link != "https://github.com/a/alpha" {
				t.Errorf("HUD link = %q, want the item URL", h.Link)
			}
			if tt.opener != nil && len(tt.opener.urls) != tt.wantOpened {
				t.Errorf("opened %v, want %d URL", tt.opener.urls, tt.wantOpened)
			}
		})
	}
}

func TestSessionResizeEvent(t *testing.T) {
	s := NewSession(SessionConfig{Cols: 60, Rows: 20, Frame: testOptions()})
	canvas := render.NewCanvas(60, 20)
	f := NewFrame(render.PixelViewport(60, 20), testOptions())

	s.Send(ResizeEvent(100, 40))
	s.drain(f, canvas)
	if cols, rows := canvas.Dimensions(); cols != 100 || rows != 40 {
		t.Errorf("canvas = %dx%d, want 100x40", cols, rows)
	}
	if f.vp != render.PixelViewport(100, 40) {
		t.Errorf("frame viewport = %+v", f.vp)
	}
}

func TestSendDropsWhenFull(t *testing.T) {
	s := NewSession(SessionConfig{})
	for range InputChanSize + 10 {
		s.Send(InputEvent{Action: ActionZoomIn})
	}
	if got := len(s.events); got != InputChanSize {
		t.Errorf("queued %d events, want %d", got, InputChanSize)
	}
}
