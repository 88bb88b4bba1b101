package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/galaxy"
)

func TestPixelViewport(t *testing.T) {
	tests := []struct {
		cols, rows int
		want       galaxy.Viewport
	}{
		{80, 24, galaxy.Viewport{W: 80, H: 42}},
		{10, HUDRows, galaxy.Viewport{W: 10, H: 0}},
		{10, 1, galaxy.Viewport{W: 10, H: 0}},
	}
	for _, tt := range tests {
		if got := PixelViewport(tt.cols, tt.rows); got != tt.want {
			t.Errorf("PixelViewport(%d,%d) = %+v, want %+v", tt.cols, tt.rows, got, tt.want)
		}
	}
}

func TestCanvasHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2+HUDRows)
	c.Clear(colorful.Color{})
	red := colorful.Color{R: 1}
	// Pixel (1, 1) is the bottom half of cell (1, 0).
	c.FillCircle(galaxy.Point{X: 1.5, Y: 1.5}, 0.8, red, 1)

	cells := c.Compose()
	got := cells[0][1]
	if got.Ch != '▀' {
		t.Fatalf("cell rune = %q", got.Ch)
	}
	if got.FgR != 0 || got.BgR == 0 {
		t.Errorf("top/bottom colors = fg %d bg %d, want dark top and red bottom", got.FgR, got.BgR)
	}
	if cells[0][0].BgR != 0 {
		t.Error("neighbouring cell tinted")
	}
}

func TestCanvasSubPixelCircle(t *testing.T) {
	c := NewCanvas(3, 1+HUDRows)
	c.Clear(colorful.Color{})
	c.FillCircle(galaxy.Point{X: 1.2, Y: 0.2}, 0.1, colorful.Color{R: 1, G: 1, B: 1}, 1)
	cell := c.Compose()[0][1]
	if cell.FgR == 0 {
		t.Error("tiny circle left no trace")
	}
	if cell.FgR > 10 {
		t.Errorf("tiny circle too bright: %d", cell.FgR)
	}
}

func TestCanvasFlushDiff(t *testing.T) {
	c := NewCanvas(10, 4+HUDRows)
	c.Clear(BackgroundColor)
	c.DrawHUD(HUD{Title: "Codex Numeris", Projects: 1234})
	first := c.Flush()
	if !strings.Contains(first, MoveTo(1, 1)) || !strings.HasSuffix(first, Reset) {
		t.Fatalf("first frame not a full repaint: %q", first)
	}

	c.Clear(BackgroundColor)
	c.DrawHUD(HUD{Title: "Codex Numeris", Projects: 1234})
	if out := c.Flush(); out != "" {
		t.Errorf("unchanged frame emitted %q", out)
	}

	c.Clear(BackgroundColor)
	c.FillCircle(galaxy.Point{X: 5, Y: 3}, 2, colorful.Color{G: 1}, 1)
	c.DrawHUD(HUD{Title: "Codex Numeris", Projects: 1234})
	out := c.Flush()
	if out == "" || strings.Contains(out, MoveTo(1, 1)) {
		t.Errorf("diff should only touch the circle: %q", out)
	}

	c.Invalidate()
	c.Clear(BackgroundColor)
	if out := c.Flush(); !strings.Contains(out, MoveTo(1, 1)) {
		t.Error("Invalidate did not force a repaint")
	}
}

func TestCanvasTextAndHUD(t *testing.T) {
	c := NewCanvas(100, 5+HUDRows)
	c.Clear(BackgroundColor)
	c.Text(galaxy.Point{X: 20, Y: 0}, "2020", LabelSize, AlignCenterTop, colorful.Color{R: 1, G: 1, B: 1}, 1)
	c.DrawHUD(HUD{Title: "Codex", Projects: 5, Category: "Go", Year: galaxy.All, ResetHint: true, Status: "open: https://x", Link: "https://x"})
	cells := c.Compose()

	var row strings.Builder
	for _, cell := range cells[0][18:22] {
		row.WriteRune(cell.Ch)
	}
	if row.String() != "2020" {
		t.Errorf("label = %q", row.String())
	}

	hud := rowText(cells[5+1])
	for _, want := range []string{"Codex", "5 projects", "Go", "All Years", "[r] reset"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if cells[5+2][1].Link != "https://x" {
		t.Error("status line not linked")
	}
}

func rowText(cells []Cell) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteRune(c.Ch)
	}
	return sb.String()
}

func TestTooltipPlacement(t *testing.T) {
	c := NewCanvas(60, 20+HUDRows)
	c.Clear(BackgroundColor)
	lines := []TooltipLine{{Text: "name", Style: StyleTitle}, {Text: "body"}}

	c.DrawTooltip(lines, galaxy.Point{X: 10, Y: 10})
	cells := c.Compose()
	if cells[5][12].Ch != '┌' {
		t.Errorf("popup corner = %q, want right of pointer", cells[5][12].Ch)
	}

	c.Clear(BackgroundColor)
	c.DrawTooltip(lines, galaxy.Point{X: 58, Y: 38})
	cells = c.Compose()
	// 8 wide popup flips left of the pointer and up into the scene.
	if cells[16][48].Ch != '┌' {
		t.Errorf("flipped popup corner = %q", cells[16][48].Ch)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"link keeps label", "See [the docs](https://x.org) now", "See the docs now"},
		{"emphasis dropped", "A **bold** and _quiet_ tool", "A bold and quiet tool"},
		{"newlines kept", "line one\nline two", "line one\nline two"},
		{"empty", "", ""},
		{"autolink", "<https://x.org>", "https://x.org"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("word ", 120) // 600 chars
	got := Truncate(long, MaxDescription)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("no ellipsis: %q", got[len(got)-10:])
	}
	body := strings.TrimSuffix(got, "...")
	if len(body) > MaxDescription || strings.HasSuffix(body, " ") || !strings.HasSuffix(body, "word") {
		t.Errorf("cut mid-word or too long: len %d, tail %q", len(body), body[len(body)-6:])
	}

	solid := strings.Repeat("x", 600)
	if got := Truncate(solid, 500); got != strings.Repeat("x", 500)+"..." {
		t.Errorf("no-space cut length %d", len(got))
	}
	if Truncate("short", 500) != "short" {
		t.Error("short text changed")
	}
	if Description("") != NoDescription {
		t.Error("missing description placeholder")
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("the quick brown fox jumps\nover", 10)
	want := []string{"the quick", "brown fox", "jumps", "over"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Wrap = %q, want %q", got, want)
	}
	got = Wrap("abcdefghijkl", 5)
	if strings.Join(got, "|") != "abcde|fghij|kl" {
		t.Errorf("long word = %q", got)
	}
}

func TestTooltipLines(t *testing.T) {
	it := &catalog.Item{
		Name:         "galaxy",
		Organization: "harvard",
		Description:  "Maps [projects](https://x) over time",
		Stars:        12345,
		Category:     "Go",
		CreatedAt:    time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC),
		URL:          "https://github.com/harvard/galaxy",
	}
	lines := TooltipLines(it, TooltipWidth)
	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	all := strings.Join(texts, "\n")
	for _, want := range []string{"galaxy", "Organization: harvard", "Maps projects over time", "★ 12,345 stars", "Go language", "Created on March 4, 2020", "View on GitHub"} {
		if !strings.Contains(all, want) {
			t.Errorf("tooltip missing %q:\n%s", want, all)
		}
	}
	if last := lines[len(lines)-1]; last.Link != it.URL || last.Style != StyleLink {
		t.Errorf("last line = %+v", last)
	}

	bare := TooltipLines(&catalog.Item{Name: "x", CreatedAt: it.CreatedAt}, TooltipWidth)
	for _, l := range bare {
		if strings.HasPrefix(l.Text, "Organization") || strings.HasSuffix(l.Text, "language") {
			t.Errorf("optional line shown for bare item: %q", l.Text)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Errorf("FormatCount = %q", got)
	}
}

func sceneFixture(vp galaxy.Viewport) Scene {
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []catalog.Item{{Name: "a", Stars: 500, CreatedAt: created, Category: "Go"}}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := galaxy.LayoutOptions{Now: now}
	orbs, ext := galaxy.BuildOrbs(items, vp, opts)
	cam := galaxy.NewCamera()
	cam.Initialize(ext, vp)
	// Look straight at the orb.
	cam.X, cam.Y = orbs[0].X, orbs[0].Y
	return Scene{
		Ready:    true,
		View:     cam.View(),
		Viewport: vp,
		Orbs:     orbs,
		Hovered:  orbs[0],
		Axes:     opts.Axes(items, vp),
		Palette:  galaxy.NewPalette(),
	}
}

func TestDrawSceneRaster(t *testing.T) {
	r, err := NewRaster(160, 100)
	if err != nil {
		t.Fatal(err)
	}
	sc := sceneFixture(r.Size())
	DrawScene(r, sc)
	img := r.Image()

	cr, cg, cb, _ := img.At(80, 50).RGBA()
	if cr>>8 < 200 || cg>>8 < 200 || cb>>8 < 200 {
		t.Errorf("orb core not bright: %d,%d,%d", cr>>8, cg>>8, cb>>8)
	}
	br, bg, bb, _ := img.At(2, 2).RGBA()
	if br>>8 > 40 || bg>>8 > 50 || bb>>8 > 60 {
		t.Errorf("corner not background: %d,%d,%d", br>>8, bg>>8, bb>>8)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 160 || decoded.Bounds().Dy() != 100 {
		t.Errorf("decoded size %v", decoded.Bounds())
	}

	buf.Reset()
	if err := Encode(&buf, img, FormatWebP); err != nil || buf.Len() == 0 {
		t.Errorf("webp encode: %v (%d bytes)", err, buf.Len())
	}
}

func TestDrawSceneNotReady(t *testing.T) {
	c := NewCanvas(20, 10+HUDRows)
	sc := sceneFixture(c.Size())
	sc.Ready = false
	DrawScene(c, sc)
	cells := c.Compose()
	br, bg, bb := rgb(BackgroundColor)
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			cell := cells[y][x]
			if cell.FgR != br || cell.FgG != bg || cell.FgB != bb {
				t.Fatalf("cell (%d,%d) drawn before load", x, y)
			}
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out/galaxy.webp", FormatWebP, false},
		{"GALAXY.PNG", FormatPNG, false},
		{"galaxy.jpg", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}
