package render

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/HanHach/Codex-Numeris/internal/galaxy"
)

// HUDRows is the number of terminal rows reserved below the scene.
const HUDRows = 3

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
	Link          string // OSC 8 target, "" for none
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// label is text blended over the scene pixels at compose time.
type label struct {
	ch    rune
	color colorful.Color
	alpha float64
}

// Canvas is a per-session terminal surface. Each scene cell shows two
// vertically stacked pixels with the upper half block, so the pixel grid is
// cols wide and 2*(rows-HUDRows) tall. Frames are emitted as a diff against
// the previous frame.
type Canvas struct {
	width, height int // terminal cells
	pixW, pixH    int
	pix           []colorful.Color
	labels        [][]label
	boxes         [][]Cell // opaque cells over everything, Ch 0 = none
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewCanvas creates a canvas for the given terminal dimensions.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// PixelViewport returns the scene size in pixels for a terminal size.
func PixelViewport(cols, rows int) galaxy.Viewport {
	sceneRows := max(rows-HUDRows, 0)
	return galaxy.Viewport{W: float64(max(cols, 0)), H: float64(sceneRows * 2)}
}

// Resize adjusts the canvas for a new terminal size and forces a full redraw.
func (c *Canvas) Resize(cols, rows int) {
	c.width = max(cols, 0)
	c.height = max(rows, 0)
	vp := PixelViewport(cols, rows)
	c.pixW, c.pixH = int(vp.W), int(vp.H)
	c.pix = make([]colorful.Color, c.pixW*c.pixH)
	c.labels = make([][]label, c.height)
	for y := range c.labels {
		c.labels[y] = make([]label, c.width)
	}
	c.boxes = c.makeBuffer(Cell{})
	c.current = c.makeBuffer(sentinel)
	c.next = c.makeBuffer(Cell{})
	c.firstFrame = true
}

// Dimensions returns the terminal size in cells.
func (c *Canvas) Dimensions() (cols, rows int) {
	return c.width, c.height
}

func (c *Canvas) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, c.height)
	for y := 0; y < c.height; y++ {
		buf[y] = make([]Cell, c.width)
		for x := 0; x < c.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

func (c *Canvas) sceneRows() int {
	return c.pixH / 2
}

// Size implements Surface.
func (c *Canvas) Size() galaxy.Viewport {
	return galaxy.Viewport{W: float64(c.pixW), H: float64(c.pixH)}
}

// Clear implements Surface. It also drops labels, popups and the HUD.
func (c *Canvas) Clear(col colorful.Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.labels[y][x] = label{}
			c.boxes[y][x] = Cell{}
		}
	}
}

func (c *Canvas) blend(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.pixW || y < 0 || y >= c.pixH || alpha <= 0 {
		return
	}
	i := y*c.pixW + x
	c.pix[i] = c.pix[i].BlendRgb(col, math.Min(alpha, 1))
}

// FillCircle implements Surface. Circles smaller than a pixel still tint the
// pixel under their center in proportion to their area.
func (c *Canvas) FillCircle(center galaxy.Point, diameter float64, col colorful.Color, alpha float64) {
	if diameter <= 0 {
		return
	}
	r := diameter / 2
	x0, x1 := int(math.Floor(center.X-r)), int(math.Ceil(center.X+r))
	y0, y1 := int(math.Floor(center.Y-r)), int(math.Ceil(center.Y+r))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.pixW-1), min(y1, c.pixH-1)

	covered := false
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - center.Y
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - center.X
			if dx*dx+dy*dy <= r*r {
				c.blend(x, y, col, alpha)
				covered = true
			}
		}
	}
	if !covered {
		c.blend(int(math.Floor(center.X)), int(math.Floor(center.Y)), col, alpha*math.Min(1, math.Pi*r*r))
	}
}

// StrokeCircle implements Surface.
func (c *Canvas) StrokeCircle(center galaxy.Point, diameter, width float64, col colorful.Color, alpha float64) {
	r := diameter / 2
	hw := math.Max(width/2, 0.5)
	outer := r + hw
	x0, x1 := max(int(math.Floor(center.X-outer)), 0), min(int(math.Ceil(center.X+outer)), c.pixW-1)
	y0, y1 := max(int(math.Floor(center.Y-outer)), 0), min(int(math.Ceil(center.Y+outer)), c.pixH-1)

	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - center.Y
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - center.X
			if math.Abs(math.Hypot(dx, dy)-r) <= hw {
				c.blend(x, y, col, alpha)
			}
		}
	}
}

// TextSize implements Surface. A character is one cell, one pixel wide and
// two tall, whatever the requested size.
func (c *Canvas) TextSize(s string, size float64) (float64, float64) {
	return float64(utf8.RuneCountInString(s)), 2
}

// Text implements Surface.
func (c *Canvas) Text(at galaxy.Point, s string, size float64, align Align, col colorful.Color, alpha float64) {
	w, h := c.TextSize(s, size)
	tl := anchor(at, w, h, align)
	row := int(math.Floor(tl.Y / 2))
	x := int(math.Floor(tl.X))
	for _, r := range s {
		c.setLabel(x, row, r, col, alpha)
		x++
	}
}

// VerticalText implements Surface. Terminals cannot rotate glyphs, so the
// characters are stacked one per row.
func (c *Canvas) VerticalText(at galaxy.Point, s string, size float64, col colorful.Color, alpha float64) {
	n := utf8.RuneCountInString(s)
	x := int(math.Floor(at.X))
	row := int(math.Floor(at.Y/2)) - n/2
	for _, r := range s {
		c.setLabel(x, row, r, col, alpha)
		row++
	}
}

func (c *Canvas) setLabel(x, row int, r rune, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.width || row < 0 || row >= c.sceneRows() {
		return
	}
	if r == ' ' {
		return
	}
	c.labels[row][x] = label{ch: r, color: col, alpha: alpha}
}

func (c *Canvas) setBox(x, y int, cell Cell) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.boxes[y][x] = cell
	}
}

// writeText writes colored text into a bounded region [col, maxCol). Returns the next column position.
func (c *Canvas) writeText(row, col, maxCol int, text string, fg, bg [3]uint8, bold bool, link string) int {
	for _, r := range text {
		if col >= maxCol || col >= c.width {
			break
		}
		c.setBox(col, row, Cell{
			Ch: r, FgR: fg[0], FgG: fg[1], FgB: fg[2],
			BgR: bg[0], BgG: bg[1], BgB: bg[2],
			Bold: bold, Link: link,
		})
		col++
	}
	return col
}

func rgb(col colorful.Color) (uint8, uint8, uint8) {
	return col.Clamped().RGB255()
}

// Compose flattens pixels, labels and boxes into the cell grid of the next
// frame and returns it. The grid stays valid until the next Compose or Flush.
func (c *Canvas) Compose() [][]Cell {
	scene := c.sceneRows()
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if b := c.boxes[y][x]; b.Ch != 0 {
				c.next[y][x] = b
				continue
			}
			if y >= scene {
				c.next[y][x] = Cell{Ch: ' '}
				continue
			}
			top := c.pix[(2*y)*c.pixW+x]
			bot := c.pix[(2*y+1)*c.pixW+x]
			if l := c.labels[y][x]; l.ch != 0 {
				bg := top.BlendRgb(bot, 0.5)
				fg := bg.BlendRgb(l.color, l.alpha)
				cell := Cell{Ch: l.ch}
				cell.FgR, cell.FgG, cell.FgB = rgb(fg)
				cell.BgR, cell.BgG, cell.BgB = rgb(bg)
				c.next[y][x] = cell
				continue
			}
			cell := Cell{Ch: '▀'}
			cell.FgR, cell.FgG, cell.FgB = rgb(top)
			cell.BgR, cell.BgG, cell.BgB = rgb(bot)
			c.next[y][x] = cell
		}
	}
	return c.next
}

// Flush composes the frame and returns the ANSI bytes that turn the
// previous frame into it.
func (c *Canvas) Flush() string {
	c.Compose()

	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			nc := c.next[y][x]
			if c.firstFrame || nc != c.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	c.current, c.next = c.next, c.current
	c.firstFrame = false

	return sb.String()
}

// Invalidate forces the next Flush to repaint every cell.
func (c *Canvas) Invalidate() {
	c.firstFrame = true
}
