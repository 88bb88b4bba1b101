package render

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/HanHach/Codex-Numeris/internal/galaxy"
)

// HUD is the status panel under the scene.
type HUD struct {
	Title     string
	Projects  int
	Category  string
	Year      string
	ResetHint bool   // shown while a filter is active
	Status    string // transient message, replaces the key help
	Link      string // hyperlink target of Status
	Loading   bool
	Failed    bool
}

var (
	hudBG     = [3]uint8{15, 18, 30}
	hudDim    = [3]uint8{60, 65, 85}
	hudText   = [3]uint8{180, 180, 195}
	hudTitle  = [3]uint8{120, 190, 255}
	hudAccent = [3]uint8{100, 220, 220}
	hudWarn   = [3]uint8{240, 150, 90}
	hudLink   = [3]uint8{77, 171, 247}
)

const keyHelp = "drag/arrows pan  wheel/+- zoom  c/C language  y/Y year  click open  q quit"

// DrawHUD paints the panel into the bottom HUDRows rows.
func (c *Canvas) DrawHUD(h HUD) {
	hudY := c.height - HUDRows
	if hudY < 0 {
		return
	}

	// Row 0: thin gradient separator
	for x := 0; x < c.width; x++ {
		t := uint8(60 - x*40/max(c.width, 1))
		c.setBox(x, hudY, Cell{
			Ch: '━', FgR: 40 + t, FgG: 70 + t, FgB: 90 + t,
			BgR: hudBG[0], BgG: hudBG[1], BgB: hudBG[2],
		})
	}
	for row := 1; row < HUDRows; row++ {
		for x := 0; x < c.width; x++ {
			c.setBox(x, hudY+row, Cell{Ch: ' ', BgR: hudBG[0], BgG: hudBG[1], BgB: hudBG[2]})
		}
	}

	// Row 1: catalog and filters
	row1 := hudY + 1
	col := c.writeText(row1, 1, c.width, h.Title, hudTitle, hudBG, true, "")
	col = c.writeText(row1, col, c.width, "  │  ", hudDim, hudBG, false, "")
	switch {
	case h.Failed:
		col = c.writeText(row1, col, c.width, "catalog unavailable", hudWarn, hudBG, true, "")
	case h.Loading:
		col = c.writeText(row1, col, c.width, "loading catalog…", hudText, hudBG, false, "")
	default:
		col = c.writeText(row1, col, c.width, FormatCount(h.Projects)+" projects", hudText, hudBG, false, "")
	}
	col = c.writeText(row1, col, c.width, "  │  ", hudDim, hudBG, false, "")
	col = c.writeText(row1, col, c.width, "Language: ", hudDim, hudBG, false, "")
	col = c.writeText(row1, col, c.width, filterLabel(h.Category, "All Languages"), hudAccent, hudBG, true, "")
	col = c.writeText(row1, col, c.width, "  Year: ", hudDim, hudBG, false, "")
	col = c.writeText(row1, col, c.width, filterLabel(h.Year, "All Years"), hudAccent, hudBG, true, "")
	if h.ResetHint {
		col = c.writeText(row1, col, c.width, "  ", hudDim, hudBG, false, "")
		c.writeText(row1, col, c.width, "[r] reset", hudWarn, hudBG, true, "")
	}

	// Row 2: status or controls
	row2 := hudY + 2
	if h.Status != "" {
		fg := hudText
		if h.Link != "" {
			fg = hudLink
		}
		c.writeText(row2, 1, c.width, h.Status, fg, hudBG, false, h.Link)
	} else {
		c.writeText(row2, 1, c.width, keyHelp, [3]uint8{130, 130, 145}, hudBG, false, "")
	}
}

func filterLabel(v, all string) string {
	if v == "" || v == galaxy.All {
		return all
	}
	return v
}

// DrawTooltip paints the hover popup next to the pointer (screen pixels),
// flipping to the left or up when it would leave the scene.
func (c *Canvas) DrawTooltip(lines []TooltipLine, pointer galaxy.Point) {
	if len(lines) == 0 {
		return
	}
	textW := 0
	for _, l := range lines {
		textW = max(textW, runewidth.StringWidth(l.Text))
	}
	popupW := textW + 4 // "│ " + text + " │"
	popupH := len(lines) + 2
	sceneRows := c.sceneRows()
	if popupW > c.width || popupH > sceneRows {
		return
	}

	px, py := int(pointer.X), int(pointer.Y)/2
	popupX := px + 2
	if popupX+popupW > c.width {
		popupX = px - 2 - popupW
	}
	popupX = max(popupX, 0)
	popupY := py
	if popupY+popupH > sceneRows {
		popupY = sceneRows - popupH
	}
	popupY = max(popupY, 0)

	border := [3]uint8{200, 180, 120}
	bg := [3]uint8{30, 25, 45}
	body := [3]uint8{240, 230, 200}

	set := func(x, y int, ch rune, fg [3]uint8) {
		c.setBox(x, y, Cell{Ch: ch, FgR: fg[0], FgG: fg[1], FgB: fg[2], BgR: bg[0], BgG: bg[1], BgB: bg[2]})
	}

	// Top border: ┌──...──┐
	set(popupX, popupY, '┌', border)
	for i := 1; i < popupW-1; i++ {
		set(popupX+i, popupY, '─', border)
	}
	set(popupX+popupW-1, popupY, '┐', border)

	for i, l := range lines {
		y := popupY + 1 + i
		set(popupX, y, '│', border)
		for x := popupX + 1; x < popupX+popupW-1; x++ {
			set(x, y, ' ', body)
		}
		fg, bold := lineColor(l.Style)
		c.writeText(y, popupX+2, popupX+popupW-2, l.Text, fg, bg, bold, l.Link)
		set(popupX+popupW-1, y, '│', border)
	}

	// Bottom border: └──...──┘
	botY := popupY + popupH - 1
	set(popupX, botY, '└', border)
	for i := 1; i < popupW-1; i++ {
		set(popupX+i, botY, '─', border)
	}
	set(popupX+popupW-1, botY, '┘', border)
}

func lineColor(s LineStyle) ([3]uint8, bool) {
	switch s {
	case StyleTitle:
		return [3]uint8{255, 255, 255}, true
	case StyleMeta:
		return [3]uint8{200, 200, 215}, false
	case StyleLink:
		return hudLink, true
	default:
		return [3]uint8{240, 230, 200}, false
	}
}

// StatusLink formats the message shown after an orb is opened remotely.
func StatusLink(url string) string {
	return fmt.Sprintf("open: %s", url)
}
