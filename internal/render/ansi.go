package render

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	OSC   = ESC + "]"
	ST    = ESC + "\\"
	Reset = CSI + "0m"
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// EnableMouse turns on button, drag and motion reporting in SGR encoding.
func EnableMouse() string {
	return CSI + "?1000h" + CSI + "?1002h" + CSI + "?1003h" + CSI + "?1006h"
}

// DisableMouse undoes EnableMouse.
func DisableMouse() string {
	return CSI + "?1006l" + CSI + "?1003l" + CSI + "?1002l" + CSI + "?1000l"
}

// EnableFocus turns on focus in/out reports.
func EnableFocus() string {
	return CSI + "?1004h"
}

// DisableFocus turns off focus reports.
func DisableFocus() string {
	return CSI + "?1004l"
}

// Hyperlink wraps text in an OSC 8 link.
func Hyperlink(url, text string) string {
	return OSC + "8;;" + url + ST + text + OSC + "8;;" + ST
}

// WriteCellSGR writes a single cell's full SGR + character to the builder.
// Uses combined SGR to avoid state leakage between cells. Linked cells are
// wrapped in their own OSC 8 pair; terminals merge adjacent cells that share
// a target.
func WriteCellSGR(sb *strings.Builder, c Cell) {
	if c.Bold {
		sb.WriteString("\x1b[0;1;38;2;")
	} else {
		sb.WriteString("\x1b[0;38;2;")
	}
	sb.WriteString(strconv.Itoa(int(c.FgR)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.FgG)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.FgB)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(c.BgR)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.BgG)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.BgB)))
	sb.WriteByte('m')
	if c.Link != "" {
		sb.WriteString(Hyperlink(c.Link, string(c.Ch)))
		return
	}
	sb.WriteRune(c.Ch)
}
