package server

import (
	"strconv"
	"unicode/utf8"

	"github.com/HanHach/Codex-Numeris/internal/explore"
)

// parseInput converts raw terminal bytes into explorer events. It handles
// arrow keys (CSI and SS3 forms), SGR mouse reports (ESC [ < b ; x ; y M|m), focus reports
// (ESC [ I, ESC [ O) and single-key bindings. An escape sequence cut off at
// the end of data is returned as rest, to be prefixed to the next read.
func parseInput(data []byte) (events []explore.InputEvent, rest []byte) {
	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			if i+1 >= len(data) {
				return events, data[i:]
			}
			if data[i+1] == 'O' {
				// SS3: arrows in application cursor mode
				if i+2 >= len(data) {
					return events, data[i:]
				}
				if a, ok := arrowAction(data[i+2]); ok {
					events = append(events, explore.InputEvent{Action: a})
				}
				i += 3
				continue
			}
			if data[i+1] != '[' {
				// Alt-modified key or bare escape: ignored
				i += 2
				continue
			}
			end := csiEnd(data, i+2)
			if end < 0 {
				return events, data[i:]
			}
			if ev, ok := parseCSI(data[i+2 : end+1]); ok {
				events = append(events, ev)
			}
			i = end + 1
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 && !utf8.FullRune(data[i:]) {
			return events, data[i:]
		}
		if a := explore.KeyAction(r); a != explore.ActionNone {
			events = append(events, explore.InputEvent{Action: a})
		}
		i += size
	}
	return events, nil
}

// csiEnd returns the index of the final byte of a CSI sequence whose
// parameters start at from, or -1 when the sequence is incomplete.
func csiEnd(data []byte, from int) int {
	for j := from; j < len(data); j++ {
		if data[j] >= 0x40 && data[j] <= 0x7e {
			return j
		}
	}
	return -1
}

// parseCSI decodes the body of a CSI sequence, final byte included.
func parseCSI(seq []byte) (explore.InputEvent, bool) {
	final := seq[len(seq)-1]
	if len(seq) == 1 {
		if a, ok := arrowAction(final); ok {
			return explore.InputEvent{Action: a}, true
		}
		switch final {
		case 'I':
			return explore.InputEvent{Action: explore.ActionFocus}, true
		case 'O':
			return explore.InputEvent{Action: explore.ActionBlur}, true
		}
		return explore.InputEvent{}, false
	}
	if seq[0] == '<' && (final == 'M' || final == 'm') {
		return parseSGRMouse(seq[1:len(seq)-1], final == 'm')
	}
	return explore.InputEvent{}, false
}

func arrowAction(b byte) (explore.Action, bool) {
	switch b {
	case 'A':
		return explore.ActionPanUp, true
	case 'B':
		return explore.ActionPanDown, true
	case 'C':
		return explore.ActionPanRight, true
	case 'D':
		return explore.ActionPanLeft, true
	}
	return explore.ActionNone, false
}

// SGR mouse button bits.
const (
	mouseButtonMask = 0x03
	mouseMotion     = 0x20
	mouseWheel      = 0x40
)

func parseSGRMouse(params []byte, release bool) (explore.InputEvent, bool) {
	var fields [3]int
	n := 0
	start := 0
	for j := 0; j <= len(params); j++ {
		if j < len(params) && params[j] != ';' {
			continue
		}
		if n == len(fields) {
			return explore.InputEvent{}, false
		}
		v, err := strconv.Atoi(string(params[start:j]))
		if err != nil {
			return explore.InputEvent{}, false
		}
		fields[n] = v
		n++
		start = j + 1
	}
	if n != len(fields) {
		return explore.InputEvent{}, false
	}

	b, col, row := fields[0], fields[1]-1, fields[2]-1
	btn := b & mouseButtonMask

	var a explore.Action
	switch {
	case b&mouseWheel != 0:
		switch btn {
		case 0:
			a = explore.ActionWheelUp
		case 1:
			a = explore.ActionWheelDown
		default:
			return explore.InputEvent{}, false // horizontal wheel
		}
	case release:
		if btn == 0 {
			a = explore.ActionRelease
		} else {
			a = explore.ActionPointer
		}
	case b&mouseMotion != 0:
		if btn == 0 {
			a = explore.ActionDrag
		} else {
			a = explore.ActionPointer
		}
	case btn == 0:
		a = explore.ActionPress
	default:
		a = explore.ActionPointer
	}
	return explore.PointerEvent(a, col, row), true
}
