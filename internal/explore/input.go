package explore

import "github.com/HanHach/Codex-Numeris/internal/galaxy"

// Action represents one explorer input.
type Action int

const (
	ActionNone Action = iota
	ActionPointer     // pointer moved, no button held
	ActionPress       // primary button pressed
	ActionDrag        // pointer moved with the primary button held
	ActionRelease     // primary button released
	ActionWheelUp
	ActionWheelDown
	ActionBlur // terminal or window lost focus
	ActionFocus
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionZoomIn
	ActionZoomOut
	ActionNextCategory
	ActionPrevCategory
	ActionNextYear
	ActionPrevYear
	ActionReset
	ActionResize
	ActionQuit
)

// InputEvent carries an action into the frame loop. Pointer actions carry
// the pointer position in scene pixels; ActionResize carries the new
// terminal size in cells.
type InputEvent struct {
	Action Action
	X, Y   float64
	Cols   int
	Rows   int
}

// CellPoint converts a 0-based terminal cell to the scene pixel at its
// center. Each cell is one pixel wide and two tall.
func CellPoint(col, row int) galaxy.Point {
	return galaxy.Point{X: float64(col) + 0.5, Y: float64(row)*2 + 1}
}

// PointerEvent builds a pointer action at a terminal cell.
func PointerEvent(a Action, col, row int) InputEvent {
	p := CellPoint(col, row)
	return InputEvent{Action: a, X: p.X, Y: p.Y}
}

// ResizeEvent builds a resize action.
func ResizeEvent(cols, rows int) InputEvent {
	return InputEvent{Action: ActionResize, Cols: cols, Rows: rows}
}

// KeyAction maps a printable key to its action, ActionNone when unbound.
func KeyAction(r rune) Action {
	switch r {
	case 'w', 'W':
		return ActionPanUp
	case 's', 'S':
		return ActionPanDown
	case 'a', 'A':
		return ActionPanLeft
	case 'd', 'D':
		return ActionPanRight
	case '+', '=':
		return ActionZoomIn
	case '-', '_':
		return ActionZoomOut
	case 'c':
		return ActionNextCategory
	case 'C':
		return ActionPrevCategory
	case 'y':
		return ActionNextYear
	case 'Y':
		return ActionPrevYear
	case 'r', 'R':
		return ActionReset
	case 'q', 'Q':
		return ActionQuit
	case 3: // Ctrl-C
		return ActionQuit
	}
	return ActionNone
}
