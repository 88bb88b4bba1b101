package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/HanHach/Codex-Numeris/internal/explore"
)

// Translator turns tcell events into explorer events. tcell reports the
// held buttons on every mouse event, so press, drag and release are
// derived from the previous state.
type Translator struct {
	held bool
}

// Translate maps ev, reporting false for events the explorer ignores.
func (t *Translator) Translate(ev tcell.Event) (explore.InputEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		return explore.ResizeEvent(cols, rows), true
	case *tcell.EventFocus:
		if ev.Focused {
			return explore.InputEvent{Action: explore.ActionFocus}, true
		}
		t.held = false
		return explore.InputEvent{Action: explore.ActionBlur}, true
	case *tcell.EventMouse:
		return t.mouse(ev), true
	case *tcell.EventKey:
		return key(ev)
	}
	return explore.InputEvent{}, false
}

func (t *Translator) mouse(ev *tcell.EventMouse) explore.InputEvent {
	col, row := ev.Position()
	buttons := ev.Buttons()

	var a explore.Action
	primary := buttons&tcell.Button1 != 0
	switch {
	case buttons&tcell.WheelUp != 0:
		a = explore.ActionWheelUp
	case buttons&tcell.WheelDown != 0:
		a = explore.ActionWheelDown
	case primary && !t.held:
		a = explore.ActionPress
	case primary:
		a = explore.ActionDrag
	case t.held:
		a = explore.ActionRelease
	default:
		a = explore.ActionPointer
	}
	if a != explore.ActionWheelUp && a != explore.ActionWheelDown {
		t.held = primary
	}
	return explore.PointerEvent(a, col, row)
}

func key(ev *tcell.EventKey) (explore.InputEvent, bool) {
	var a explore.Action
	switch ev.Key() {
	case tcell.KeyUp:
		a = explore.ActionPanUp
	case tcell.KeyDown:
		a = explore.ActionPanDown
	case tcell.KeyLeft:
		a = explore.ActionPanLeft
	case tcell.KeyRight:
		a = explore.ActionPanRight
	case tcell.KeyCtrlC:
		a = explore.ActionQuit
	case tcell.KeyRune:
		a = explore.KeyAction(ev.Rune())
	}
	if a == explore.ActionNone {
		return explore.InputEvent{}, false
	}
	return explore.InputEvent{Action: a}, true
}
