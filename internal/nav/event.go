package nav

// EventKind enumerates the inputs of the state machine.
type EventKind int

const (
	EventChar EventKind = iota
	EventBackspace
	EventUp
	EventDown
	EventSwitchMode
	EventNextMode
	EventPrevMode
	EventToggleByLabel
	EventToggleByID
	EventEnter
	EventEscape
	EventInterrupt
	EventEdit
	EventReload
	EventDescribe
	EventCopy
)

var eventNames = map[EventKind]string{
	EventChar:          "char",
	EventBackspace:     "backspace",
	EventUp:            "up",
	EventDown:          "down",
	EventSwitchMode:    "switch-mode",
	EventNextMode:      "next-mode",
	EventPrevMode:      "prev-mode",
	EventToggleByLabel: "toggle-by-label",
	EventToggleByID:    "toggle-by-id",
	EventEnter:         "enter",
	EventEscape:        "escape",
	EventInterrupt:     "interrupt",
	EventEdit:          "edit",
	EventReload:        "reload",
	EventDescribe:      "describe",
	EventCopy:          "copy",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one input. Rune is set for EventChar, Mode for EventSwitchMode.
type Event struct {
	Kind EventKind
	Rune rune
	Mode Mode
}

// Key builds an event without payload.
func Key(kind EventKind) Event { return Event{Kind: kind} }

// Char builds a character input event.
func Char(r rune) Event { return Event{Kind: EventChar, Rune: r} }

// SwitchTo builds a direct mode switch.
func SwitchTo(m Mode) Event { return Event{Kind: EventSwitchMode, Mode: m} }

// EffectKind enumerates the side effects a transition can request.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectDeliver
	EffectOpenEditor
	EffectReload
	EffectDescribe
	EffectCopy
	EffectExit
)

func (k EffectKind) String() string {
	switch k {
	case EffectDeliver:
		return "deliver"
	case EffectOpenEditor:
		return "open-editor"
	case EffectReload:
		return "reload"
	case EffectDescribe:
		return "describe"
	case EffectCopy:
		return "copy"
	case EffectExit:
		return "exit"
	default:
		return "none"
	}
}

// Effect is a request for the host. Text carries the command for Deliver and
// Copy and the description for Describe; Path carries the document for
// OpenEditor.
type Effect struct {
	Kind EffectKind
	Text string
	Exec bool
	Path string
}

// None reports whether the effect requests nothing.
func (e Effect) None() bool { return e.Kind == EffectNone }
