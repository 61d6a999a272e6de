package nav

// Mode is the list the popup is showing.
type Mode int

const (
	ModeBookmarks Mode = iota
	ModeLabels
	ModeUsage
)

// Modes lists the modes in cycling order.
var Modes = []Mode{ModeBookmarks, ModeLabels, ModeUsage}

func (m Mode) String() string {
	switch m {
	case ModeLabels:
		return "labels"
	case ModeUsage:
		return "usage"
	default:
		return "bookmarks"
	}
}

// Title is the tab caption.
func (m Mode) Title() string {
	switch m {
	case ModeLabels:
		return "Labels"
	case ModeUsage:
		return "Usage"
	default:
		return "Bookmarks"
	}
}

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode {
	return Modes[(m.index()+1)%len(Modes)]
}

// Prev returns the preceding mode, wrapping around.
func (m Mode) Prev() Mode {
	return Modes[(m.index()+len(Modes)-1)%len(Modes)]
}

func (m Mode) index() int {
	for i, mode := range Modes {
		if mode == m {
			return i
		}
	}
	return 0
}
