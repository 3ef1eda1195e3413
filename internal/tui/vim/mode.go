package vim

// Mode is the editing mode shown in the status bar.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// ModeOf returns ModeInsert while a component is editing text.
func ModeOf(editing bool) Mode {
	if editing {
		return ModeInsert
	}
	return ModeNormal
}
