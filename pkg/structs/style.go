package structs

// Style is the look a user asked for. The core only logs it.
type Style string

const (
	StyleNone     Style = "no-style"
	StyleMonogram Style = "monogram"
	StyleAbstract Style = "abstract"
	StyleMascot   Style = "mascot"
)

func IsKnownStyle(s Style) bool {
	switch s {
	case StyleNone, StyleMonogram, StyleAbstract, StyleMascot:
		return true
	default:
		return false
	}
}
