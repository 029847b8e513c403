package repo

// ClipboardRepo writes to the system text clipboard
type ClipboardRepo interface {
	// WriteText replaces the clipboard contents with text
	WriteText(text string) error
}
