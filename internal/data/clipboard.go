package data

import (
	"github.com/devricklin/teleport/internal/biz/repo"
)

type clipboardWriter interface {
	Write(text string) error
}

// clipboardRepo implements the clipboard repository
type clipboardRepo struct {
	client clipboardWriter
}

// NewClipboardRepo creates a new clipboard repository
func NewClipboardRepo(client clipboardWriter) repo.ClipboardRepo {
	return &clipboardRepo{client: client}
}

// WriteText replaces the clipboard contents
func (r *clipboardRepo) WriteText(text string) error {
	return r.client.Write(text)
}
