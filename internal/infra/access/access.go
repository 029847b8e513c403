// Package access answers whether the message store may be read
package access

// Checker is the capability query used to gate the engine
type Checker struct{}

// NewChecker creates a checker
func NewChecker() *Checker {
	return &Checker{}
}

// Readable reports whether path exists and the process may read it
func (c *Checker) Readable(path string) bool {
	if path == "" {
		return false
	}
	return readable(path)
}
