package mapper

import (
	"strings"
)

// PathError is an error annotated with the member path it happened at, like
// "Header.Entries[2].Name".
type PathError struct {
	Path string
	Err  error
}

// Error implements error interface.
func (e *PathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// path tracks the member currently being processed.
type path []string

func (p *path) push(s string) {
	*p = append(*p, s)
}

func (p *path) pop() {
	*p = (*p)[:len(*p)-1]
}

func (p path) String() string {
	return strings.Join(p, "")
}
