package ntuple

import "fmt"

// ErrOpenFile represents an error when opening or creating a file.
type ErrOpenFile struct {
	Path string
	Err  error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Path, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrMissingObject represents a tree or histogram that is absent from a file.
type ErrMissingObject struct {
	Path string
	Name string
	Err  error
}

func (e *ErrMissingObject) Error() string {
	return fmt.Sprintf("no object %q in file %q: %v", e.Name, e.Path, e.Err)
}

func (e *ErrMissingObject) Unwrap() error { return e.Err }
