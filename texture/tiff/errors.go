package tiff

import "fmt"

// UnsupportedError reports a valid TIFF file this package cannot read.
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return "unsupported TIFF " + string(e)
}

func errUnsupported(what string) error {
	return UnsupportedError(what)
}

func errCorrupt(format string, args ...any) error {
	return fmt.Errorf("corrupt TIFF: "+format, args...)
}
