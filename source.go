package lipdk

import (
	"fmt"
	"io"
)

// Opener is an interface to a resource which can be repeatedly Opened (and
// the returned ReadCloser subsequently read). Each call to Open returns a
// ReadCloser which reads the resource from the beginning, so a failed decode
// can always start over from a fresh reader.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// OpenStringer is an Opener which also has a String method returning the
// name of the resource being opened (e.g. a file path or URL).
type OpenStringer interface {
	fmt.Stringer
	Opener
}
