// Package file provides a lipdk.OpenStringer for archives on the local
// filesystem.
package file

import (
	"io"
	"os"

	"github.com/paleodata/lipdk"
	"github.com/pkg/errors"
)

// Source opens a local archive file.
type Source struct {
	path string
}

var _ lipdk.OpenStringer = &Source{}

// NewSource gets a new file source for the archive at pathname. The file
// must exist and not be a directory.
func NewSource(pathname string) (*Source, error) {
	info, err := os.Stat(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "statting path")
	}
	if info.IsDir() {
		return nil, errors.Errorf("'%v' is a directory, want an archive file", pathname)
	}
	return &Source{path: pathname}, nil
}

// Open implements lipdk.Opener.
func (s *Source) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	return f, errors.Wrapf(err, "opening %s", s.path)
}

// String implements fmt.Stringer.
func (s *Source) String() string { return s.path }
