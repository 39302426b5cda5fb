// Package lipd decodes LiPD (Linked Paleo Data) archives into a
// lipdk.Library. An archive is a zip whose entries are either nested .lpd
// bundles (one dataset each) or bagit-style dataset directories holding a
// jsonld metadata document plus the CSV measurement tables it names. The
// codec owns all format details; callers only ever see decoded values.
package lipd

import (
	"archive/zip"
	"bytes"
	"io/ioutil"
	"path"
	"strings"

	"github.com/paleodata/lipdk"
	"github.com/pkg/errors"
)

// Read decodes an archive from a random access reader.
func Read(r *zip.Reader) (*lipdk.Library, error) {
	lib := &lipdk.Library{}
	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}

	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		switch {
		case strings.HasSuffix(f.Name, ".lpd"):
			data, err := readEntry(f)
			if err != nil {
				return nil, err
			}
			nested, err := ReadBytes(data)
			if err != nil {
				return nil, errors.Wrapf(err, "decoding nested bundle '%v'", f.Name)
			}
			lib.Datasets = append(lib.Datasets, nested.Datasets...)
		case strings.HasSuffix(f.Name, ".jsonld"):
			meta, err := readEntry(f)
			if err != nil {
				return nil, err
			}
			dir := path.Dir(f.Name)
			ds, err := decodeDataset(meta, func(name string) ([]byte, error) {
				return readNamed(files, dir, name)
			})
			if err != nil {
				return nil, errors.Wrapf(err, "decoding dataset '%v'", f.Name)
			}
			lib.Datasets = append(lib.Datasets, ds)
		}
	}
	if len(lib.Datasets) == 0 {
		return nil, errors.New("no datasets in archive")
	}
	return lib, nil
}

// ReadBytes decodes an archive held in memory.
func ReadBytes(data []byte) (*lipdk.Library, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "opening zip")
	}
	return Read(zr)
}

// ReadOpener fetches the whole archive from an Opener and decodes it. This
// is the usual entry point: the opener comes from the file, http, or s3
// package (or the fetch package's resolver).
func ReadOpener(o lipdk.OpenStringer) (*lipdk.Library, error) {
	rc, err := o.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", o)
	}
	defer rc.Close()
	data, err := ioutil.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %v", o)
	}
	lib, err := ReadBytes(data)
	return lib, errors.Wrapf(err, "decoding %v", o)
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening zip entry '%v'", f.Name)
	}
	defer rc.Close()
	data, err := ioutil.ReadAll(rc)
	return data, errors.Wrapf(err, "reading zip entry '%v'", f.Name)
}

// readNamed finds a CSV file referenced by the metadata. The filename is
// usually relative to the jsonld's directory, but some bundles reference
// bare names from the bundle root, so fall back to a basename match.
func readNamed(files map[string]*zip.File, dir, name string) ([]byte, error) {
	if f, ok := files[path.Join(dir, name)]; ok {
		return readEntry(f)
	}
	if f, ok := files[name]; ok {
		return readEntry(f)
	}
	for p, f := range files {
		if path.Base(p) == name {
			return readEntry(f)
		}
	}
	return nil, errors.Errorf("no entry '%v' (looked in '%v' and bundle root)", name, dir)
}
