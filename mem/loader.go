package mem

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// LoadFrom fills the storage from r, starting at offset 0, until r is drained
// or the storage is full. Bytes past the end of the input keep their previous
// contents. It returns the number of bytes loaded.
func (s *Storage) LoadFrom(r io.Reader) (int, error) {
	n, err := io.ReadFull(r, s.data)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}

	return n, errors.Wrap(err, "reading memory image")
}

// Load fills the storage with the content of the binary file at path.
func (s *Storage) Load(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening memory image %s", path)
	}
	defer f.Close()

	n, err := s.LoadFrom(f)
	if err != nil {
		return n, errors.Wrapf(err, "loading %s", path)
	}

	return n, nil
}
