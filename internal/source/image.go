package source

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Suv00m/movis/internal/compose"
)

// DirSource serves the image files of a directory (or a single image
// file) as frames, in lexical filename order.
type DirSource struct {
	paths []string

	mu     sync.Mutex
	frames []*image.RGBA
}

// OpenDir scans path for png/jpeg files. A plain file path becomes a
// one-frame source.
func OpenDir(path string) (*DirSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch filepath.Ext(entry.Name()) {
			case ".jpg", ".jpeg", ".png":
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &DirSource{paths: paths, frames: make([]*image.RGBA, len(paths))}, nil
}

func (s *DirSource) Count() int { return len(s.paths) }

func (s *DirSource) Frame(index int) (*image.RGBA, error) {
	if err := checkIndex(index, len(s.paths)); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frames[index] != nil {
		return s.frames[index], nil
	}
	img, err := DecodeImage(s.paths[index])
	if err != nil {
		return nil, err
	}
	s.frames[index] = img
	return s.frames[index], nil
}

func (s *DirSource) Close() error { return nil }

// DecodeImage decodes the image file at path into a zero-origin RGBA
// buffer.
func DecodeImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return compose.ToRGBA(img), nil
}
