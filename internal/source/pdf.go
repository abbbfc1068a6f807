package source

import (
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"

	"github.com/Suv00m/movis/internal/compose"
)

// PDFSource renders the pages of a PDF document as frames. Pages are
// rendered at a fixed DPI on first access and kept decoded.
type PDFSource struct {
	doc *fitz.Document
	dpi int

	mu    sync.Mutex
	pages []*image.RGBA
}

// OpenPDF opens the document at path. dpi <= 0 falls back to 150.
func OpenPDF(path string, dpi int) (*PDFSource, error) {
	if dpi <= 0 {
		dpi = 150
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{
		doc:   doc,
		dpi:   dpi,
		pages: make([]*image.RGBA, doc.NumPage()),
	}, nil
}

func (s *PDFSource) Count() int { return len(s.pages) }

func (s *PDFSource) Frame(index int) (*image.RGBA, error) {
	if err := checkIndex(index, len(s.pages)); err != nil {
		return nil, err
	}
	// fitz documents are not safe for concurrent page rendering.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pages[index] != nil {
		return s.pages[index], nil
	}
	img, err := s.doc.ImageDPI(index, float64(s.dpi))
	if err != nil {
		return nil, err
	}
	s.pages[index] = compose.ToRGBA(img)
	return s.pages[index], nil
}

func (s *PDFSource) Close() error { return s.doc.Close() }
