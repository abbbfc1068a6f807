package source

import (
	"image"
	"sync"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Suv00m/movis/internal/compose"
)

// QRSource renders a QR code for a piece of content (usually a URL) as
// a single frame, for use as an overlay layer.
type QRSource struct {
	content string
	size    int

	once sync.Once
	img  *image.RGBA
	err  error
}

// NewQR prepares a QR source rendering content at size pixels per side.
func NewQR(content string, size int) *QRSource {
	if size <= 0 {
		size = 256
	}
	return &QRSource{content: content, size: size}
}

func (s *QRSource) Count() int { return 1 }

func (s *QRSource) Frame(index int) (*image.RGBA, error) {
	if err := checkIndex(index, 1); err != nil {
		return nil, err
	}
	s.once.Do(func() {
		qr, err := qrcode.New(s.content, qrcode.Medium)
		if err != nil {
			s.err = err
			return
		}
		s.img = compose.ToRGBA(qr.Image(s.size))
	})
	return s.img, s.err
}

func (s *QRSource) Close() error { return nil }
