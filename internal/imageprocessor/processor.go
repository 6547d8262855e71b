package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Processor готовит изображения билетов: масштаб, белые поля, PNG
type Processor struct {
	margin int // поля вокруг изображения в пикселях
}

func NewProcessor(margin int) *Processor {
	if margin < 0 {
		margin = 0
	}
	return &Processor{margin: margin}
}

// Fit вписывает изображение в квадрат size x size с белыми полями.
// NearestNeighbor сохраняет резкие края модулей QR-кода.
func (p *Processor) Fit(img image.Image, size int) image.Image {
	if size <= 2*p.margin {
		size = 2*p.margin + 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	inner := image.Rect(p.margin, p.margin, size-p.margin, size-p.margin)
	draw.NearestNeighbor.Scale(dst, inner, img, img.Bounds(), draw.Over, nil)

	return dst
}

// EncodePNG кодирует изображение в PNG
func (p *Processor) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// GetImageDimensions returns the dimensions of an image
func GetImageDimensions(reader io.Reader) (width, height int, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
