package ticketqr

import (
	"fmt"
	"strings"

	"sueta_backend/internal/imageprocessor"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize   = 256
	defaultMargin = 16
)

// Generator делает PNG с QR-кодом ссылки на страницу статуса билета
type Generator struct {
	baseURL   string
	size      int
	processor *imageprocessor.Processor
}

func NewGenerator(publicBaseURL string, size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{
		baseURL:   strings.TrimRight(publicBaseURL, "/"),
		size:      size,
		processor: imageprocessor.NewProcessor(defaultMargin),
	}
}

// StatusURL - адрес страницы статуса билета пользователя
func (g *Generator) StatusURL(userID uint) string {
	return fmt.Sprintf("%s/event/ticket_status/%d", g.baseURL, userID)
}

// ObjectPath - путь файла в хранилище; повторная генерация перезаписывает его
func ObjectPath(userID uint) string {
	return fmt.Sprintf("qrcodes/user_%d.png", userID)
}

// Generate кодирует ссылку на статус билета в PNG
func (g *Generator) Generate(userID uint) ([]byte, error) {
	qr, err := qrcode.New(g.StatusURL(userID), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}
	qr.DisableBorder = true

	img := g.processor.Fit(qr.Image(g.size), g.size)
	return g.processor.EncodePNG(img)
}
