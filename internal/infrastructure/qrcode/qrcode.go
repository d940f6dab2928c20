package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qr "github.com/skip2/go-qrcode"
)

const (
	DefaultSize   = 256
	DefaultMargin = 2
)

// Generator renders QR codes as black on white PNG images.
type Generator struct {
	size   int
	margin int
}

func NewGenerator() *Generator {
	return &Generator{size: DefaultSize, margin: DefaultMargin}
}

// PNG encodes content into a size x size PNG surrounded by a quiet zone of
// margin modules.
func (g *Generator) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content is empty")
	}

	code, err := qr.New(content, qr.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	// go-qrcode always pads with four modules; the quiet zone is drawn below.
	code.DisableBorder = true
	bitmap := code.Bitmap()

	modules := len(bitmap)
	total := modules + 2*g.margin
	img := image.NewGray(image.Rect(0, 0, g.size, g.size))

	for y := 0; y < g.size; y++ {
		my := y*total/g.size - g.margin
		for x := 0; x < g.size; x++ {
			mx := x*total/g.size - g.margin
			c := color.Gray{Y: 0xff}
			if my >= 0 && my < modules && mx >= 0 && mx < modules && bitmap[my][mx] {
				c = color.Gray{Y: 0x00}
			}
			img.SetGray(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL returns the PNG as a data URL suitable for an <img> src.
func (g *Generator) DataURL(content string) (string, error) {
	data, err := g.PNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
