package stool

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

const (
	vetBelow   = 70
	watchBelow = 130
)

// Classify maps an average 0-255 brightness to a result.
func Classify(brightness float64) model.StoolResult {
	switch {
	case brightness < vetBelow:
		return model.StoolVet
	case brightness < watchBelow:
		return model.StoolWatch
	default:
		return model.StoolHealthy
	}
}

// Brightness is the mean of (r+g+b)/3 over all pixels on a 0-255 scale.
func Brightness(img image.Image) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			sum += float64(r>>8+g>>8+bl>>8) / 3
		}
	}
	return sum / float64(n)
}

func Analyze(r io.Reader) (model.StoolResult, float64, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", 0, fmt.Errorf("decode stool photo: %w", err)
	}
	brightness := Brightness(img)
	return Classify(brightness), brightness, nil
}

func AnalyzeFile(path string) (model.StoolResult, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open stool photo: %w", err)
	}
	defer f.Close()
	return Analyze(f)
}
