package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	imageMargin = 20
	jpegQuality = 90

	// maxImageSide is the largest width or height a JPEG can encode
	maxImageSide = 65535
)

var face = basicfont.Face7x13

// ErrImageTooLarge is returned when text needs a canvas larger than a JPEG
// can hold.
var ErrImageTooLarge = errors.New("table too large for a single jpeg")

// JPEG rasterises text onto a white canvas sized to fit it and writes the
// image to w. Characters the font lacks are drawn as boxes.
func JPEG(w io.Writer, text string) error {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return errors.New("nothing to render")
	}
	lines := strings.Split(text, "\n")

	cols := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > cols {
			cols = n
		}
	}

	width := cols*face.Advance + 2*imageMargin
	height := len(lines)*face.Height + 2*imageMargin
	if width > maxImageSide || height > maxImageSide {
		return fmt.Errorf("%w: %dx%d pixels", ErrImageTooLarge, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(imageMargin, imageMargin+face.Ascent+i*face.Height)
		d.DrawString(l)
	}

	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return nil
}

// SaveJPEG renders text with JPEG into a new file at path. No file is left
// behind when rendering fails.
func SaveJPEG(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := JPEG(f, text); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
