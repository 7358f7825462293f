// Package render turns presentation slides into PNG thumbnails for the
// HTML report.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	goppt "github.com/VantageDataChat/GoPPT"
	"golang.org/x/image/draw"
)

// renderWidth is the width slides are rasterized at before downscaling.
const renderWidth = 1280

// Thumbnails renders every slide of the deck at path and returns one PNG
// per slide, scaled so the widest dimension is maxWidth pixels. Slides
// that fail to render are returned as nil entries so the caller keeps
// slide numbering intact.
func Thumbnails(path string, maxWidth int) (out [][]byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("slide rendering panicked: %v", r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pres, err := goppt.ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open presentation for rendering: %w", err)
	}
	defer pres.Close()

	slides := pres.Slides()

	opts := goppt.DefaultRenderOptions()
	opts.Width = renderWidth
	opts.FontCache = goppt.NewFontCache()

	rendered, renderErr := pres.SlidesToImages(opts)
	if renderErr != nil {
		log.Printf("batch slide rendering failed, retrying per slide: %v", renderErr)
	}

	out = make([][]byte, len(slides))
	for i := range slides {
		var img image.Image
		if renderErr == nil && i < len(rendered) {
			img = rendered[i]
		} else {
			single, sErr := pres.SlideToImage(i, opts)
			if sErr != nil {
				log.Printf("slide %d rendering failed: %v", i+1, sErr)
				continue
			}
			img = single
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, Scale(img, maxWidth)); err != nil {
			log.Printf("slide %d PNG encoding failed: %v", i+1, err)
			continue
		}
		out[i] = buf.Bytes()
	}
	return out, nil
}

// Scale downscales img so its width is at most maxWidth, preserving the
// aspect ratio. Images already narrow enough come back unchanged.
func Scale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
