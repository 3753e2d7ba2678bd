package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

var errNotPPM = errors.New("ppm: not a P3 or P6 portable pixmap")

// maxPixels caps the image size a header may declare.
const maxPixels = 1 << 28

func init() {
	image.RegisterFormat("ppm", "P6", DecodePPM, DecodePPMConfig)
	image.RegisterFormat("ppm", "P3", DecodePPM, DecodePPMConfig)
}

// EncodePPM writes img as a binary (P6) portable pixmap with maxval 255.
func EncodePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	row := make([]byte, 0, 3*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row = row[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			row = append(row, c.R, c.G, c.B)
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type ppmHeader struct {
	binary        bool
	width, height int
	maxval        int
}

func readHeader(br *bufio.Reader) (ppmHeader, error) {
	magic, err := token(br)
	if err != nil {
		return ppmHeader{}, err
	}
	var h ppmHeader
	switch magic {
	case "P6":
		h.binary = true
	case "P3":
	default:
		return ppmHeader{}, errNotPPM
	}
	fields := []*int{&h.width, &h.height, &h.maxval}
	for _, f := range fields {
		tok, err := token(br)
		if err != nil {
			return ppmHeader{}, err
		}
		if *f, err = strconv.Atoi(tok); err != nil {
			return ppmHeader{}, fmt.Errorf("ppm: bad header field %q: %w", tok, err)
		}
	}
	if h.width <= 0 || h.height <= 0 || h.maxval <= 0 || h.maxval > 65535 {
		return ppmHeader{}, fmt.Errorf("ppm: invalid header %dx%d maxval %d", h.width, h.height, h.maxval)
	}
	if h.width > maxPixels/h.height {
		return ppmHeader{}, fmt.Errorf("ppm: image %dx%d is too large", h.width, h.height)
	}
	return h, nil
}

// token reads the next whitespace separated header token, skipping comments.
// For binary files exactly one whitespace byte follows the last token.
func token(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func DecodePPMConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// DecodePPM reads a P3 (ASCII) or P6 (binary) portable pixmap.
func DecodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	scale := func(v int) uint8 {
		return uint8(v * 255 / h.maxval)
	}

	wide := h.maxval > 255
	sample := func() (int, error) {
		if !h.binary {
			tok, err := token(br)
			if err != nil {
				return 0, err
			}
			return strconv.Atoi(tok)
		}
		hi, err := br.ReadByte()
		if err != nil || !wide {
			return int(hi), err
		}
		lo, err := br.ReadByte()
		return int(hi)<<8 | int(lo), err
	}

	for i := 0; i < h.width*h.height; i++ {
		var rgb [3]int
		for c := range rgb {
			if rgb[c], err = sample(); err != nil {
				return nil, fmt.Errorf("ppm: pixel %d: %w", i, err)
			}
			if rgb[c] > h.maxval || rgb[c] < 0 {
				return nil, fmt.Errorf("ppm: pixel %d: sample %d exceeds maxval %d", i, rgb[c], h.maxval)
			}
		}
		img.Pix[4*i] = scale(rgb[0])
		img.Pix[4*i+1] = scale(rgb[1])
		img.Pix[4*i+2] = scale(rgb[2])
		img.Pix[4*i+3] = 255
	}
	return img, nil
}
