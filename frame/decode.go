// SPDX-License-Identifier: GPL-2.0-or-later

package frame

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"anicursor/anierr"
	"anicursor/cur"

	ico "github.com/sergeymakinen/go-ico"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// Decode turns a frame blob into an image. ICO and CUR frames holding a PNG
// payload are decoded directly, BMP payloads go through the ICO decoder.
// Anything else is left to the registered image formats.
func Decode(data []byte) (image.Image, error) {
	if bytes.HasPrefix(data, pngMagic) {
		return decodePNG(data)
	}
	if _, _, err := cur.ReadDir(data); err == nil {
		p, err := cur.Image(data)
		if err != nil {
			return nil, err
		}
		if bytes.HasPrefix(p, pngMagic) {
			return decodePNG(p)
		}
		img, err := ico.Decode(bytes.NewReader(cur.Normalize(data)))
		if err != nil {
			return nil, anierr.Wrap(anierr.ImageDecodeError, err, "icon")
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, anierr.Wrap(anierr.ImageDecodeError, err, "frame image")
	}
	return img, nil
}

func decodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, anierr.Wrap(anierr.ImageDecodeError, err, "png")
	}
	return img, nil
}
