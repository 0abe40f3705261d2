//go:build windows

package main

import (
	"image"

	"github.com/minglog/icongen/internal/ico"
)

// iconToBytes encodes an image as ICO (with embedded PNG) for Windows
// systray. Windows LoadImage requires ICO format; PNG-in-ICO is
// supported since Vista.
func iconToBytes(img image.Image) ([]byte, error) {
	pngData, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	return ico.WrapPNG(pngData, img.Bounds().Dx(), img.Bounds().Dy()), nil
}
