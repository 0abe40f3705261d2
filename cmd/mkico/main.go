// mkico writes a minimal single-image 16x16 ICO file, a placeholder
// for build pipelines that need an icon before real assets exist.
//
// Usage: mkico [output.ico]
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minglog/icongen/internal/ico"
)

const iconSize = 16

// placeholderBitmap returns a solid light-blue opaque 16x16 image.
func placeholderBitmap() *ico.Bitmap {
	return &ico.Bitmap{
		Width:  iconSize,
		Height: iconSize,
		Pix:    bytes.Repeat([]byte{0x80, 0x80, 0xFF, 0xFF}, iconSize*iconSize),
	}
}

func main() {
	output := filepath.Join("icons", "icon.ico")
	if len(os.Args) > 1 {
		output = os.Args[1]
	}

	data := placeholderBitmap().Encode()

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", dir, err)
			os.Exit(1)
		}
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("Created %s (%d bytes)\n", output, len(data))
}
