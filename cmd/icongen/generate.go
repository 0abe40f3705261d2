package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/minglog/icongen/internal/art"
	"github.com/minglog/icongen/internal/ico"
)

// runGenerate renders the manifest's icon set and writes every asset:
// one PNG per requested size, the main PNG, and a single-image ICO.
func runGenerate(m Manifest) error {
	opts, err := artOptions(m)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(m.OutDir, 0755); err != nil {
		return fmt.Errorf("create dir %s: %w", m.OutDir, err)
	}

	for _, size := range m.Sizes {
		img, err := art.Render(size, opts)
		if err != nil {
			return fmt.Errorf("render %dpx: %w", size, err)
		}
		data, err := encodePNG(img)
		if err != nil {
			return fmt.Errorf("encode %dpx: %w", size, err)
		}
		path := filepath.Join(m.OutDir, fmt.Sprintf("%s-%d.png", m.BaseName, size))
		if err := writeFileAtomic(path, data); err != nil {
			return err
		}
		log.Printf("Wrote %s (%s)", path, formatByteSize(len(data)))
	}

	// Main PNG at the ICO source size, then the ICO built from it.
	img, err := art.Render(m.IcoSize, opts)
	if err != nil {
		return fmt.Errorf("render %dpx: %w", m.IcoSize, err)
	}
	pngData, err := encodePNG(img)
	if err != nil {
		return fmt.Errorf("encode %dpx: %w", m.IcoSize, err)
	}
	mainPath := filepath.Join(m.OutDir, m.BaseName+".png")
	if err := writeFileAtomic(mainPath, pngData); err != nil {
		return err
	}
	log.Printf("Wrote %s (%s)", mainPath, formatByteSize(len(pngData)))

	var icoData []byte
	if m.IcoFormat == "bmp" {
		icoData = ico.FromImage(img).Encode()
	} else {
		icoData = ico.WrapPNG(pngData, m.IcoSize, m.IcoSize)
	}
	icoPath := filepath.Join(m.OutDir, m.BaseName+".ico")
	if err := writeFileAtomic(icoPath, icoData); err != nil {
		return err
	}
	log.Printf("Wrote %s (%s)", icoPath, formatByteSize(len(icoData)))

	return nil
}

// encodePNG encodes an image as PNG bytes.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to path via a temp file in the target
// directory and an atomic rename, so a failed run never leaves a
// truncated asset behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
