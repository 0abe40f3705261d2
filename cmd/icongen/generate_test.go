package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minglog/icongen/internal/art"
)

func TestRunGenerate_WritesAssets(t *testing.T) {
	dir := t.TempDir()
	m := defaultManifest()
	m.OutDir = dir
	m.Sizes = []int{16, 32}
	m.IcoSize = 64

	if err := runGenerate(m); err != nil {
		t.Fatalf("runGenerate error: %v", err)
	}

	for _, name := range []string{"icon-16.png", "icon-32.png", "icon.png", "icon.ico"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing asset %s: %v", name, err)
		}
	}

	// PNG magic on the size assets.
	data, err := os.ReadFile(filepath.Join(dir, "icon-16.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("icon-16.png does not start with the PNG signature")
	}

	// ICO magic, and a PNG payload at offset 22 for the default format.
	data, err = os.ReadFile(filepath.Join(dir, "icon.ico"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 30 || data[0] != 0 || data[1] != 0 || data[2] != 1 || data[3] != 0 {
		t.Fatal("icon.ico does not start with the ICO header")
	}
	if !bytes.HasPrefix(data[22:], []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("icon.ico payload is not PNG-compressed")
	}
}

func TestRunGenerate_BmpIco(t *testing.T) {
	dir := t.TempDir()
	m := defaultManifest()
	m.OutDir = dir
	m.Sizes = []int{16}
	m.IcoSize = 16
	m.IcoFormat = "bmp"

	if err := runGenerate(m); err != nil {
		t.Fatalf("runGenerate error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "icon.ico"))
	if err != nil {
		t.Fatal(err)
	}
	// 6 (header) + 16 (entry) + 40 (info) + 1024 (pixels) + 64 (mask)
	if len(data) != 1150 {
		t.Errorf("bmp icon.ico length = %d, want 1150", len(data))
	}
}

func TestRunGenerate_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	m := defaultManifest()
	m.OutDir = dir
	m.Sizes = []int{16}
	m.IcoSize = 16

	if err := runGenerate(m); err != nil {
		t.Fatalf("runGenerate error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bin")
	if err := writeFileAtomic(path, []byte("payload")); err != nil {
		t.Fatalf("writeFileAtomic error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want %q", data, "payload")
	}
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bin")
	os.WriteFile(path, []byte("old"), 0644)
	if err := writeFileAtomic(path, []byte("new")); err != nil {
		t.Fatalf("writeFileAtomic error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "x.bin")
	if err := writeFileAtomic(path, []byte("payload")); err == nil {
		t.Error("writeFileAtomic should fail when the directory is missing")
	}
}

func TestEncodePNG(t *testing.T) {
	m := defaultManifest()
	opts, err := artOptions(m)
	if err != nil {
		t.Fatal(err)
	}
	img, err := art.Render(32, opts)
	if err != nil {
		t.Fatal(err)
	}
	data, err := encodePNG(img)
	if err != nil {
		t.Fatalf("encodePNG error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("encodePNG output missing PNG signature")
	}
}
