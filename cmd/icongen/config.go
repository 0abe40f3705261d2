package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/minglog/icongen/internal/art"
)

// Manifest describes the icon set to generate.
type Manifest struct {
	Letter     string `yaml:"letter"`
	Background string `yaml:"background"`
	Ring       string `yaml:"ring"`
	Dots       string `yaml:"dots"`
	Text       string `yaml:"text"`
	FontName   string `yaml:"font_name"`
	Sizes      []int  `yaml:"sizes"`
	OutDir     string `yaml:"out_dir"`
	BaseName   string `yaml:"base_name"`
	IcoSize    int    `yaml:"ico_size"`
	IcoFormat  string `yaml:"ico_format"`
}

var manifestPath = "icongen.yaml"

// maxSize caps requested PNG sizes; nothing in a packaging pipeline
// needs more than 1024 px.
const maxSize = 1024

// defaultManifest returns a Manifest reproducing the stock logo set.
func defaultManifest() Manifest {
	return Manifest{
		Letter:     "M",
		Background: "#667eea",
		Ring:       "#ffffffb4",
		Dots:       "#ffffffc8",
		Text:       "#ffffff",
		FontName:   "bold",
		Sizes:      []int{16, 24, 32, 48, 64, 128, 256, 512},
		OutDir:     "assets",
		BaseName:   "icon",
		IcoSize:    256,
		IcoFormat:  "png",
	}
}

// validIcoFormat reports whether s names a supported ICO payload.
func validIcoFormat(s string) bool {
	return s == "png" || s == "bmp"
}

// validLetter accepts the empty string (no letter) or a single rune.
func validLetter(s string) bool {
	return s == "" || utf8.RuneCountInString(s) == 1
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa" into an RGBA color.
func parseHexColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("invalid color %q, want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// validHexColor reports whether s parses as a hex color.
func validHexColor(s string) bool {
	_, err := parseHexColor(s)
	return err == nil
}

// loadManifest loads the manifest from disk, creating a default one if
// it doesn't exist. Missing fields keep their defaults via unmarshal
// into a pre-populated struct.
func loadManifest() Manifest {
	m := defaultManifest()

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := saveManifest(m); writeErr != nil {
				log.Printf("Failed to write default manifest: %v", writeErr)
			} else {
				log.Printf("Created default manifest at %s", manifestPath)
			}
			return m
		}
		log.Printf("Failed to read manifest %s: %v", manifestPath, err)
		return m
	}

	if err := yaml.Unmarshal(data, &m); err != nil {
		log.Printf("Failed to parse manifest %s: %v", manifestPath, err)
		return defaultManifest()
	}

	defaults := defaultManifest()
	if !validLetter(m.Letter) {
		log.Printf("Invalid letter %q in manifest (want a single rune), using default %q", m.Letter, defaults.Letter)
		m.Letter = defaults.Letter
	}
	if !validHexColor(m.Background) {
		log.Printf("Invalid background %q in manifest, using default %q", m.Background, defaults.Background)
		m.Background = defaults.Background
	}
	if !validHexColor(m.Ring) {
		log.Printf("Invalid ring %q in manifest, using default %q", m.Ring, defaults.Ring)
		m.Ring = defaults.Ring
	}
	if !validHexColor(m.Dots) {
		log.Printf("Invalid dots %q in manifest, using default %q", m.Dots, defaults.Dots)
		m.Dots = defaults.Dots
	}
	if !validHexColor(m.Text) {
		log.Printf("Invalid text %q in manifest, using default %q", m.Text, defaults.Text)
		m.Text = defaults.Text
	}
	if m.FontName == "" || !art.ValidFontName(m.FontName) {
		if m.FontName != "" {
			log.Printf("Unknown font_name %q in manifest, using default %q", m.FontName, defaults.FontName)
		}
		m.FontName = defaults.FontName
	}
	m.Sizes = filterSizes(m.Sizes, defaults.Sizes)
	if m.OutDir == "" {
		m.OutDir = defaults.OutDir
	}
	if m.BaseName == "" {
		m.BaseName = defaults.BaseName
	}
	if m.IcoSize <= 0 || m.IcoSize > 256 {
		log.Printf("Invalid ico_size %d in manifest (want 1-256), using default %d", m.IcoSize, defaults.IcoSize)
		m.IcoSize = defaults.IcoSize
	}
	if m.IcoFormat == "" || !validIcoFormat(m.IcoFormat) {
		if m.IcoFormat != "" {
			log.Printf("Unknown ico_format %q in manifest, using default %q", m.IcoFormat, defaults.IcoFormat)
		}
		m.IcoFormat = defaults.IcoFormat
	}

	return m
}

// filterSizes drops out-of-range sizes, falling back to defaults when
// nothing valid remains.
func filterSizes(sizes, defaults []int) []int {
	kept := make([]int, 0, len(sizes))
	for _, s := range sizes {
		if s <= 0 || s > maxSize {
			log.Printf("Ignoring invalid size %d in manifest (want 1-%d)", s, maxSize)
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return defaults
	}
	return kept
}

// artOptions builds render options from a validated manifest.
func artOptions(m Manifest) (art.Options, error) {
	o := art.Options{Letter: m.Letter, Font: m.FontName}
	var err error
	if o.Background, err = parseHexColor(m.Background); err != nil {
		return art.Options{}, fmt.Errorf("background: %w", err)
	}
	if o.Ring, err = parseHexColor(m.Ring); err != nil {
		return art.Options{}, fmt.Errorf("ring: %w", err)
	}
	if o.Dots, err = parseHexColor(m.Dots); err != nil {
		return art.Options{}, fmt.Errorf("dots: %w", err)
	}
	if o.Text, err = parseHexColor(m.Text); err != nil {
		return art.Options{}, fmt.Errorf("text: %w", err)
	}
	return o, nil
}

// saveManifest writes the manifest to disk.
func saveManifest(m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return writeFileAtomic(manifestPath, data)
}
