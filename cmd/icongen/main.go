package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/minglog/icongen/internal/art"
)

// Build-time variables injected via ldflags.
var (
	Version        = "v0.0.0"
	CommitHash     = "dev"
	BuildTimestamp = "1970-01-01T00:00:00Z"
	Builder        = "unknown"
	GithubRepo     = "minglog/icongen"
)

func versionString() string {
	return fmt.Sprintf("icongen %s-%s", Version, CommitHash)
}

func versionStringLong() string {
	return fmt.Sprintf("icongen %s-%s (built %s using %s)\nhttps://github.com/%s\n",
		Version, CommitHash, BuildTimestamp, Builder, GithubRepo)
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmsgprefix)
	log.SetPrefix("[icongen] ")

	showVersion := flag.Bool("version", false, "show version and exit")
	doUpdate := flag.Bool("update", false, "check and update to latest release")
	manifestFlag := flag.String("manifest", "", "manifest path (env: ICONGEN_MANIFEST, default icongen.yaml)")
	outDir := flag.String("out", "", "output directory (env: ICONGEN_OUT_DIR)")
	letter := flag.String("letter", "", "logo letter, a single rune (env: ICONGEN_LETTER)")
	background := flag.String("background", "", "background color as #rrggbb[aa] (env: ICONGEN_BACKGROUND)")
	fontName := flag.String("font-name", "", "logo font: bold, regular (env: ICONGEN_FONT_NAME)")
	icoFormat := flag.String("ico-format", "", "ico payload: png, bmp (env: ICONGEN_ICO_FORMAT)")
	sizes := flag.String("sizes", "", "comma-separated PNG sizes (env: ICONGEN_SIZES)")
	preview := flag.Bool("preview", false, "show the icon in the system tray instead of writing files")
	flag.Usage = func() {
		fmt.Print(versionStringLong())
		fmt.Fprintf(os.Stderr, "\nUsage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Print(versionStringLong())
		return
	}

	if *doUpdate {
		selfUpdate()
		return
	}

	// Resolve manifest path: default < env < flag.
	if v := os.Getenv("ICONGEN_MANIFEST"); v != "" {
		manifestPath = v
	}
	if *manifestFlag != "" {
		manifestPath = *manifestFlag
	}

	m := loadManifest()
	applyOverrides(&m, overrides{
		OutDir:     *outDir,
		Letter:     *letter,
		Background: *background,
		FontName:   *fontName,
		IcoFormat:  *icoFormat,
		Sizes:      *sizes,
	})

	if *preview {
		runPreview(m)
		return
	}

	if err := runGenerate(m); err != nil {
		if errors.Is(err, art.ErrFontUnavailable) {
			fmt.Println("The logo font is unavailable; the letter cannot be drawn.")
			fmt.Println("Set an empty letter in the manifest to generate letterless icons.")
		}
		log.Fatalf("Generation failed: %v", err)
	}
}

// runPreview shows the manifest's icon in the system tray until quit.
func runPreview(m Manifest) {
	app := newPreviewApp(m)

	// Handle interrupt for clean shutdown (SIGINT on all platforms,
	// SIGTERM on Unix).
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	notifyExtraSignals(sigCh)
	go func() {
		<-sigCh
		log.Println("Signal received, shutting down...")
		app.Shutdown()
	}()

	app.Run()
}

// overrides holds CLI flag values for manifest overrides.
type overrides struct {
	OutDir     string
	Letter     string
	Background string
	FontName   string
	IcoFormat  string
	Sizes      string
}

// parseSizeList parses a comma-separated list of pixel sizes.
func parseSizeList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", p)
		}
		if v <= 0 || v > maxSize {
			return nil, fmt.Errorf("size %d out of range 1-%d", v, maxSize)
		}
		sizes = append(sizes, v)
	}
	return sizes, nil
}

// applyStringOverride applies a string override from env var and flag.
// Non-empty values are accepted only if valid returns true.
func applyStringOverride(target *string, envKey, flagName, flagVal string, valid func(string) bool) {
	if v := os.Getenv(envKey); v != "" {
		if !valid(v) {
			log.Printf("Ignoring invalid %s=%q", envKey, v)
		} else {
			*target = v
		}
	}
	if flagVal != "" {
		if !valid(flagVal) {
			log.Printf("Ignoring invalid -%s=%q", flagName, flagVal)
		} else {
			*target = flagVal
		}
	}
}

// applyOverrides applies env vars and flags to the manifest.
// Priority: flag > env > manifest file.
func applyOverrides(m *Manifest, o overrides) {
	applyStringOverride(&m.OutDir, "ICONGEN_OUT_DIR", "out", o.OutDir,
		func(string) bool { return true })
	applyStringOverride(&m.Letter, "ICONGEN_LETTER", "letter", o.Letter, validLetter)
	applyStringOverride(&m.Background, "ICONGEN_BACKGROUND", "background", o.Background, validHexColor)
	applyStringOverride(&m.FontName, "ICONGEN_FONT_NAME", "font-name", o.FontName, art.ValidFontName)
	applyStringOverride(&m.IcoFormat, "ICONGEN_ICO_FORMAT", "ico-format", o.IcoFormat, validIcoFormat)

	// Sizes: parsed as a list, kept inline.
	if v := os.Getenv("ICONGEN_SIZES"); v != "" {
		if sizes, err := parseSizeList(v); err != nil {
			log.Printf("Ignoring invalid ICONGEN_SIZES=%q: %v", v, err)
		} else {
			m.Sizes = sizes
		}
	}
	if o.Sizes != "" {
		if sizes, err := parseSizeList(o.Sizes); err != nil {
			log.Printf("Ignoring invalid -sizes=%q: %v", o.Sizes, err)
		} else {
			m.Sizes = sizes
		}
	}
}
