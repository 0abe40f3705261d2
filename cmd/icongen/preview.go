package main

import (
	"fmt"
	"log"

	"fyne.io/systray"

	"github.com/minglog/icongen/internal/art"
)

// trayIconSize is the render size for the preview tray icon.
const trayIconSize = 64

// previewApp shows the manifest's icon in the system tray so the
// palette can be eyeballed before regenerating assets.
type previewApp struct {
	manifest Manifest
	quit     chan struct{} // closed on shutdown

	mSummary *systray.MenuItem
	mQuit    *systray.MenuItem
}

func newPreviewApp(m Manifest) *previewApp {
	return &previewApp{manifest: m, quit: make(chan struct{})}
}

// Run starts the systray. Blocks until the tray exits.
func (p *previewApp) Run() {
	systray.Run(p.onReady, p.onExit)
}

// Shutdown signals the preview to stop.
func (p *previewApp) Shutdown() {
	select {
	case <-p.quit:
		// already closed
	default:
		close(p.quit)
	}
	systray.Quit()
}

// onReady is called by systray when the tray is ready.
func (p *previewApp) onReady() {
	systray.SetTitle("")
	systray.SetTooltip(previewTooltip(p.manifest))

	p.mSummary = systray.AddMenuItem(previewSummary(p.manifest), "Manifest summary")
	p.mSummary.Disable()
	systray.AddSeparator()
	p.mQuit = systray.AddMenuItem("Quit", "Quit the preview")

	if err := p.setIcon(); err != nil {
		log.Printf("Preview icon error: %v", err)
	}

	go p.eventLoop()
}

// onExit is called when the systray is shutting down.
func (p *previewApp) onExit() {
	select {
	case <-p.quit:
	default:
		close(p.quit)
	}
}

// eventLoop handles menu item clicks.
func (p *previewApp) eventLoop() {
	for {
		select {
		case <-p.quit:
			return
		case <-p.mQuit.ClickedCh:
			p.Shutdown()
			return
		}
	}
}

// setIcon renders the manifest's logo and installs it as the tray icon.
func (p *previewApp) setIcon() error {
	opts, err := artOptions(p.manifest)
	if err != nil {
		return err
	}
	img, err := art.Render(trayIconSize, opts)
	if err != nil {
		return err
	}
	data, err := iconToBytes(img)
	if err != nil {
		return err
	}
	systray.SetIcon(data)
	return nil
}

// previewSummary is the disabled menu line describing the manifest.
func previewSummary(m Manifest) string {
	if m.Letter == "" {
		return fmt.Sprintf("(no letter) on %s", m.Background)
	}
	return fmt.Sprintf("%q on %s", m.Letter, m.Background)
}

// previewTooltip generates tooltip text from the manifest.
func previewTooltip(m Manifest) string {
	lines := "icongen preview"
	lines += "\n" + previewSummary(m)
	lines += fmt.Sprintf("\nsizes: %s", formatSizeList(m.Sizes))
	lines += fmt.Sprintf("\nico: %dpx %s", m.IcoSize, m.IcoFormat)
	return lines
}
