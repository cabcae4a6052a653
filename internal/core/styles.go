package core

import (
	"fmt"
	"log"
	"os"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/xpdesk/internal/config"
)

const stylesTemplate = `
* {
    font-family: %[1]s;
    font-size: %[2]dpx;
}

#desktop {
    background-color: %[3]s;
}

.xp-window {
    background-color: %[7]s;
    border: 2px solid %[4]s;
    border-radius: 8px 8px 0 0;
    margin: 12px;
    opacity: 1;
    transition: opacity 500ms ease-in-out;
}

.xp-titlebar {
    background-image: linear-gradient(to bottom, #0997ff, %[4]s);
    color: #ffffff;
    padding: 4px 6px;
}

.xp-titlebar-text {
    color: #ffffff;
    font-weight: bold;
}

.xp-control {
    min-width: 22px;
    min-height: 22px;
    padding: 0;
    border-radius: 3px;
    color: #ffffff;
    background-image: linear-gradient(to bottom, #3c8cf4, #1e5fd2);
}

.xp-control.close {
    background-image: linear-gradient(to bottom, #e8744a, #c1401c);
}

.xp-window-content {
    padding: 12px;
    color: #000000;
}

.xp-window.window-state-transition {
    transition: opacity 600ms ease-in-out;
}

.xp-window.minimizing {
    opacity: 0.1;
}

.xp-window.closing {
    opacity: 0;
}

.xp-window.restoring,
.xp-window.opening {
    animation: xp-fade-in 500ms ease-out;
}

.xp-window.window-collection {
    animation: xp-fade-in 800ms ease-out;
}

.xp-window.maximized {
    margin: 0;
    border-radius: 0;
}

#taskbar {
    background-image: linear-gradient(to bottom, #3168d5, %[5]s);
    min-height: %[9]dpx;
}

.task-button {
    color: #ffffff;
    background-image: linear-gradient(to bottom, #3c81f3, #1c55d2);
    border-radius: 3px;
    margin: 3px 2px;
}

#start-button {
    color: #ffffff;
    font-style: italic;
    font-weight: bold;
    background-image: linear-gradient(to bottom, #5eac56, %[6]s);
    border-radius: 0 10px 10px 0;
    padding: 0 18px;
}

#start-button.start-button-pulse {
    animation: xp-pulse 2s ease-in-out infinite;
}

#start-button.start-button-highlight {
    background-image: none;
    background-color: %[8]s;
    color: #000000;
}

@keyframes xp-fade-in {
    from { opacity: 0.1; }
    to { opacity: 1; }
}

@keyframes xp-pulse {
    0% { box-shadow: 0 0 0 0 alpha(%[8]s, 0.8); }
    50% { box-shadow: 0 0 6px 3px alpha(%[8]s, 0.8); }
    100% { box-shadow: 0 0 0 0 alpha(%[8]s, 0.8); }
}
`

// buildStyles renders the stylesheet for the configured colors.
func buildStyles(s config.StylingConfig, taskbarHeight int) string {
	return fmt.Sprintf(stylesTemplate,
		s.FontFamily,
		s.FontSize,
		s.DesktopColor,
		s.TitlebarColor,
		s.TaskbarColor,
		s.StartColor,
		s.WindowColor,
		s.HighlightColor,
		taskbarHeight,
	)
}

var globalStyleProvider *gtk.CssProvider

func SetupStyles(cfg *config.Config) {
	screen, err := gdk.ScreenGetDefault()
	if err != nil || screen == nil {
		log.Printf("Warning: Failed to get default screen: %v", err)
		return
	}

	provider, _ := gtk.CssProviderNew()
	if err := provider.LoadFromData(buildStyles(cfg.Styling, cfg.Taskbar.Height)); err != nil {
		log.Printf("Warning: Failed to load default styles: %v", err)
		return
	}

	globalStyleProvider = provider
	gtk.AddProviderForScreen(screen, provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)

	if cfg.Styling.CustomCSS != "" {
		LoadCustomCSS(cfg.Styling.CustomCSS)
	}
}

func LoadCustomCSS(path string) {
	screen, err := gdk.ScreenGetDefault()
	if err != nil || screen == nil {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Failed to read custom CSS %s: %v", path, err)
		return
	}

	provider, _ := gtk.CssProviderNew()
	if err := provider.LoadFromData(string(data)); err != nil {
		log.Printf("Warning: Failed to load custom CSS %s: %v", path, err)
		return
	}
	gtk.AddProviderForScreen(screen, provider, gtk.STYLE_PROVIDER_PRIORITY_USER)
}

type styled interface {
	GetStyleContext() (*gtk.StyleContext, error)
}

// setStyleClass adds or removes a CSS class on a widget.
func setStyleClass(w styled, class string, on bool) {
	ctx, err := w.GetStyleContext()
	if err != nil {
		return
	}
	if on {
		ctx.AddClass(class)
	} else {
		ctx.RemoveClass(class)
	}
}
