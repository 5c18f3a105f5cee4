package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/stellarhub/internal/behavior"
	"github.com/1broseidon/stellarhub/internal/config"
)

// InitForm collects the settings written by `config init`.
type InitForm struct {
	base *config.Config

	// Form-bound values (strings for huh, converted by Apply)
	fToggleKey    string
	fQuitKey      string
	fGlobalHotkey string
	fHandleWidth  string
	fMarginTop    string
	fMarginBottom string
	fMarginLeft   string
	fMarginRight  string
	fLogLevel     string
	fX11Cursors   bool
	fRetained     []string
}

// NewInitForm prefills the form from base, or from the defaults when base
// is nil.
func NewInitForm(base *config.Config) *InitForm {
	if base == nil {
		base = config.DefaultConfig()
	}
	return &InitForm{
		base:          base,
		fToggleKey:    base.ToggleKey,
		fQuitKey:      base.QuitKey,
		fGlobalHotkey: base.GlobalHotkey,
		fHandleWidth:  strconv.Itoa(base.ResizeHandleWidth),
		fMarginTop:    strconv.Itoa(base.WindowMargins.Top),
		fMarginBottom: strconv.Itoa(base.WindowMargins.Bottom),
		fMarginLeft:   strconv.Itoa(base.WindowMargins.Left),
		fMarginRight:  strconv.Itoa(base.WindowMargins.Right),
		fLogLevel:     base.LogLevel,
		fX11Cursors:   base.X11Cursors,
		fRetained:     append([]string(nil), base.RetainedBehaviors...),
	}
}

// Form builds the huh form bound to f. width is the terminal width.
func (f *InitForm) Form(width int) *huh.Form {
	w := width - 4
	if w < 40 {
		w = 40
	}

	levelOpts := []huh.Option[string]{
		huh.NewOption("debug", "debug"),
		huh.NewOption("info", "info"),
		huh.NewOption("warning", "warning"),
		huh.NewOption("error", "error"),
	}

	var behaviorOpts []huh.Option[string]
	for _, flag := range behavior.All.Flags() {
		behaviorOpts = append(behaviorOpts, huh.NewOption(flag.String(), flag.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("toggle_key").
				Title("Toggle Key").
				Description("Key that opens and closes the hub").
				Validate(notEmpty).
				Value(&f.fToggleKey),

			huh.NewInput().
				Key("quit_key").
				Title("Quit Key").
				Validate(notEmpty).
				Value(&f.fQuitKey),

			huh.NewInput().
				Key("global_hotkey").
				Title("Global Hotkey").
				Description("X11 keybinding that toggles the hub from anywhere (empty to disable)").
				Value(&f.fGlobalHotkey),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(levelOpts...).
				Value(&f.fLogLevel),

			huh.NewConfirm().
				Key("x11_cursors").
				Title("Native X11 Cursors").
				Description("Change the terminal window's pointer while resizing").
				Value(&f.fX11Cursors),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("resize_handle_width").
				Title("Resize Handle Width").
				Description("Cells from a window edge that start a resize").
				Validate(positiveInt).
				Value(&f.fHandleWidth),
			huh.NewInput().
				Key("margin_top").
				Title("Window Margin: Top").
				Validate(nonNegativeInt).
				Value(&f.fMarginTop),
			huh.NewInput().
				Key("margin_bottom").
				Title("Window Margin: Bottom").
				Validate(nonNegativeInt).
				Value(&f.fMarginBottom),
			huh.NewInput().
				Key("margin_left").
				Title("Window Margin: Left").
				Validate(nonNegativeInt).
				Value(&f.fMarginLeft),
			huh.NewInput().
				Key("margin_right").
				Title("Window Margin: Right").
				Validate(nonNegativeInt).
				Value(&f.fMarginRight),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("retained_behaviors").
				Title("Retained Behaviors").
				Description("Input that keeps working while the hub is open").
				Options(behaviorOpts...).
				Value(&f.fRetained),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)
}

// Apply converts the form values into a validated config.
func (f *InitForm) Apply() (*config.Config, error) {
	cfg := *f.base
	cfg.ToggleKey = strings.TrimSpace(f.fToggleKey)
	cfg.QuitKey = strings.TrimSpace(f.fQuitKey)
	cfg.GlobalHotkey = strings.TrimSpace(f.fGlobalHotkey)
	cfg.LogLevel = f.fLogLevel
	cfg.X11Cursors = f.fX11Cursors
	cfg.RetainedBehaviors = append(make([]string, 0, len(f.fRetained)), f.fRetained...)

	ints := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"resize_handle_width", f.fHandleWidth, &cfg.ResizeHandleWidth},
		{"window_margins.top", f.fMarginTop, &cfg.WindowMargins.Top},
		{"window_margins.bottom", f.fMarginBottom, &cfg.WindowMargins.Bottom},
		{"window_margins.left", f.fMarginLeft, &cfg.WindowMargins.Left},
		{"window_margins.right", f.fMarginRight, &cfg.WindowMargins.Right},
	}
	for _, v := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(v.raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", v.name, v.raw)
		}
		*v.dst = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("must be a whole number >= 1")
	}
	return nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("must be a whole number >= 0")
	}
	return nil
}
