package textfmt

import (
	"fmt"
	"strings"
)

// Options carries caller-side rendering choices for plain text.
type Options struct {
	// NoWrapper asks the caller not to wrap the text in a container element.
	NoWrapper bool
}

// PlainOption configures Options.
type PlainOption func(*Options)

// WithNoWrapper sets Options.NoWrapper.
func WithNoWrapper() PlainOption {
	return func(o *Options) { o.NoWrapper = true }
}

// PlainOptions resolves a list of options.
func PlainOptions(opts ...PlainOption) Options {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Mode selects the display form.
type Mode string

const (
	ModePlain  Mode = "plain"
	ModeMarkup Mode = "markup"
)

// ParseMode accepts "plain", "markup" (or "html"), case-insensitively.
// An empty string means plain.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "text":
		return ModePlain, nil
	case "markup", "html":
		return ModeMarkup, nil
	default:
		return "", fmt.Errorf("unknown display mode %q (want plain|markup)", s)
	}
}

// Format dispatches to FormatPlain or FormatMarkup.
func Format(mode Mode, raw string) string {
	if mode == ModeMarkup {
		return FormatMarkup(raw)
	}
	return FormatPlain(raw)
}
