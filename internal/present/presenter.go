package present

import (
	"io"

	"github.com/rccgrog/rogsite/internal/present/format"
	"github.com/rccgrog/rogsite/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	// Style and WordWrap drive the glamour renderer in ModePretty.
	Style    string
	WordWrap int
}

// ParseMode parses "plain", "pretty" or "json".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	default:
		return ModePlain, false
	}
}

// RenderSections renders the section listing according to options.
func RenderSections(w io.Writer, secs []api.SectionSummary, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, secs, opts.JSONIndent)
	case ModePretty:
		return format.WritePrettySections(w, secs)
	default:
		return format.WritePlainSections(w, secs, opts.Headers)
	}
}

// RenderSection renders one section. In plain and pretty modes c should
// already hold display text.
func RenderSection(w io.Writer, sec api.SectionSummary, c api.Content, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, struct {
			api.SectionSummary
			Content api.Content `json:"content"`
		}{sec, c}, opts.JSONIndent)
	case ModePretty:
		return format.WritePrettySection(w, sec, c, opts.Style, opts.WordWrap)
	default:
		return format.WritePlainSection(w, sec, c)
	}
}

// RenderEvents renders audit log entries according to options.
func RenderEvents(w io.Writer, evs []api.Event, opts Options) error {
	if opts.Mode == ModeJSON {
		return format.WriteJSON(w, evs, opts.JSONIndent)
	}
	return format.WritePlainEvents(w, evs, opts.Headers)
}
