// Package textfmt turns stored section text into display text.
//
// Stored text marks line breaks with the two-character sequence `\n` and
// paragraph breaks with a doubled `\n\n`. Some editors emit `/n` instead of
// `\n`; plain mode corrects that typo before anything else.
package textfmt

import (
	"fmt"
	"html"
	"math"
	"reflect"
	"strings"
)

const (
	escapedBreak = `\n`
	escapedPara  = `\n\n`
	typoBreak    = `/n`

	lineBreakTag = "<br>"
	// paraSentinel holds doubled breaks aside while single breaks are
	// rewritten. NUL never appears in text coming from the editor.
	paraSentinel = "\x00para\x00"
)

// FormatPlain converts raw text into a string with real newline characters.
// Single and doubled escaped breaks both become exactly one newline. Options
// never change the returned string; see PlainOptions.
func FormatPlain(raw string, opts ...PlainOption) string {
	if raw == "" {
		return ""
	}
	s := strings.ReplaceAll(raw, typoBreak, escapedBreak)
	s = strings.ReplaceAll(s, escapedPara, escapedBreak)
	return strings.ReplaceAll(s, escapedBreak, "\n")
}

// FormatMarkup converts raw text into markup with <br> tags. A doubled escaped
// break becomes <br><br> and a single one becomes <br>.
//
// HTML in raw is passed through untouched. Callers rendering untrusted input
// must sanitize the result themselves.
func FormatMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ReplaceAll(raw, escapedPara, paraSentinel)
	s = strings.ReplaceAll(s, escapedBreak, lineBreakTag)
	return strings.ReplaceAll(s, paraSentinel, lineBreakTag+lineBreakTag)
}

// Paragraph formats raw in plain mode and wraps it in a paragraph element that
// preserves line breaks, unless WithNoWrapper is given. The text is escaped
// since plain output is not markup.
func Paragraph(raw string, opts ...PlainOption) string {
	text := html.EscapeString(FormatPlain(raw, opts...))
	if PlainOptions(opts...).NoWrapper {
		return text
	}
	return `<p class="whitespace-pre-line">` + text + `</p>`
}

// FromValue coerces a loosely typed value, as decoded from a JSON content
// payload, into raw text. nil, false, numeric zero and "" all yield "".
func FromValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return t.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.IsZero() {
			return ""
		}
	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); f == 0 || math.IsNaN(f) {
			return ""
		}
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return ""
		}
	}
	return fmt.Sprint(v)
}
