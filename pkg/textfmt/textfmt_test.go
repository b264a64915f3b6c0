package textfmt

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPlain(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no escapes", "ABOUT OUR CHURCH", "ABOUT OUR CHURCH"},
		{"single break", `a\nb`, "a\nb"},
		{"doubled break collapses", `a\n\nb`, "a\nb"},
		{"typo break", "a/nb", "a\nb"},
		{"typo doubled break", "a/n/nb", "a\nb"},
		{"mixed typo and escape", `Line1/nLine2\nLine3`, "Line1\nLine2\nLine3"},
		{"tripled break", `a\n\n\nb`, "a\n\nb"},
		{"real newlines kept", "a\nb\n\nc", "a\nb\n\nc"},
		{"leading and trailing", `\nhi\n`, "\nhi\n"},
		{"backslash not followed by n", `C:\temp`, `C:\temp`},
		{
			"source default",
			`RCCG ROG is a Bible-based church.\n\nAt RCCG ROG, we're all about people.`,
			"RCCG ROG is a Bible-based church.\nAt RCCG ROG, we're all about people.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPlain(tc.in))
		})
	}
}

func TestFormatMarkup(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no escapes", "ABOUT OUR CHURCH", "ABOUT OUR CHURCH"},
		{"single break", `a\nb`, "a<br>b"},
		{"doubled break", `a\n\nb`, "a<br><br>b"},
		{"two paragraphs and a line", `a\n\nb\nc`, "a<br><br>b<br>c"},
		{"html passes through", `<b>x</b>\ny`, "<b>x</b><br>y"},
		{
			"source default",
			`RCCG ROG is a Bible-based church.\n\nAt RCCG ROG, we're all about people.`,
			"RCCG ROG is a Bible-based church.<br><br>At RCCG ROG, we're all about people.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatMarkup(tc.in))
		})
	}
}

func TestPlainAndMarkupDisagreeOnParagraphs(t *testing.T) {
	in := `one\n\ntwo`
	assert.Equal(t, "one\ntwo", FormatPlain(in))
	assert.Equal(t, "one<br><br>two", FormatMarkup(in))
	assert.Equal(t, 1, strings.Count(FormatPlain(in), "\n"))
	assert.Equal(t, 2, strings.Count(FormatMarkup(in), "<br>"))
}

func TestFormatPlainIdempotent(t *testing.T) {
	for _, in := range []string{
		"", "plain", `a\nb`, `a\n\nb`, "a/nb", `\\n`, "//nn", `\/nn`, `x\n/n\n\ny`,
	} {
		once := FormatPlain(in)
		assert.Equal(t, once, FormatPlain(once), "input %q", in)
		assert.NotContains(t, once, `\n`, "input %q", in)
		assert.NotContains(t, once, "/n", "input %q", in)
	}
}

func TestNoWrapperDoesNotChangeText(t *testing.T) {
	in := `a\n\nb/nc`
	assert.Equal(t, FormatPlain(in), FormatPlain(in, WithNoWrapper()))
	assert.True(t, PlainOptions(WithNoWrapper()).NoWrapper)
	assert.False(t, PlainOptions().NoWrapper)
	assert.False(t, PlainOptions(nil).NoWrapper)
}

func TestParagraph(t *testing.T) {
	assert.Equal(t, `<p class="whitespace-pre-line">a&lt;b&gt;
c</p>`, Paragraph(`a<b>\nc`))
	assert.Equal(t, "a\nc", Paragraph(`a\nc`, WithNoWrapper()))
	assert.Equal(t, `<p class="whitespace-pre-line"></p>`, Paragraph(""))
}

type named string

func (n named) String() string { return "named:" + string(n) }

func TestFromValue(t *testing.T) {
	var nilPtr *int
	var nilStringer *strings.Builder
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"empty string", "", ""},
		{"string", `a\nb`, `a\nb`},
		{"false", false, ""},
		{"true", true, "true"},
		{"zero int", 0, ""},
		{"zero float", 0.0, ""},
		{"int", 7, "7"},
		{"float", 1.5, "1.5"},
		{"nil pointer", nilPtr, ""},
		{"nil stringer", nilStringer, ""},
		{"stringer", named("x"), "named:x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotPanics(t, func() { _ = FromValue(tc.in) })
			assert.Equal(t, tc.want, FromValue(tc.in))
			assert.Equal(t, FormatPlain(tc.want), FormatPlain(FromValue(tc.in)))
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModePlain, "PLAIN": ModePlain, "markup": ModeMarkup, " html ": ModeMarkup} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("pdf")
	assert.Error(t, err)

	assert.Equal(t, "a\nb", Format(ModePlain, `a\n\nb`))
	assert.Equal(t, "a<br><br>b", Format(ModeMarkup, `a\n\nb`))
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if FormatPlain(`x\n\ny`) != "x\ny" || FormatMarkup(`x\n\ny`) != "x<br><br>y" {
					t.Error("unexpected output under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}
