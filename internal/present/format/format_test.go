package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rccgrog/rogsite/pkg/api"
)

var testSummary = api.SectionSummary{Kind: api.KindAbout, Version: 3, UpdatedAt: time.Unix(1700000000, 0).UTC()}

func TestBlocksDropsEmptyFields(t *testing.T) {
	got := Blocks(api.About{Heading: "ABOUT", Body: "Line one.\nLine two."})
	require.Len(t, got, 1)
	assert.Equal(t, []Field{{"Heading", "ABOUT"}, {"Body", "Line one.\nLine two."}}, got[0].Fields)
}

func TestBlocksRepeatedItems(t *testing.T) {
	got := Blocks(api.Events{
		Heading: "Services",
		Items: []api.EventItem{
			{Title: "Sunday Service", Time: "10:00"},
			{Title: "Vigil"},
		},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "Sunday Service", got[1].Title)
	assert.Equal(t, []Field{{"Time", "10:00"}}, got[1].Fields)
	assert.Equal(t, "Vigil", got[2].Title)
	assert.Empty(t, got[2].Fields)
}

func TestWritePlainSection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainSection(&buf, testSummary, api.About{Heading: "ABOUT", Body: "Line one.\nLine two."}))
	out := buf.String()
	assert.Contains(t, out, "Section: about\nVersion: 3\n")
	assert.Contains(t, out, "---\nHeading: ABOUT\nBody:\nLine one.\nLine two.\n")
}

func TestWritePlainSectionsHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainSections(&buf, []api.SectionSummary{testSummary}, true))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "kind"))
	assert.Equal(t, []string{"about", "3", "1700000000000"}, strings.Fields(lines[1]))
}

func TestWritePlainEvents(t *testing.T) {
	var buf bytes.Buffer
	evs := []api.Event{{Time: testSummary.UpdatedAt, Type: api.EventDelete, Kind: api.KindHero, Version: 2}}
	require.NoError(t, WritePlainEvents(&buf, evs, false))
	f := strings.Fields(buf.String())
	require.Len(t, f, 4)
	assert.Equal(t, []string{"delete", "hero", "2"}, f[1:])
}

func TestSectionMarkdownHardBreaks(t *testing.T) {
	md := SectionMarkdown(testSummary, api.About{Body: "a\nb"})
	assert.Contains(t, md, "# about")
	assert.Contains(t, md, "**Body:** a  \nb")
}

func TestWriteJSONIndent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"a": 1}, true))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
