package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rccgrog/rogsite/pkg/api"
)

// TSV columns: kind, version, updated_unix_ms
var sectionHeader = "kind\tversion\tupdated_unix_ms\n"

// TSV columns: time, type, kind, version
var eventHeader = "time\ttype\tkind\tversion\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func WritePlainSections(w io.Writer, secs []api.SectionSummary, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, sectionHeader)
	}
	for _, s := range secs {
		ms := s.UpdatedAt.UnixNano() / int64(time.Millisecond)
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", esc(string(s.Kind)), s.Version, ms)
	}
	return tw.Flush()
}

func WritePlainEvents(w io.Writer, evs []api.Event, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, eventHeader)
	}
	for _, e := range evs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			e.Time.Local().Format(time.RFC3339), e.Type, esc(string(e.Kind)), e.Version)
	}
	return tw.Flush()
}

// WritePlainSection prints a detail view: a short header followed by one
// "Label: value" line per field. Multi-line values start on their own line.
func WritePlainSection(w io.Writer, sec api.SectionSummary, c api.Content) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Section: %s\nVersion: %d\nUpdated: %s\n---\n",
		sec.Kind, sec.Version, sec.UpdatedAt.Local().Format(time.RFC3339))
	for i, blk := range Blocks(c) {
		if i > 0 {
			b.WriteByte('\n')
		}
		if blk.Title != "" {
			fmt.Fprintf(&b, "[%s]\n", blk.Title)
		}
		for _, f := range blk.Fields {
			if strings.Contains(f.Value, "\n") {
				fmt.Fprintf(&b, "%s:\n%s\n", f.Label, f.Value)
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
