package format

import (
	"strconv"

	"github.com/rccgrog/rogsite/pkg/api"
)

// Block is one labelled group of fields within a section. Repeated items
// (ministers, events, ministries) each get their own block.
type Block struct {
	Title  string
	Fields []Field
}

type Field struct {
	Label string
	Value string
}

// Blocks flattens c into labelled fields in display order. Empty values are
// dropped.
func Blocks(c api.Content) []Block {
	var out []Block
	add := func(title string, fs ...Field) {
		b := Block{Title: title}
		for _, f := range fs {
			if f.Value != "" {
				b.Fields = append(b.Fields, f)
			}
		}
		if len(b.Fields) > 0 || title != "" {
			out = append(out, b)
		}
	}
	switch v := c.(type) {
	case api.Hero:
		add("", Field{"Title", v.Title}, Field{"Subtitle", v.Subtitle},
			Field{"Background image", v.BackgroundImage},
			Field{"Button", v.CTAText}, Field{"Button link", v.CTALink})
	case api.About:
		add("", Field{"Heading", v.Heading}, Field{"Body", v.Body}, Field{"Image", v.ImageURL})
	case api.History:
		year := ""
		if v.FoundedYear != 0 {
			year = strconv.Itoa(v.FoundedYear)
		}
		add("", Field{"Heading", v.Heading}, Field{"Founded", year}, Field{"Body", v.Body})
	case api.Ministers:
		add("", Field{"Heading", v.Heading}, Field{"Intro", v.Intro})
		for _, m := range v.Members {
			add(m.Name, Field{"Role", m.Role}, Field{"Bio", m.Bio}, Field{"Photo", m.PhotoURL})
		}
	case api.Events:
		add("", Field{"Heading", v.Heading}, Field{"Intro", v.Intro})
		for _, e := range v.Items {
			add(e.Title, Field{"Date", e.Date}, Field{"Time", e.Time}, Field{"Location", e.Location},
				Field{"Description", e.Description}, Field{"Image", e.ImageURL})
		}
	case api.GetInvolved:
		add("", Field{"Heading", v.Heading}, Field{"Body", v.Body})
		for _, m := range v.Ministries {
			add(m.Name, Field{"Description", m.Description}, Field{"Contact", m.ContactEmail})
		}
	}
	return out
}
