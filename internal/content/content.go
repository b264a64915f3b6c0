// Package content maps typed sections to and from their stored documents and
// projects them into display text.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rccgrog/rogsite/pkg/api"
	"github.com/rccgrog/rogsite/pkg/textfmt"
)

// Encode maps c to its snake_case record document.
func Encode(c api.Content) (json.RawMessage, error) {
	var rec any
	switch v := c.(type) {
	case api.Hero:
		rec = heroToRecord(v)
	case api.About:
		rec = aboutToRecord(v)
	case api.History:
		rec = historyToRecord(v)
	case api.Ministers:
		rec = ministersToRecord(v)
	case api.Events:
		rec = eventsToRecord(v)
	case api.GetInvolved:
		rec = getInvolvedToRecord(v)
	default:
		return nil, fmt.Errorf("encode %T: %w", c, api.ErrUnknownKind)
	}
	return json.Marshal(rec)
}

// Decode maps a stored record document back to its typed section.
// An empty record decodes to the zero content for the kind.
func Decode(kind api.Kind, rec json.RawMessage) (api.Content, error) {
	if len(bytes.TrimSpace(rec)) == 0 {
		return Empty(kind)
	}
	switch kind {
	case api.KindHero:
		var r heroRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return heroFromRecord(r), nil
	case api.KindAbout:
		var r aboutRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return aboutFromRecord(r), nil
	case api.KindHistory:
		var r historyRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return historyFromRecord(r), nil
	case api.KindMinisters:
		var r ministersRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return ministersFromRecord(r), nil
	case api.KindEvents:
		var r eventsRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return eventsFromRecord(r), nil
	case api.KindGetInvolved:
		var r getInvolvedRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return getInvolvedFromRecord(r), nil
	}
	return nil, fmt.Errorf("decode %q: %w", kind, api.ErrUnknownKind)
}

// ErrNotObject is returned by DecodeView when the body is not a single JSON
// object.
var ErrNotObject = errors.New("section body must be a single JSON object")

// DecodeView parses the camelCase JSON sent by editors. Unknown fields are
// rejected so that a misspelt field is not silently dropped.
func DecodeView(kind api.Kind, body []byte) (api.Content, error) {
	c, err := Empty(kind)
	if err != nil {
		return nil, err
	}
	if t := bytes.TrimLeft(body, " \t\r\n"); len(t) == 0 || t[0] != '{' {
		return nil, fmt.Errorf("decode %s: %w", kind, ErrNotObject)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	switch kind {
	case api.KindHero:
		v := c.(api.Hero)
		err = dec.Decode(&v)
		c = v
	case api.KindAbout:
		v := c.(api.About)
		err = dec.Decode(&v)
		c = v
	case api.KindHistory:
		v := c.(api.History)
		err = dec.Decode(&v)
		c = v
	case api.KindMinisters:
		v := c.(api.Ministers)
		err = dec.Decode(&v)
		c = v
	case api.KindEvents:
		v := c.(api.Events)
		err = dec.Decode(&v)
		c = v
	case api.KindGetInvolved:
		v := c.(api.GetInvolved)
		err = dec.Decode(&v)
		c = v
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", kind, ErrNotObject)
	}
	return c, nil
}

// Empty returns the zero content for kind.
func Empty(kind api.Kind) (api.Content, error) {
	switch kind {
	case api.KindHero:
		return api.Hero{}, nil
	case api.KindAbout:
		return api.About{}, nil
	case api.KindHistory:
		return api.History{}, nil
	case api.KindMinisters:
		return api.Ministers{Members: []api.Minister{}}, nil
	case api.KindEvents:
		return api.Events{Items: []api.EventItem{}}, nil
	case api.KindGetInvolved:
		return api.GetInvolved{Ministries: []api.Ministry{}}, nil
	}
	return nil, fmt.Errorf("%q: %w", kind, api.ErrUnknownKind)
}

// Display returns a copy of c with prose fields formatted for mode. Titles,
// names, dates, links and image URLs are left as stored.
func Display(c api.Content, mode textfmt.Mode) api.Content {
	f := func(s string) string { return textfmt.Format(mode, s) }
	switch v := c.(type) {
	case api.Hero:
		v.Subtitle = f(v.Subtitle)
		return v
	case api.About:
		v.Body = f(v.Body)
		return v
	case api.History:
		v.Body = f(v.Body)
		return v
	case api.Ministers:
		v.Intro = f(v.Intro)
		members := make([]api.Minister, len(v.Members))
		for i, m := range v.Members {
			m.Bio = f(m.Bio)
			members[i] = m
		}
		v.Members = members
		return v
	case api.Events:
		v.Intro = f(v.Intro)
		items := make([]api.EventItem, len(v.Items))
		for i, it := range v.Items {
			it.Description = f(it.Description)
			items[i] = it
		}
		v.Items = items
		return v
	case api.GetInvolved:
		v.Body = f(v.Body)
		ms := make([]api.Ministry, len(v.Ministries))
		for i, m := range v.Ministries {
			m.Description = f(m.Description)
			ms[i] = m
		}
		v.Ministries = ms
		return v
	}
	return c
}
