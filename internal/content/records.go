package content

import "github.com/rccgrog/rogsite/pkg/api"

// Records mirror the typed sections with the snake_case field names used in
// the stored documents. Each kind has one explicit mapper pair below.

type heroRecord struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"background_image"`
	CTAText         string `json:"cta_text"`
	CTALink         string `json:"cta_link"`
}

func heroToRecord(h api.Hero) heroRecord {
	return heroRecord{
		Title:           h.Title,
		Subtitle:        h.Subtitle,
		BackgroundImage: h.BackgroundImage,
		CTAText:         h.CTAText,
		CTALink:         h.CTALink,
	}
}

func heroFromRecord(r heroRecord) api.Hero {
	return api.Hero{
		Title:           r.Title,
		Subtitle:        r.Subtitle,
		BackgroundImage: r.BackgroundImage,
		CTAText:         r.CTAText,
		CTALink:         r.CTALink,
	}
}

type aboutRecord struct {
	Heading  string `json:"heading"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

func aboutToRecord(a api.About) aboutRecord {
	return aboutRecord{Heading: a.Heading, Body: a.Body, ImageURL: a.ImageURL}
}

func aboutFromRecord(r aboutRecord) api.About {
	return api.About{Heading: r.Heading, Body: r.Body, ImageURL: r.ImageURL}
}

type historyRecord struct {
	Heading     string `json:"heading"`
	Body        string `json:"body"`
	FoundedYear int    `json:"founded_year,omitempty"`
}

func historyToRecord(h api.History) historyRecord {
	return historyRecord{Heading: h.Heading, Body: h.Body, FoundedYear: h.FoundedYear}
}

func historyFromRecord(r historyRecord) api.History {
	return api.History{Heading: r.Heading, Body: r.Body, FoundedYear: r.FoundedYear}
}

type ministerRecord struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
}

type ministersRecord struct {
	Heading string           `json:"heading"`
	Intro   string           `json:"intro"`
	Members []ministerRecord `json:"members"`
}

func ministersToRecord(m api.Ministers) ministersRecord {
	out := ministersRecord{Heading: m.Heading, Intro: m.Intro, Members: make([]ministerRecord, 0, len(m.Members))}
	for _, p := range m.Members {
		out.Members = append(out.Members, ministerRecord{Name: p.Name, Role: p.Role, Bio: p.Bio, PhotoURL: p.PhotoURL})
	}
	return out
}

func ministersFromRecord(r ministersRecord) api.Ministers {
	out := api.Ministers{Heading: r.Heading, Intro: r.Intro, Members: make([]api.Minister, 0, len(r.Members))}
	for _, p := range r.Members {
		out.Members = append(out.Members, api.Minister{Name: p.Name, Role: p.Role, Bio: p.Bio, PhotoURL: p.PhotoURL})
	}
	return out
}

type eventRecord struct {
	Title       string `json:"title"`
	Date        string `json:"event_date"`
	Time        string `json:"event_time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type eventsRecord struct {
	Heading string        `json:"heading"`
	Intro   string        `json:"intro"`
	Items   []eventRecord `json:"items"`
}

func eventsToRecord(e api.Events) eventsRecord {
	out := eventsRecord{Heading: e.Heading, Intro: e.Intro, Items: make([]eventRecord, 0, len(e.Items))}
	for _, it := range e.Items {
		out.Items = append(out.Items, eventRecord{
			Title:       it.Title,
			Date:        it.Date,
			Time:        it.Time,
			Location:    it.Location,
			Description: it.Description,
			ImageURL:    it.ImageURL,
		})
	}
	return out
}

func eventsFromRecord(r eventsRecord) api.Events {
	out := api.Events{Heading: r.Heading, Intro: r.Intro, Items: make([]api.EventItem, 0, len(r.Items))}
	for _, it := range r.Items {
		out.Items = append(out.Items, api.EventItem{
			Title:       it.Title,
			Date:        it.Date,
			Time:        it.Time,
			Location:    it.Location,
			Description: it.Description,
			ImageURL:    it.ImageURL,
		})
	}
	return out
}

type ministryRecord struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
}

type getInvolvedRecord struct {
	Heading    string           `json:"heading"`
	Body       string           `json:"body"`
	Ministries []ministryRecord `json:"ministries"`
}

func getInvolvedToRecord(g api.GetInvolved) getInvolvedRecord {
	out := getInvolvedRecord{Heading: g.Heading, Body: g.Body, Ministries: make([]ministryRecord, 0, len(g.Ministries))}
	for _, m := range g.Ministries {
		out.Ministries = append(out.Ministries, ministryRecord{Name: m.Name, Description: m.Description, ContactEmail: m.ContactEmail})
	}
	return out
}

func getInvolvedFromRecord(r getInvolvedRecord) api.GetInvolved {
	out := api.GetInvolved{Heading: r.Heading, Body: r.Body, Ministries: make([]api.Ministry, 0, len(r.Ministries))}
	for _, m := range r.Ministries {
		out.Ministries = append(out.Ministries, api.Ministry{Name: m.Name, Description: m.Description, ContactEmail: m.ContactEmail})
	}
	return out
}
