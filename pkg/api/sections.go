package api

import (
	"errors"
	"strings"
)

// Kind names a section type.
type Kind string

const (
	KindHero        Kind = "hero"
	KindAbout       Kind = "about"
	KindHistory     Kind = "history"
	KindMinisters   Kind = "ministers"
	KindEvents      Kind = "events"
	KindGetInvolved Kind = "get_involved"
)

var ErrUnknownKind = errors.New("unknown section")

// Kinds returns every section kind in display order.
func Kinds() []Kind {
	return []Kind{KindHero, KindAbout, KindHistory, KindMinisters, KindEvents, KindGetInvolved}
}

// KindNames returns Kinds as strings.
func KindNames() []string {
	ks := Kinds()
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = string(k)
	}
	return out
}

// ParseKind resolves a section name. Matching ignores case and treats '-'
// and '_' alike, so "Get-Involved" resolves to KindGetInvolved.
func ParseKind(s string) (Kind, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, k := range Kinds() {
		if string(k) == n {
			return k, nil
		}
	}
	return "", ErrUnknownKind
}

// Content is implemented by every typed section.
type Content interface {
	Kind() Kind
}

type Hero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
	CTAText         string `json:"ctaText"`
	CTALink         string `json:"ctaLink"`
}

type About struct {
	Heading  string `json:"heading"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl"`
}

type History struct {
	Heading     string `json:"heading"`
	Body        string `json:"body"`
	FoundedYear int    `json:"foundedYear,omitempty"`
}

type Minister struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoUrl"`
}

type Ministers struct {
	Heading string     `json:"heading"`
	Intro   string     `json:"intro"`
	Members []Minister `json:"members"`
}

type EventItem struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type Events struct {
	Heading string      `json:"heading"`
	Intro   string      `json:"intro"`
	Items   []EventItem `json:"items"`
}

type Ministry struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail"`
}

type GetInvolved struct {
	Heading    string     `json:"heading"`
	Body       string     `json:"body"`
	Ministries []Ministry `json:"ministries"`
}

func (Hero) Kind() Kind        { return KindHero }
func (About) Kind() Kind       { return KindAbout }
func (History) Kind() Kind     { return KindHistory }
func (Ministers) Kind() Kind   { return KindMinisters }
func (Events) Kind() Kind      { return KindEvents }
func (GetInvolved) Kind() Kind { return KindGetInvolved }
