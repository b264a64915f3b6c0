// Command generate_sample writes a large section document for
// `rogsite section seed --file` so pages can be checked with realistic
// amounts of content.
package main

import (
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type minister struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Bio      string `yaml:"bio"`
	PhotoURL string `yaml:"photoUrl"`
}

type eventItem struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Time        string `yaml:"time"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl"`
}

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	roles := []string{"Pastor", "Assistant Pastor", "Deacon", "Deaconess", "Elder"}
	rooms := []string{"Main Sanctuary", "Fellowship Hall", "Youth Room", "Online"}

	const members = 40
	ms := make([]minister, 0, members)
	for i := 0; i < members; i++ {
		ms = append(ms, minister{
			Name: fmt.Sprintf("Minister %02d", i+1),
			Role: roles[mr.Intn(len(roles))],
			// Stored text uses \n and \n\n markers; the occasional /n
			// mirrors what editors actually type.
			Bio: fmt.Sprintf(`Serving since %d.\n\nLeads %s.%s`, 1990+mr.Intn(34), rooms[mr.Intn(len(rooms))], typo(mr)),
		})
	}

	const events = 120
	base := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	items := make([]eventItem, 0, events)
	for i := 0; i < events; i++ {
		day := base.AddDate(0, 0, 3*i+mr.Intn(3))
		items = append(items, eventItem{
			Title:       fmt.Sprintf("Gathering %03d", i+1),
			Date:        day.Format("2006-01-02"),
			Time:        fmt.Sprintf("%02d:%02d", 9+mr.Intn(11), 15*mr.Intn(4)),
			Location:    rooms[mr.Intn(len(rooms))],
			Description: fmt.Sprintf(`Join us for gathering %03d.\nAll are welcome.%s`, i+1, typo(mr)),
		})
	}

	doc := map[string]any{
		"ministers": map[string]any{
			"heading": "Our Ministers",
			"intro":   `Meet the people who serve.\n\nEvery one of them started as a visitor.`,
			"members": ms,
		},
		"events": map[string]any{
			"heading": "Services & Events",
			"intro":   `Something for everyone.\nSee you there.`,
			"items":   items,
		},
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		panic(err)
	}
	if err := enc.Close(); err != nil {
		panic(err)
	}
}

func typo(r *mrand.Rand) string {
	if r.Float64() < 0.2 {
		return `/nSee the notice board for details.`
	}
	return ""
}
