package testsupport

import "github.com/goliatone/go-sitegen/internal/site"

// SampleWebsite returns an aggregate with a hero, one in-stock and one
// out-of-stock product and an about page.
func SampleWebsite(id string) *site.WebsiteAggregate {
	return &site.WebsiteAggregate{
		ID: id,
		Company: &site.Company{
			Name:    "Acme",
			Tagline: "Quality goods",
			Email:   "hello@acme.test",
		},
		Theme: &site.Theme{Primary: "#FF0000"},
		Content: []site.ContentSection{
			{Type: site.SectionHero, Title: "Welcome to Acme", Content: "We build things.", Order: 0},
			{Type: site.SectionAbout, Title: "About us", Content: "Family run since 1950."},
		},
		Products: []site.Product{
			{ID: "p-1", Name: "Anvil", Price: 10, SKU: "AN-1", InStock: true},
			{ID: "p-2", Name: "Rocket", Price: 99.5, SKU: "RK-1"},
		},
		Pages: []site.Page{
			{Slug: "about", Title: "About", Content: "<p>History</p>"},
		},
	}
}
