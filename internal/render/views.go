package render

import (
	"fmt"
	htmltemplate "html/template"

	"github.com/goliatone/go-sitegen/internal/site"
)

const (
	fallbackTitle       = "Website"
	fallbackBrand       = "Company Name"
	fallbackCompany     = "Company"
	fallbackBusiness    = "Our Business"
	fallbackDescription = "Professional website"
	fallbackTagline     = "Professional services"
	fallbackSubtitle    = "Professional services you can trust"
	fallbackAboutBody   = "We are committed to providing excellent service."
	fallbackPageBody    = "<p>Page content goes here.</p>"
)

type navLink struct {
	Href  string
	Label string
}

type footerView struct {
	Name      string
	Tagline   string
	Links     []navLink
	Copyright string
}

type layoutView struct {
	Title       string
	Description string
	Brand       string
	Nav         []navLink
	Footer      footerView
}

type heroView struct {
	Title    string
	Subtitle string
	Image    string
}

type textBlock struct {
	Title string
	Body  string
}

type serviceView struct {
	Name        string
	Description string
	Delay       int
}

type servicesView struct {
	Title string
	Items []serviceView
}

type productView struct {
	Name        string
	Description string
	Price       string
	Image       string
	InStock     bool
	Delay       int
}

type contactItem struct {
	Icon  string
	Label string
	Value string
}

type contactView struct {
	Title string
	Items []contactItem
}

type homeView struct {
	layoutView
	Hero     heroView
	About    textBlock
	Services servicesView
	Products []productView
	Contact  contactView
}

type pageView struct {
	layoutView
	Heading string
	Body    htmltemplate.HTML
}

// anchors lists the home sections in structural order. Products is only
// linked when the products block is rendered.
func anchors(agg *site.WebsiteAggregate) []navLink {
	links := []navLink{
		{Href: "#home", Label: "Home"},
		{Href: "#about", Label: "About"},
		{Href: "#services", Label: "Services"},
	}
	if agg.HasProducts() {
		links = append(links, navLink{Href: "#products", Label: "Products"})
	}
	return append(links, navLink{Href: "#contact", Label: "Contact"})
}

func pageLinks(agg *site.WebsiteAggregate) []navLink {
	if agg == nil {
		return nil
	}
	links := make([]navLink, 0, len(agg.Pages))
	for _, page := range agg.Pages {
		links = append(links, navLink{Href: page.FileName(), Label: pageHeading(page)})
	}
	return links
}

// layoutFor builds the header and footer shared by every document. prefix is
// prepended to in-page anchors so sub-pages link back into index.html.
func layoutFor(agg *site.WebsiteAggregate, cfg Config, prefix string) layoutView {
	company := agg.CompanyOrEmpty()
	lookup := site.NewLookup(agg)

	sections := anchors(agg)
	nav := make([]navLink, 0, len(sections)+len(agg.Pages))
	for _, link := range sections {
		href := prefix + link.Href
		if prefix != "" && link.Href == "#home" {
			href = prefix
		}
		nav = append(nav, navLink{Href: href, Label: link.Label})
	}
	footerLinks := append([]navLink(nil), nav...)
	nav = append(nav, pageLinks(agg)...)

	name := orDefault(company.Name, fallbackCompany)
	return layoutView{
		Title:       orDefault(company.Name, fallbackTitle),
		Description: orDefault(company.Description, fallbackDescription),
		Brand:       orDefault(company.Name, fallbackBrand),
		Nav:         nav,
		Footer: footerView{
			Name:      name,
			Tagline:   orDefault(company.Tagline, fallbackTagline),
			Links:     footerLinks,
			Copyright: lookup.Content(site.SectionFooter, fmt.Sprintf("© %d %s. All rights reserved.", cfg.Year, name)),
		},
	}
}

func homeViewFor(agg *site.WebsiteAggregate, cfg Config) homeView {
	company := agg.CompanyOrEmpty()
	lookup := site.NewLookup(agg)

	services := site.Services(site.CatalogFor(agg))
	serviceItems := make([]serviceView, 0, len(services))
	for i, svc := range services {
		serviceItems = append(serviceItems, serviceView{Name: svc.Name, Description: svc.Description, Delay: i * 100})
	}

	var products []productView
	if agg.HasProducts() {
		products = make([]productView, 0, len(agg.Products))
		for i, p := range agg.Products {
			products = append(products, productView{
				Name:        p.Name,
				Description: p.Description,
				Price:       FormatPrice(p.Price),
				Image:       p.Image(),
				InStock:     p.InStock,
				Delay:       i * 100,
			})
		}
	}

	heroImage := ""
	if agg != nil {
		heroImage = agg.HeroImage
	}

	return homeView{
		layoutView: layoutFor(agg, cfg, ""),
		Hero: heroView{
			Title:    lookup.Title(site.SectionHero, "Welcome to "+orDefault(company.Name, fallbackBusiness)),
			Subtitle: lookup.Content(site.SectionHero, company.Tagline, fallbackSubtitle),
			Image:    heroImage,
		},
		About: textBlock{
			Title: lookup.Title(site.SectionAbout, "About Us"),
			Body:  lookup.Content(site.SectionAbout, company.Description, fallbackAboutBody),
		},
		Services: servicesView{
			Title: lookup.Title(site.SectionServices, "Our Services"),
			Items: serviceItems,
		},
		Products: products,
		Contact: contactView{
			Title: lookup.Title(site.SectionContact, "Contact Us"),
			Items: contactItems(company),
		},
	}
}

// contactItems emits only the company fields that are present.
func contactItems(company site.Company) []contactItem {
	var items []contactItem
	if company.Phone != "" {
		items = append(items, contactItem{Icon: "📞", Label: "Phone", Value: company.Phone})
	}
	if company.Email != "" {
		items = append(items, contactItem{Icon: "✉️", Label: "Email", Value: company.Email})
	}
	if company.Address != "" {
		items = append(items, contactItem{Icon: "📍", Label: "Address", Value: company.Address})
	}
	return items
}

func pageHeading(page site.Page) string {
	return orDefault(page.Title, page.Slug)
}

// FormatPrice renders a price with exactly two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
