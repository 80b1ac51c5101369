package site

import (
	"slices"
	"strings"
)

// SectionType names one of the fixed content slots of a home document.
type SectionType string

const (
	SectionHero     SectionType = "HERO"
	SectionAbout    SectionType = "ABOUT"
	SectionServices SectionType = "SERVICES"
	SectionContact  SectionType = "CONTACT"
	SectionFooter   SectionType = "FOOTER"
)

// SectionTypes lists the supported section types in structural render order.
var SectionTypes = []SectionType{SectionHero, SectionAbout, SectionServices, SectionContact, SectionFooter}

// Valid reports whether t is one of the supported section types.
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Normalize upper-cases and trims a section type read from loosely typed input.
func (t SectionType) Normalize() SectionType {
	return SectionType(strings.ToUpper(strings.TrimSpace(string(t))))
}

// PageFormat describes how a page body should be turned into markup.
type PageFormat string

const (
	PageFormatHTML     PageFormat = "html"
	PageFormatMarkdown PageFormat = "markdown"
	PageFormatText     PageFormat = "text"
)

// WebsiteAggregate is the complete description of one generated site. It is
// assembled by a repository and never mutated by the generator.
type WebsiteAggregate struct {
	ID         string           `json:"id" yaml:"id"`
	Industry   string           `json:"industry,omitempty" yaml:"industry,omitempty"`
	TemplateID string           `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	HeroImage  string           `json:"heroImage,omitempty" yaml:"heroImage,omitempty"`
	Company    *Company         `json:"company,omitempty" yaml:"company,omitempty"`
	Theme      *Theme           `json:"theme,omitempty" yaml:"theme,omitempty"`
	Content    []ContentSection `json:"content,omitempty" yaml:"content,omitempty"`
	Products   []Product        `json:"products,omitempty" yaml:"products,omitempty"`
	Pages      []Page           `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// Company holds the business details shown on the site. Only Name is
// expected; every other field is optional.
type Company struct {
	Name        string `json:"name" yaml:"name"`
	Tagline     string `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Address     string `json:"address,omitempty" yaml:"address,omitempty"`
}

// Theme carries the five color tokens. Values are opaque strings.
type Theme struct {
	Primary    string `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty" yaml:"accent,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
}

// ContentSection is a typed block of copy. Order only disambiguates
// duplicates of the same type.
type ContentSection struct {
	Type    SectionType `json:"type" yaml:"type"`
	Title   string      `json:"title,omitempty" yaml:"title,omitempty"`
	Content string      `json:"content,omitempty" yaml:"content,omitempty"`
	Order   int         `json:"order" yaml:"order"`
}

type Product struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Price       float64  `json:"price" yaml:"price"`
	SKU         string   `json:"sku,omitempty" yaml:"sku,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Images      []string `json:"images,omitempty" yaml:"images,omitempty"`
	InStock     bool     `json:"inStock" yaml:"inStock"`
}

// Image returns the first image reference, or "" when the product has none.
func (p Product) Image() string {
	for _, img := range p.Images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Page produces one extra static file named <Slug>.html.
type Page struct {
	Slug    string     `json:"slug" yaml:"slug"`
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Content string     `json:"content,omitempty" yaml:"content,omitempty"`
	Format  PageFormat `json:"format,omitempty" yaml:"format,omitempty"`
}

// FileName returns the bundle-relative file written for the page.
func (p Page) FileName() string {
	return p.Slug + ".html"
}

// CompanyOrEmpty returns the company, or a zero value when absent so callers
// can read fields without nil checks.
func (a *WebsiteAggregate) CompanyOrEmpty() Company {
	if a == nil || a.Company == nil {
		return Company{}
	}
	return *a.Company
}

// HasProducts reports whether the products block should be rendered.
func (a *WebsiteAggregate) HasProducts() bool {
	return a != nil && len(a.Products) > 0
}

// Clone returns a deep copy of the aggregate.
func (a *WebsiteAggregate) Clone() *WebsiteAggregate {
	if a == nil {
		return nil
	}
	out := *a
	if a.Company != nil {
		company := *a.Company
		out.Company = &company
	}
	if a.Theme != nil {
		theme := *a.Theme
		out.Theme = &theme
	}
	out.Content = slices.Clone(a.Content)
	out.Pages = slices.Clone(a.Pages)
	if a.Products != nil {
		out.Products = make([]Product, len(a.Products))
		for i, p := range a.Products {
			p.Images = slices.Clone(p.Images)
			out.Products[i] = p
		}
	}
	return &out
}

// GetID returns the site identifier, or "" for a nil aggregate.
func (a *WebsiteAggregate) GetID() string {
	if a == nil {
		return ""
	}
	return a.ID
}
