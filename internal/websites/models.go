package websites

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitegen/internal/identity"
	"github.com/goliatone/go-sitegen/internal/site"
)

// Website is the root row of an aggregate. Handle is the public site
// identifier and names the bundle directory.
type Website struct {
	bun.BaseModel `bun:"table:websites,alias:w"`

	ID         uuid.UUID `bun:",pk,type:uuid"              json:"id"`
	Handle     string    `bun:"handle,notnull,unique"      json:"handle"`
	Industry   string    `bun:"industry"                   json:"industry,omitempty"`
	TemplateID string    `bun:"template_id"                json:"template_id,omitempty"`
	HeroImage  string    `bun:"hero_image"                 json:"hero_image,omitempty"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

type CompanyRecord struct {
	bun.BaseModel `bun:"table:companies,alias:co"`

	ID          uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	WebsiteID   uuid.UUID `bun:"website_id,notnull,type:uuid" json:"website_id"`
	Name        string    `bun:"name,notnull"                json:"name"`
	Tagline     string    `bun:"tagline"                     json:"tagline,omitempty"`
	Description string    `bun:"description"                 json:"description,omitempty"`
	Phone       string    `bun:"phone"                       json:"phone,omitempty"`
	Email       string    `bun:"email"                       json:"email,omitempty"`
	Address     string    `bun:"address"                     json:"address,omitempty"`
}

type ColorTheme struct {
	bun.BaseModel `bun:"table:color_themes,alias:ct"`

	ID         uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	WebsiteID  uuid.UUID `bun:"website_id,notnull,type:uuid" json:"website_id"`
	Primary    string    `bun:"primary_color"               json:"primary,omitempty"`
	Secondary  string    `bun:"secondary_color"             json:"secondary,omitempty"`
	Accent     string    `bun:"accent_color"                json:"accent,omitempty"`
	Background string    `bun:"background_color"            json:"background,omitempty"`
	Text       string    `bun:"text_color"                  json:"text,omitempty"`
}

type ContentSectionRecord struct {
	bun.BaseModel `bun:"table:content_sections,alias:cs"`

	ID        uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	WebsiteID uuid.UUID `bun:"website_id,notnull,type:uuid" json:"website_id"`
	Type      string    `bun:"type,notnull"                json:"type"`
	Title     string    `bun:"title"                       json:"title,omitempty"`
	Content   string    `bun:"content"                     json:"content,omitempty"`
	Order     int       `bun:"sort_order,notnull,default:0" json:"order"`
	Position  int       `bun:"position,notnull,default:0"  json:"position"`
}

type ProductRecord struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	WebsiteID   uuid.UUID `bun:"website_id,notnull,type:uuid" json:"website_id"`
	ExternalID  string    `bun:"external_id"                 json:"external_id,omitempty"`
	Name        string    `bun:"name,notnull"                json:"name"`
	Description string    `bun:"description"                 json:"description,omitempty"`
	Price       float64   `bun:"price,notnull,default:0"     json:"price"`
	SKU         string    `bun:"sku"                         json:"sku,omitempty"`
	Category    string    `bun:"category"                    json:"category,omitempty"`
	Images      []string  `bun:"images,type:jsonb"           json:"images,omitempty"`
	InStock     bool      `bun:"in_stock,notnull"            json:"in_stock"`
	Position    int       `bun:"position,notnull,default:0"  json:"position"`
}

type PageRecord struct {
	bun.BaseModel `bun:"table:pages,alias:pg"`

	ID        uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	WebsiteID uuid.UUID `bun:"website_id,notnull,type:uuid" json:"website_id"`
	Slug      string    `bun:"slug,notnull"                json:"slug"`
	Title     string    `bun:"title"                       json:"title,omitempty"`
	Content   string    `bun:"content"                     json:"content,omitempty"`
	Format    string    `bun:"format"                      json:"format,omitempty"`
	Position  int       `bun:"position,notnull,default:0"  json:"position"`
}

// records is the row set one aggregate is stored as.
type records struct {
	website  *Website
	company  *CompanyRecord
	theme    *ColorTheme
	sections []*ContentSectionRecord
	products []*ProductRecord
	pages    []*PageRecord
}

func websiteID(handle string) uuid.UUID {
	return identity.SiteUUID(handle)
}

func toRecords(agg *site.WebsiteAggregate, now time.Time) records {
	id := websiteID(agg.ID)
	out := records{
		website: &Website{
			ID:         id,
			Handle:     agg.ID,
			Industry:   agg.Industry,
			TemplateID: agg.TemplateID,
			HeroImage:  agg.HeroImage,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	if c := agg.Company; c != nil {
		out.company = &CompanyRecord{
			ID:          identity.UUID("go-sitegen:company:" + id.String()),
			WebsiteID:   id,
			Name:        c.Name,
			Tagline:     c.Tagline,
			Description: c.Description,
			Phone:       c.Phone,
			Email:       c.Email,
			Address:     c.Address,
		}
	}
	if t := agg.Theme; t != nil {
		out.theme = &ColorTheme{
			ID:         identity.UUID("go-sitegen:theme:" + id.String()),
			WebsiteID:  id,
			Primary:    t.Primary,
			Secondary:  t.Secondary,
			Accent:     t.Accent,
			Background: t.Background,
			Text:       t.Text,
		}
	}
	for i, s := range agg.Content {
		out.sections = append(out.sections, &ContentSectionRecord{
			ID:        identity.SectionUUID(agg.ID, string(s.Type), i),
			WebsiteID: id,
			Type:      string(s.Type),
			Title:     s.Title,
			Content:   s.Content,
			Order:     s.Order,
			Position:  i,
		})
	}
	for i, p := range agg.Products {
		out.products = append(out.products, &ProductRecord{
			ID:          identity.ProductUUID(agg.ID, strconv.Itoa(i)+":"+p.SKU),
			WebsiteID:   id,
			ExternalID:  p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			SKU:         p.SKU,
			Category:    p.Category,
			Images:      p.Images,
			InStock:     p.InStock,
			Position:    i,
		})
	}
	for i, p := range agg.Pages {
		out.pages = append(out.pages, &PageRecord{
			ID:        identity.PageUUID(agg.ID, p.Slug),
			WebsiteID: id,
			Slug:      p.Slug,
			Title:     p.Title,
			Content:   p.Content,
			Format:    string(p.Format),
			Position:  i,
		})
	}
	return out
}

func (r records) aggregate() *site.WebsiteAggregate {
	agg := &site.WebsiteAggregate{
		ID:         r.website.Handle,
		Industry:   r.website.Industry,
		TemplateID: r.website.TemplateID,
		HeroImage:  r.website.HeroImage,
	}
	if c := r.company; c != nil {
		agg.Company = &site.Company{
			Name:        c.Name,
			Tagline:     c.Tagline,
			Description: c.Description,
			Phone:       c.Phone,
			Email:       c.Email,
			Address:     c.Address,
		}
	}
	if t := r.theme; t != nil {
		agg.Theme = &site.Theme{
			Primary:    t.Primary,
			Secondary:  t.Secondary,
			Accent:     t.Accent,
			Background: t.Background,
			Text:       t.Text,
		}
	}
	for _, s := range r.sections {
		agg.Content = append(agg.Content, site.ContentSection{
			Type:    site.SectionType(s.Type),
			Title:   s.Title,
			Content: s.Content,
			Order:   s.Order,
		})
	}
	for _, p := range r.products {
		agg.Products = append(agg.Products, site.Product{
			ID:          p.ExternalID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			SKU:         p.SKU,
			Category:    p.Category,
			Images:      p.Images,
			InStock:     p.InStock,
		})
	}
	for _, p := range r.pages {
		agg.Pages = append(agg.Pages, site.Page{
			Slug:    p.Slug,
			Title:   p.Title,
			Content: p.Content,
			Format:  site.PageFormat(p.Format),
		})
	}
	return agg
}
