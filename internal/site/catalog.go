package site

import "strings"

// Service is one card of the services block. Services are static copy, not
// user data.
type Service struct {
	Name        string
	Description string
}

// CatalogKey identifies a service catalog.
type CatalogKey string

const (
	CatalogDefault               CatalogKey = "default"
	CatalogMinimalistClean       CatalogKey = "minimalist-clean"
	CatalogBoldModern            CatalogKey = "bold-modern"
	CatalogCorporateProfessional CatalogKey = "corporate-professional"
	CatalogCreativeArtistic      CatalogKey = "creative-artistic"
	CatalogPharmacy              CatalogKey = "pharmacy"
	CatalogCosmetics             CatalogKey = "cosmetics"
	CatalogRestaurant            CatalogKey = "restaurant"
)

var catalogs = map[CatalogKey][]Service{
	CatalogMinimalistClean: {
		{Name: "Clean Design", Description: "Minimalist approach with focus on content and user experience"},
		{Name: "Fast Performance", Description: "Optimized for speed and excellent performance metrics"},
		{Name: "Mobile First", Description: "Perfect experience across all devices and screen sizes"},
	},
	CatalogBoldModern: {
		{Name: "Eye-catching Design", Description: "Bold visuals and modern aesthetics that capture attention"},
		{Name: "Interactive Elements", Description: "Engaging user interactions and dynamic components"},
		{Name: "Modern Layouts", Description: "Contemporary design patterns and innovative structures"},
	},
	CatalogCorporateProfessional: {
		{Name: "Professional Excellence", Description: "Trustworthy and business-focused design approach"},
		{Name: "Data Presentation", Description: "Clear information architecture and content organization"},
		{Name: "Enterprise Standards", Description: "Meets corporate requirements and industry standards"},
	},
	CatalogCreativeArtistic: {
		{Name: "Artistic Expression", Description: "Creative and unique visual elements that inspire"},
		{Name: "Fluid Animations", Description: "Smooth transitions and engaging motion design"},
		{Name: "Visual Storytelling", Description: "Narrative-driven design that tells your story"},
	},
	CatalogPharmacy: {
		{Name: "Prescription Services", Description: "Professional prescription filling and consultation"},
		{Name: "Health Consultations", Description: "Expert health advice and medication guidance"},
		{Name: "Home Delivery", Description: "Convenient delivery of medications to your door"},
	},
	CatalogCosmetics: {
		{Name: "Beauty Consultation", Description: "Personalized beauty advice and product recommendations"},
		{Name: "Makeup Services", Description: "Professional makeup application for special events"},
		{Name: "Skincare Analysis", Description: "Comprehensive skin analysis and treatment plans"},
	},
	CatalogRestaurant: {
		{Name: "Dine-In Experience", Description: "Comfortable dining with exceptional service"},
		{Name: "Takeout & Delivery", Description: "Quick and convenient food ordering"},
		{Name: "Catering Services", Description: "Professional catering for events and parties"},
	},
	CatalogDefault: {
		{Name: "Professional Service", Description: "High-quality service tailored to your specific needs"},
		{Name: "Expert Consultation", Description: "Professional advice and guidance from industry experts"},
		{Name: "Customer Support", Description: "24/7 customer support and comprehensive assistance"},
	},
}

// ParseCatalogKey maps a free-form identifier onto a known key. Unknown or
// blank identifiers report false.
func ParseCatalogKey(value string) (CatalogKey, bool) {
	key := CatalogKey(strings.ToLower(strings.TrimSpace(value)))
	if key == "" || key == CatalogDefault {
		return CatalogDefault, false
	}
	if _, ok := catalogs[key]; !ok {
		return CatalogDefault, false
	}
	return key, true
}

// CatalogFor picks the catalog for an aggregate. A recognised template id
// wins over a recognised industry; otherwise the default catalog is used.
func CatalogFor(agg *WebsiteAggregate) CatalogKey {
	if agg == nil {
		return CatalogDefault
	}
	if key, ok := ParseCatalogKey(agg.TemplateID); ok {
		return key
	}
	if key, ok := ParseCatalogKey(agg.Industry); ok {
		return key
	}
	return CatalogDefault
}

// Services returns a copy of the catalog entries for key, falling back to
// the default catalog for unknown keys.
func Services(key CatalogKey) []Service {
	entries, ok := catalogs[key]
	if !ok {
		entries = catalogs[CatalogDefault]
	}
	return append([]Service(nil), entries...)
}
