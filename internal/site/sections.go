package site

import "sort"

// FindSection returns the section of the requested type with the lowest
// order. Sections sharing an order keep their list position, so the first
// listed wins a tie.
func FindSection(sections []ContentSection, kind SectionType) (*ContentSection, bool) {
	var found *ContentSection
	for i := range sections {
		section := &sections[i]
		if section.Type.Normalize() != kind {
			continue
		}
		if found == nil || section.Order < found.Order {
			found = section
		}
	}
	if found == nil {
		return nil, false
	}
	out := *found
	return &out, true
}

// OrderedSections returns a copy sorted by ascending order, stable on ties.
func OrderedSections(sections []ContentSection) []ContentSection {
	out := append([]ContentSection(nil), sections...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Lookup resolves sections for one aggregate.
type Lookup struct {
	sections []ContentSection
}

// NewLookup indexes the aggregate's sections.
func NewLookup(agg *WebsiteAggregate) Lookup {
	if agg == nil {
		return Lookup{}
	}
	return Lookup{sections: OrderedSections(agg.Content)}
}

// Find returns the winning section for kind.
func (l Lookup) Find(kind SectionType) (*ContentSection, bool) {
	return FindSection(l.sections, kind)
}

// Has reports whether a section of kind is present.
func (l Lookup) Has(kind SectionType) bool {
	_, ok := l.Find(kind)
	return ok
}

// Title returns the section title, or fallback when the section or its title is empty.
func (l Lookup) Title(kind SectionType, fallback string) string {
	if section, ok := l.Find(kind); ok && section.Title != "" {
		return section.Title
	}
	return fallback
}

// Content returns the first non-empty value from the section body and the
// fallbacks, in order.
func (l Lookup) Content(kind SectionType, fallbacks ...string) string {
	if section, ok := l.Find(kind); ok && section.Content != "" {
		return section.Content
	}
	for _, fb := range fallbacks {
		if fb != "" {
			return fb
		}
	}
	return ""
}
