package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SiteUUID derives the identifier of a site from its source key (usually the
// source file path or company name).
func SiteUUID(sourceKey string) uuid.UUID {
	return UUID("go-sitegen:site:" + strings.ToLower(strings.TrimSpace(sourceKey)))
}

func ProductUUID(siteID, sku string) uuid.UUID {
	return UUID("go-sitegen:product:" + strings.TrimSpace(siteID) + ":" + strings.TrimSpace(sku))
}

func PageUUID(siteID, slug string) uuid.UUID {
	return UUID("go-sitegen:page:" + strings.TrimSpace(siteID) + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

func SectionUUID(siteID string, sectionType string, order int) uuid.UUID {
	return UUID("go-sitegen:section:" + strings.TrimSpace(siteID) + ":" + strings.ToUpper(strings.TrimSpace(sectionType)) + ":" + strconv.Itoa(order))
}
