package theming

import (
	"strings"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitegen/internal/site"
)

// Fallback colors applied when a theme token is absent.
const (
	DefaultPrimary    = "#3B82F6"
	DefaultSecondary  = "#1E40AF"
	DefaultAccent     = "#60A5FA"
	DefaultBackground = "#FFFFFF"
	DefaultText       = "#1F2937"
)

// Manifest identity and the variant applied under data-theme="dark".
const (
	ManifestName    = "sitegen-default"
	ManifestVersion = "1.0.0"
	DarkVariant     = "dark"
)

// Token keys of the built-in manifest.
const (
	TokenPrimary       = "primary"
	TokenSecondary     = "secondary"
	TokenAccent        = "accent"
	TokenBackground    = "background"
	TokenText          = "text"
	TokenSurface       = "surface"
	TokenTextSecondary = "text-secondary"
	TokenBorder        = "border"
	TokenShadow        = "shadow"
)

// DarkPalette overrides surface colors when the page carries data-theme="dark".
type DarkPalette struct {
	Background    string
	Surface       string
	TextPrimary   string
	TextSecondary string
	Border        string
	Shadow        string
}

// Tokens is the complete set of style variables consumed by the stylesheet
// and script renderers.
type Tokens struct {
	Primary       string
	Secondary     string
	Accent        string
	Background    string
	Text          string
	Surface       string
	TextSecondary string
	Border        string
	Shadow        string
	Dark          DarkPalette
}

// DefaultManifest returns a fresh copy of the built-in theme manifest.
func DefaultManifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:        ManifestName,
		Version:     ManifestVersion,
		Description: "Default palette for generated sites",
		Tokens: map[string]string{
			TokenPrimary:       DefaultPrimary,
			TokenSecondary:     DefaultSecondary,
			TokenAccent:        DefaultAccent,
			TokenBackground:    DefaultBackground,
			TokenText:          DefaultText,
			TokenSurface:       "#FFFFFF",
			TokenTextSecondary: "#6B7280",
			TokenBorder:        "#E5E7EB",
			TokenShadow:        "rgba(0, 0, 0, 0.1)",
		},
		Variants: map[string]gotheme.Variant{
			DarkVariant: {
				Description: "Dark surfaces",
				Tokens: map[string]string{
					TokenBackground:    "#0F172A",
					TokenSurface:       "#1E293B",
					TokenText:          "#F8FAFC",
					TokenTextSecondary: "#CBD5E1",
					TokenBorder:        "#334155",
					TokenShadow:        "rgba(0, 0, 0, 0.3)",
				},
			},
		},
	}
}

// Manifest lays the non-blank colors of theme over the built-in manifest.
// Values are not validated; malformed colors pass through.
func Manifest(theme *site.Theme) *gotheme.Manifest {
	manifest := DefaultManifest()
	if theme == nil {
		return manifest
	}
	overlay(manifest.Tokens, TokenPrimary, theme.Primary)
	overlay(manifest.Tokens, TokenSecondary, theme.Secondary)
	overlay(manifest.Tokens, TokenAccent, theme.Accent)
	overlay(manifest.Tokens, TokenBackground, theme.Background)
	overlay(manifest.Tokens, TokenText, theme.Text)
	return manifest
}

// DefaultTokens returns the token set used when no theme is supplied.
func DefaultTokens() Tokens {
	return FromManifest(*DefaultManifest())
}

// Resolve fills every token from theme, falling back to the defaults for
// blank values.
func Resolve(theme *site.Theme) Tokens {
	return FromManifest(*Manifest(theme))
}

// FromManifest flattens the base and dark variant token sets of manifest.
func FromManifest(manifest gotheme.Manifest) Tokens {
	base := manifest.TokensForVariant("")
	dark := manifest.TokensForVariant(DarkVariant)
	return Tokens{
		Primary:       base[TokenPrimary],
		Secondary:     base[TokenSecondary],
		Accent:        base[TokenAccent],
		Background:    base[TokenBackground],
		Text:          base[TokenText],
		Surface:       base[TokenSurface],
		TextSecondary: base[TokenTextSecondary],
		Border:        base[TokenBorder],
		Shadow:        base[TokenShadow],
		Dark: DarkPalette{
			Background:    dark[TokenBackground],
			Surface:       dark[TokenSurface],
			TextPrimary:   dark[TokenText],
			TextSecondary: dark[TokenTextSecondary],
			Border:        dark[TokenBorder],
			Shadow:        dark[TokenShadow],
		},
	}
}

func overlay(tokens map[string]string, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	tokens[key] = value
}
