package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/internal/theming"
)

func fixedConfig() Config {
	return Config{Year: 2024, AllowPageHTML: true}
}

func fullAggregate() *site.WebsiteAggregate {
	return &site.WebsiteAggregate{
		ID:         "acme",
		TemplateID: "bold-modern",
		Company: &site.Company{
			Name:    "Acme",
			Tagline: "Quality goods",
			Phone:   "555-0100",
			Email:   "hello@acme.test",
		},
		Theme: &site.Theme{Primary: "#FF0000"},
		Content: []site.ContentSection{
			{Type: site.SectionHero, Title: "Second hero", Order: 1},
			{Type: site.SectionHero, Title: "First hero", Content: "Hero body", Order: 0},
			{Type: site.SectionFooter, Content: "Custom footer", Order: 0},
		},
		Products: []site.Product{
			{Name: "Anvil", Price: 10, InStock: true, Images: []string{"https://img.test/anvil.png"}},
			{Name: "Rocket", Price: 99.5, InStock: false},
		},
		Pages: []site.Page{
			{Slug: "about", Title: "About Acme", Content: "<p>Since 1949.</p>"},
		},
	}
}

func TestRenderHomeDefaultSubstitution(t *testing.T) {
	agg := &site.WebsiteAggregate{ID: "acme", Company: &site.Company{Name: "Acme"}}

	out, err := RenderHome(agg, fixedConfig())
	if err != nil {
		t.Fatalf("RenderHome: %v", err)
	}
	for _, want := range []string{
		"Welcome to Acme",
		"Professional services you can trust",
		"We are committed to providing excellent service.",
		"Our Services",
		"Professional Service",
		"Contact Us",
		"© 2024 Acme. All rights reserved.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected home to contain %q", want)
		}
	}
	if strings.Contains(out, `id="products"`) || strings.Contains(out, "#products") {
		t.Fatal("expected no products markup for empty products")
	}
	if strings.Contains(out, "contact-item") {
		t.Fatal("expected no contact items when no contact fields are present")
	}
}

func TestRenderHomeWithoutCompanyUsesGenericDefaults(t *testing.T) {
	out, err := RenderHome(nil, fixedConfig())
	if err != nil {
		t.Fatalf("RenderHome: %v", err)
	}
	for _, want := range []string{"<title>Website</title>", "Company Name", "Welcome to Our Business", "© 2024 Company. All rights reserved."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestRenderHomeProductsAndStock(t *testing.T) {
	out, err := RenderHome(fullAggregate(), fixedConfig())
	if err != nil {
		t.Fatalf("RenderHome: %v", err)
	}

	if !strings.Contains(out, `id="products"`) || !strings.Contains(out, `href="#products"`) {
		t.Fatal("expected products section and nav link")
	}
	if got := strings.Count(out, "Out of Stock"); got != 1 {
		t.Fatalf("expected exactly one out of stock marker, got %d", got)
	}

	rocket := strings.Index(out, "<h3>Rocket</h3>")
	marker := strings.Index(out, "Out of Stock")
	anvil := strings.Index(out, "<h3>Anvil</h3>")
	if rocket < 0 || anvil < 0 || marker < rocket || anvil > rocket {
		t.Fatalf("expected marker after Rocket card (anvil=%d rocket=%d marker=%d)", anvil, rocket, marker)
	}
	if strings.Contains(out[anvil:rocket], "Out of Stock") {
		t.Fatal("expected in-stock product without marker")
	}

	if !strings.Contains(out, "$10.00") || !strings.Contains(out, "$99.50") {
		t.Fatal("expected prices formatted with two decimals")
	}
	if !strings.Contains(out, `<img src="https://img.test/anvil.png" alt="Anvil"`) {
		t.Fatal("expected product image tag")
	}
	if !strings.Contains(out, "📦") {
		t.Fatal("expected placeholder glyph for product without image")
	}
}

func TestRenderHomeFirstHeroByOrderWins(t *testing.T) {
	out, err := RenderHome(fullAggregate(), fixedConfig())
	if err != nil {
		t.Fatalf("RenderHome: %v", err)
	}
	if !strings.Contains(out, `<h1 class="hero-title">First hero</h1>`) {
		t.Fatal("expected order 0 hero title")
	}
	if strings.Contains(out, "Second hero") {
		t.Fatal("expected later hero to be ignored")
	}
	if !strings.Contains(out, "Custom footer") || strings.Contains(out, "All rights reserved") {
		t.Fatal("expected footer section to replace the default copyright")
	}
}

func TestRenderHomeCatalogContactAndNavigation(t *testing.T) {
	out, err := RenderHome(fullAggregate(), fixedConfig())
	if err != nil {
		t.Fatalf("RenderHome: %v", err)
	}
	if !strings.Contains(out, "Eye-catching Design") {
		t.Fatal("expected template catalog services")
	}
	if !strings.Contains(out, "555-0100") || !strings.Contains(out, "hello@acme.test") {
		t.Fatal("expected phone and email contact items")
	}
	if strings.Contains(out, "<h3>Address</h3>") {
		t.Fatal("expected address item to be omitted")
	}
	if !strings.Contains(out, `<a href="about.html" class="nav-link">About Acme</a>`) {
		t.Fatal("expected sub-page nav link")
	}
}

func TestRenderHomeEscapesUserText(t *testing.T) {
	agg := &site.WebsiteAggregate{
		ID:      "x",
		Company: &site.Company{Name: "<script>alert(1)</script>"},
	}
	out, err := RenderHome(agg, fixedConfig())
	if err != nil {
		t.Fatalf("RenderHome: %v", err)
	}
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Fatal("expected company name to be escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatal("expected escaped company name in output")
	}
}

func TestRenderHomeHeroImage(t *testing.T) {
	agg := fullAggregate()
	agg.HeroImage = "https://img.test/hero.jpg"
	out, err := RenderHome(agg, fixedConfig())
	if err != nil {
		t.Fatalf("RenderHome: %v", err)
	}
	if !strings.Contains(out, "background-image: url(") || !strings.Contains(out, "img.test/hero.jpg") {
		t.Fatal("expected hero background image")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	cfg := fixedConfig()
	first, err := RenderAll(fullAggregate(), cfg)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	second, err := RenderAll(fullAggregate(), cfg)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("document count mismatch %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("document %s differs between runs", first[i].Path)
		}
	}

	want := []string{IndexFile, "about.html", StylesheetFile, ScriptFile}
	for i, path := range want {
		if first[i].Path != path {
			t.Fatalf("document %d: expected %s, got %s", i, path, first[i].Path)
		}
	}
}

func TestRenderPageFormats(t *testing.T) {
	agg := fullAggregate()
	cases := []struct {
		name    string
		page    site.Page
		cfg     Config
		want    string
		notWant string
	}{
		{"trusted html", site.Page{Slug: "a", Content: "<em>hi</em>"}, fixedConfig(), "<em>hi</em>", ""},
		{"escaped html", site.Page{Slug: "a", Content: "<em>hi</em>"}, Config{Year: 2024}, "<p>&lt;em&gt;hi&lt;/em&gt;</p>", "<em>hi</em>"},
		{"markdown", site.Page{Slug: "a", Format: site.PageFormatMarkdown, Content: "## Hours\n\n**Open** daily"}, fixedConfig(), "<strong>Open</strong>", ""},
		{"text", site.Page{Slug: "a", Format: site.PageFormatText, Content: "one\n\ntwo & three"}, fixedConfig(), "<p>one</p>\n<p>two &amp; three</p>", ""},
		{"empty", site.Page{Slug: "a"}, fixedConfig(), "<p>Page content goes here.</p>", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := RenderPage(agg, tc.page, tc.cfg)
			if err != nil {
				t.Fatalf("RenderPage: %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Fatalf("expected %q in page output", tc.want)
			}
			if tc.notWant != "" && strings.Contains(out, tc.notWant) {
				t.Fatalf("did not expect %q in page output", tc.notWant)
			}
		})
	}
}

func TestRenderPageLayout(t *testing.T) {
	agg := fullAggregate()
	out, err := RenderPage(agg, agg.Pages[0], fixedConfig())
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	for _, want := range []string{
		"<title>About Acme - Acme</title>",
		`<a href="index.html" class="nav-link">Home</a>`,
		`<a href="index.html#about" class="nav-link">About</a>`,
		`<a href="index.html#products" class="nav-link">Products</a>`,
		"<p>Since 1949.</p>",
		`<script src="script.js"></script>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in page output", want)
		}
	}
}

func TestRenderStylesheet(t *testing.T) {
	css, err := RenderStylesheet(theming.Resolve(nil))
	if err != nil {
		t.Fatalf("RenderStylesheet: %v", err)
	}
	for _, want := range []string{
		"--primary: " + theming.DefaultPrimary + ";",
		`[data-theme="dark"]`,
		"--background: #0F172A;",
		"@media (max-width: 768px)",
		"@media (max-width: 480px)",
		"grid-template-columns: 1fr;",
	} {
		if !strings.Contains(css, want) {
			t.Fatalf("expected %q in stylesheet", want)
		}
	}

	custom, err := RenderStylesheet(theming.Resolve(&site.Theme{Primary: "tomato"}))
	if err != nil {
		t.Fatalf("RenderStylesheet: %v", err)
	}
	if !strings.Contains(custom, "--primary: tomato;") {
		t.Fatal("expected custom primary token")
	}
}

func TestRenderScriptEchoesPrimary(t *testing.T) {
	js, err := RenderScript(theming.Resolve(&site.Theme{Primary: "#123456"}))
	if err != nil {
		t.Fatalf("RenderScript: %v", err)
	}
	if !strings.Contains(js, "'#123456'") {
		t.Fatal("expected primary color literal in script")
	}
	for _, want := range []string{"localStorage", "IntersectionObserver", "darkModeToggle", "mobile-menu-toggle"} {
		if !strings.Contains(js, want) {
			t.Fatalf("expected %q in script", want)
		}
	}

	hostile, err := RenderScript(theming.Resolve(&site.Theme{Primary: "';alert(1);'"}))
	if err != nil {
		t.Fatalf("RenderScript: %v", err)
	}
	if strings.Contains(hostile, "';alert(1);'") {
		t.Fatal("expected primary color to be js-escaped")
	}
}

func TestFormatPrice(t *testing.T) {
	for in, want := range map[float64]string{0: "$0.00", 1.5: "$1.50", 19.999: "$20.00"} {
		if got := FormatPrice(in); got != want {
			t.Fatalf("FormatPrice(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestRenderRequiresYear(t *testing.T) {
	if _, err := RenderHome(fullAggregate(), Config{}); !errors.Is(err, ErrYearRequired) {
		t.Fatalf("expected ErrYearRequired from RenderHome, got %v", err)
	}
	if _, err := RenderPage(fullAggregate(), site.Page{Slug: "a"}, Config{AllowPageHTML: true}); !errors.Is(err, ErrYearRequired) {
		t.Fatalf("expected ErrYearRequired from RenderPage, got %v", err)
	}
	if _, err := RenderAll(nil, Config{Year: -1}); !errors.Is(err, ErrYearRequired) {
		t.Fatalf("expected ErrYearRequired from RenderAll, got %v", err)
	}
}
