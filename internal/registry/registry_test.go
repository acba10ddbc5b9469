package registry

import (
	"context"
	"testing"
)

const testCatalogJSON = `[
  {
    "slug": "alpha",
    "title": "Alpha",
    "description": "first",
    "category": "Finance",
    "engineId": "finance.emi",
    "relatedSlugs": ["gamma", "beta", "missing"]
  },
  {
    "slug": "beta",
    "title": "Beta",
    "description": "second",
    "category": "Finance",
    "engineId": "finance.sip"
  },
  {
    "slug": "gamma",
    "title": "Gamma",
    "description": "third",
    "category": "Finance",
    "engineId": "finance.cagr"
  }
]`

func TestStaticCatalog_BySlug(t *testing.T) {
	cat, err := NewStaticCatalogFromJSON([]byte(testCatalogJSON))
	if err != nil {
		t.Fatal(err)
	}

	tool, err := cat.BySlug(context.Background(), "beta")
	if err != nil {
		t.Fatal(err)
	}
	if tool == nil || tool.Title != "Beta" {
		t.Fatalf("unexpected tool: %+v", tool)
	}
}

func TestStaticCatalog_BySlugMissing(t *testing.T) {
	cat, err := NewStaticCatalogFromJSON([]byte(testCatalogJSON))
	if err != nil {
		t.Fatal(err)
	}

	tool, err := cat.BySlug(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if tool != nil {
		t.Fatalf("expected nil for unknown slug, got %+v", tool)
	}
}

func TestStaticCatalog_RelatedCatalogOrder(t *testing.T) {
	cat, err := NewStaticCatalogFromJSON([]byte(testCatalogJSON))
	if err != nil {
		t.Fatal(err)
	}

	alpha, _ := cat.BySlug(context.Background(), "alpha")
	related, err := cat.Related(context.Background(), alpha)
	if err != nil {
		t.Fatal(err)
	}

	// Catalog order, not relatedSlugs order; the dangling slug is dropped.
	if len(related) != 2 || related[0].Slug != "beta" || related[1].Slug != "gamma" {
		t.Fatalf("unexpected related set: %+v", related)
	}
}

func TestStaticCatalog_RelatedTruncatedToEight(t *testing.T) {
	raw := `[{"slug":"hub","title":"Hub","description":"","category":"X","engineId":"e",
		"relatedSlugs":["s0","s1","s2","s3","s4","s5","s6","s7","s8","s9"]}`
	for i := 0; i < 10; i++ {
		raw += `,{"slug":"s` + string(rune('0'+i)) + `","title":"S","description":"","category":"X","engineId":"e"}`
	}
	raw += `]`

	cat, err := NewStaticCatalogFromJSON([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	hub, _ := cat.BySlug(context.Background(), "hub")
	related, err := cat.Related(context.Background(), hub)
	if err != nil {
		t.Fatal(err)
	}
	if len(related) != 8 {
		t.Fatalf("expected 8 related tools, got %d", len(related))
	}
}

func TestStaticCatalog_DuplicateSlug(t *testing.T) {
	raw := `[
	  {"slug":"dup","title":"A","description":"","category":"X","engineId":"e"},
	  {"slug":"dup","title":"B","description":"","category":"X","engineId":"e"}
	]`
	if _, err := NewStaticCatalogFromJSON([]byte(raw)); err == nil {
		t.Fatal("expected duplicate slug error")
	}
}

func TestStaticCatalog_SchemaRejectsMissingTitle(t *testing.T) {
	raw := `[{"slug":"x","description":"","category":"X","engineId":"e"}]`
	if _, err := NewStaticCatalogFromJSON([]byte(raw)); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestStaticCatalog_SchemaRejectsBadSlug(t *testing.T) {
	raw := `[{"slug":"Bad Slug!","title":"X","description":"","category":"X","engineId":"e"}]`
	if _, err := NewStaticCatalogFromJSON([]byte(raw)); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestEmbeddedCatalog_Loads(t *testing.T) {
	cat, err := NewStaticCatalog()
	if err != nil {
		t.Fatal(err)
	}
	tools, err := cat.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tools) == 0 {
		t.Fatal("embedded catalog is empty")
	}
}

func TestEmbeddedCatalog_RelatedSlugsResolve(t *testing.T) {
	cat, err := NewStaticCatalog()
	if err != nil {
		t.Fatal(err)
	}
	tools, _ := cat.All(context.Background())
	known := make(map[string]bool, len(tools))
	for _, tool := range tools {
		known[tool.Slug] = true
	}
	for _, tool := range tools {
		for _, slug := range tool.RelatedSlugs {
			if !known[slug] {
				t.Fatalf("tool %q references unknown related slug %q", tool.Slug, slug)
			}
		}
	}
}
