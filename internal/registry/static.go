package registry

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/tools.json
var catalogJSON []byte

//go:embed data/schema.json
var catalogSchemaJSON []byte

// StaticCatalog serves the catalog embedded in the binary.
// All lookups are over a fixed in-memory table; no failure mode after load.
type StaticCatalog struct {
	tools  []*ToolDescriptor
	bySlug map[string]*ToolDescriptor
}

// NewStaticCatalog loads and validates the embedded catalog.
// A catalog that fails schema validation or carries duplicate slugs is a
// startup error (catalog defect, not a user error).
func NewStaticCatalog() (*StaticCatalog, error) {
	return NewStaticCatalogFromJSON(catalogJSON)
}

// NewStaticCatalogFromJSON builds a catalog from raw JSON (used by tests).
func NewStaticCatalogFromJSON(raw []byte) (*StaticCatalog, error) {
	if err := validateCatalog(raw); err != nil {
		return nil, fmt.Errorf("NewStaticCatalogFromJSON: %w", err)
	}

	var tools []*ToolDescriptor
	if err := json.Unmarshal(raw, &tools); err != nil {
		return nil, fmt.Errorf("NewStaticCatalogFromJSON: %w", err)
	}

	bySlug := make(map[string]*ToolDescriptor, len(tools))
	for _, t := range tools {
		if _, dup := bySlug[t.Slug]; dup {
			return nil, fmt.Errorf("NewStaticCatalogFromJSON: duplicate slug %q", t.Slug)
		}
		bySlug[t.Slug] = t
	}

	return &StaticCatalog{tools: tools, bySlug: bySlug}, nil
}

func (c *StaticCatalog) All(_ context.Context) ([]*ToolDescriptor, error) {
	return c.tools, nil
}

func (c *StaticCatalog) BySlug(_ context.Context, slug string) (*ToolDescriptor, error) {
	return c.bySlug[slug], nil
}

func (c *StaticCatalog) Related(_ context.Context, tool *ToolDescriptor) ([]*ToolDescriptor, error) {
	return relatedFrom(c.tools, tool), nil
}

// validateCatalog checks the raw catalog against the embedded JSON Schema.
func validateCatalog(raw []byte) error {
	var schemaObj any
	if err := json.Unmarshal(catalogSchemaJSON, &schemaObj); err != nil {
		return fmt.Errorf("schema unmarshal error: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("catalog.json", schemaObj); err != nil {
		return fmt.Errorf("schema compile error: %w", err)
	}
	sch, err := c.Compile("catalog.json")
	if err != nil {
		return fmt.Errorf("schema compile error: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("catalog is not valid JSON: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}
