package registry

import "context"

// maxRelated caps the related-tools projection.
const maxRelated = 8

// Catalog provides read access to the tool catalog.
type Catalog interface {
	// All returns the full catalog in load order.
	All(ctx context.Context) ([]*ToolDescriptor, error)

	// BySlug returns the descriptor for a slug.
	// Returns nil if the slug is not in the catalog (404-equivalent, not an error).
	BySlug(ctx context.Context, slug string) (*ToolDescriptor, error)

	// Related returns the descriptors referenced by tool.RelatedSlugs,
	// in catalog order (not RelatedSlugs order), truncated to 8.
	// Dangling slugs are silently filtered out.
	Related(ctx context.Context, tool *ToolDescriptor) ([]*ToolDescriptor, error)
}

// relatedFrom projects tool.RelatedSlugs against a catalog snapshot.
// Shared by the static and Postgres catalogs so the ordering contract
// stays identical.
func relatedFrom(all []*ToolDescriptor, tool *ToolDescriptor) []*ToolDescriptor {
	if tool == nil || len(tool.RelatedSlugs) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(tool.RelatedSlugs))
	for _, slug := range tool.RelatedSlugs {
		want[slug] = struct{}{}
	}
	var related []*ToolDescriptor
	for _, t := range all {
		if _, ok := want[t.Slug]; !ok {
			continue
		}
		related = append(related, t)
		if len(related) == maxRelated {
			break
		}
	}
	return related
}
