package registry

// FieldKind declares how an input field is collected and rendered.
type FieldKind string

const (
	FieldBoolean FieldKind = "boolean"
	FieldString  FieldKind = "string"
	FieldNumber  FieldKind = "number"
)

// FAQEntry is a display-only question/answer pair.
type FAQEntry struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// ToolDescriptor is the static metadata record for one tool.
// Descriptors are loaded once and immutable for the process lifetime;
// callers must not mutate returned descriptors.
type ToolDescriptor struct {
	Slug          string               `json:"slug"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Subcategory   string               `json:"subcategory,omitempty"`
	EngineID      string               `json:"engineId"`
	InputsSchema  map[string]FieldKind `json:"inputsSchema,omitempty"`
	ComputeConfig map[string]any       `json:"computeConfig,omitempty"`
	HowTo         []string             `json:"howTo,omitempty"`
	FAQ           []FAQEntry           `json:"faq,omitempty"`
	RelatedSlugs  []string             `json:"relatedSlugs,omitempty"`
}
