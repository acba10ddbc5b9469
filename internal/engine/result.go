package engine

import "fmt"

// ResultKind tags the variant of a computation result.
type ResultKind int

const (
	// KindFields is a successful computation with named output fields.
	KindFields ResultKind = iota
	// KindText is a successful text transform (e.g. JSON prettify).
	KindText
	// KindError is a user-facing validation or computation failure.
	KindError
	// KindNote signals an unrecognized engine id (catalog drift, not an error).
	KindNote
)

// Field is one named output value. Fields keep their declaration order so
// renderers show them the way the formula defined them.
type Field struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Result is the dispatcher's return value: exactly one variant is set.
// There is no partial success — a result is either fully computed or an error.
type Result struct {
	Kind   ResultKind
	Err    string
	Note   string
	Text   string
	Fields []Field
}

// Errorf builds an error result.
func Errorf(format string, args ...any) Result {
	return Result{Kind: KindError, Err: fmt.Sprintf(format, args...)}
}

// Notef builds an informational note result.
func Notef(format string, args ...any) Result {
	return Result{Kind: KindNote, Note: fmt.Sprintf(format, args...)}
}

// TextResult builds a plain-text result.
func TextResult(text string) Result {
	return Result{Kind: KindText, Text: text}
}

// FieldsResult builds a success result from ordered fields.
func FieldsResult(fields ...Field) Result {
	return Result{Kind: KindFields, Fields: fields}
}

// F is shorthand for building a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// primaryPreference is the fixed preference order for choosing the single
// output field given prominent display. First match wins.
var primaryPreference = []string{
	"result", "emi", "bmi", "futureValue", "tax", "interest",
	"totalInterest", "cagrPercent", "value", "uuid", "password",
	"daysDifference", "years", "workdays", "isoWeek",
}

// PrimaryField returns the key of the field to display prominently, or ""
// when the result has no designated primary. Falls back to the sole field
// when exactly one exists.
func PrimaryField(res Result) string {
	if res.Kind != KindFields {
		return ""
	}
	for _, want := range primaryPreference {
		for _, f := range res.Fields {
			if f.Key == want {
				return f.Key
			}
		}
	}
	if len(res.Fields) == 1 {
		return res.Fields[0].Key
	}
	return ""
}
