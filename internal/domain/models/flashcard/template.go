package flashcard

import "time"

// FieldRole is the structural role of a template field
type FieldRole string

const (
	RoleFront FieldRole = "FRONT"
	RoleBack  FieldRole = "BACK"
	RoleExtra FieldRole = "EXTRA"
	RoleHint  FieldRole = "HINT"
	RoleMedia FieldRole = "MEDIA"
)

// IsStructural reports whether the role counts towards the FRONT/BACK card invariant
func (r FieldRole) IsStructural() bool {
	return r == RoleFront || r == RoleBack
}

// FieldKind is the closed set of content types a template field can have
type FieldKind string

const (
	KindText     FieldKind = "TEXT"
	KindEnum     FieldKind = "ENUM"
	KindMultiTag FieldKind = "MULTI_TAG"
)

// FieldType is a tagged variant: Options only carries data for ENUM and MULTI_TAG.
type FieldType struct {
	Kind    FieldKind `json:"kind" yaml:"kind"`
	Options []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// TextType returns the free-text field type
func TextType() FieldType {
	return FieldType{Kind: KindText}
}

// EnumType returns an enumerated field type restricted to options
func EnumType(options ...string) FieldType {
	return FieldType{Kind: KindEnum, Options: options}
}

// MultiTagType returns a multi-tag field type restricted to options
func MultiTagType(options ...string) FieldType {
	return FieldType{Kind: KindMultiTag, Options: options}
}

// HasOptions reports whether content of this type is restricted to an option set
func (t FieldType) HasOptions() bool {
	return t.Kind == KindEnum || t.Kind == KindMultiTag
}

type TemplateField struct {
	ID         string    `json:"id" db:"id"`
	TemplateID string    `json:"template_id" db:"template_id"`
	Name       string    `json:"name" db:"name"`
	Role       FieldRole `json:"role" db:"role"`
	Type       FieldType `json:"type"`
	Position   int       `json:"position" db:"position"`
}

type Template struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description,omitempty" db:"description"`
	Fields      []TemplateField `json:"fields"` // Ordered by Position
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
