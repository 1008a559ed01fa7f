package templates

import models "memoria/internal/domain/models/flashcard"

// TemplateSpec is one catalog entry as written in YAML
type TemplateSpec struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Fields      []FieldSpec `yaml:"fields"`
}

// FieldSpec is one template field; position is its index in the list
type FieldSpec struct {
	Name    string   `yaml:"name"`
	Role    string   `yaml:"role"`
	Kind    string   `yaml:"kind"`
	Options []string `yaml:"options,omitempty"`
}

// toModel converts the catalog entry into an unsaved template (no ids)
func (s TemplateSpec) toModel() models.Template {
	t := models.Template{
		Name:        s.Name,
		Description: s.Description,
		Fields:      make([]models.TemplateField, len(s.Fields)),
	}
	for i, f := range s.Fields {
		t.Fields[i] = models.TemplateField{
			Name:     f.Name,
			Role:     models.FieldRole(f.Role),
			Type:     models.FieldType{Kind: models.FieldKind(f.Kind), Options: f.Options},
			Position: i,
		}
	}
	return t
}
