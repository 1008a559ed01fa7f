package cardfields

import (
	"memoria/internal/domain"
	"memoria/internal/domain/models/flashcard"
)

// ValidateStructure requires at least one FRONT and one BACK field among the
// card's resolved fields. Other roles neither help nor hurt.
func ValidateStructure(fields []*flashcard.Field) error {
	var front, back bool
	for _, f := range fields {
		if f.TemplateField == nil {
			continue
		}
		switch f.TemplateField.Role {
		case flashcard.RoleFront:
			front = true
		case flashcard.RoleBack:
			back = true
		}
	}

	if !front || !back {
		return domain.NewValidationError("card must have at least one FRONT and one BACK field")
	}
	return nil
}
