package cardfields

import (
	"fmt"
	"slices"

	"memoria/internal/domain"
	"memoria/internal/domain/models/flashcard"
)

// ValidateContent applies the content rule of the field's type.
// Free text accepts anything, empty included. ENUM and MULTI_TAG content must be
// one of the allowed options; an empty option list accepts nothing.
func ValidateContent(tf *flashcard.TemplateField, content string) error {
	switch tf.Type.Kind {
	case flashcard.KindText:
		return nil
	case flashcard.KindEnum, flashcard.KindMultiTag:
		if len(tf.Type.Options) == 0 || !slices.Contains(tf.Type.Options, content) {
			return &domain.ValidationError{
				Message:        fmt.Sprintf("invalid option %q for field %q", content, tf.Name),
				AllowedOptions: append([]string{}, tf.Type.Options...),
			}
		}
		return nil
	default:
		return domain.NewValidationError("field %q has unsupported type %q", tf.Name, tf.Type.Kind)
	}
}
