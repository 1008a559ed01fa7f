package cardfields

import (
	"memoria/internal/domain/models/flashcard"
)

// vocabTemplate has FRONT/BACK text fields, an enum and a free-text note
func vocabTemplate() *flashcard.Template {
	return &flashcard.Template{
		ID:   "tpl-vocab",
		Name: "Vocabulary",
		Fields: []flashcard.TemplateField{
			{ID: "tf-word", TemplateID: "tpl-vocab", Name: "Word", Role: flashcard.RoleFront, Type: flashcard.TextType(), Position: 0},
			{ID: "tf-meaning", TemplateID: "tpl-vocab", Name: "Meaning", Role: flashcard.RoleBack, Type: flashcard.TextType(), Position: 1},
			{ID: "tf-pos", TemplateID: "tpl-vocab", Name: "Part of speech", Role: flashcard.RoleExtra, Type: flashcard.EnumType("noun", "verb", "adjective"), Position: 2},
			{ID: "tf-tags", TemplateID: "tpl-vocab", Name: "Level", Role: flashcard.RoleExtra, Type: flashcard.MultiTagType("A1", "A2", "B1"), Position: 3},
			{ID: "tf-note", TemplateID: "tpl-vocab", Name: "Note", Role: flashcard.RoleHint, Type: flashcard.TextType(), Position: 4},
		},
	}
}

func sub(templateFieldID, content string) flashcard.FieldSubmission {
	return flashcard.FieldSubmission{TemplateFieldID: templateFieldID, Content: content}
}
