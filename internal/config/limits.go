package config

const (
	// MaxDeckNameLength is the maximum length (in characters) of a single deck name.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxDeckNameLength = 255

	// MaxDeckPathLength is the maximum length of a full "A::B::C" deck path.
	// Deeper hierarchies are still allowed as long as the joined path fits.
	MaxDeckPathLength = 2000

	// MaxFieldContentLength is the maximum length of one card field's content.
	MaxFieldContentLength = 10000

	// MaxFieldsPerSubmission caps the number of field submissions in one request.
	MaxFieldsPerSubmission = 100
)
