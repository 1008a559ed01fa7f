package cardfields

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"memoria/internal/domain"
)

// ContentFinder is the storage lookup the detector relies on
type ContentFinder interface {
	FindIDsByContent(ctx context.Context, ownerID, content string) ([]string, error)
}

// DuplicateDetector flags submitted content that other cards already hold
type DuplicateDetector struct {
	finder ContentFinder
}

// NewDuplicateDetector creates a detector backed by the given lookup
func NewDuplicateDetector(finder ContentFinder) *DuplicateDetector {
	return &DuplicateDetector{finder: finder}
}

// Check returns a DuplicateError when cards other than currentCardID hold content.
// allowDuplicate skips the check. Blank content is never treated as a duplicate.
func (d *DuplicateDetector) Check(ctx context.Context, ownerID, content, currentCardID string, allowDuplicate bool) error {
	if allowDuplicate || strings.TrimSpace(content) == "" {
		return nil
	}

	ids, err := d.finder.FindIDsByContent(ctx, ownerID, content)
	if err != nil {
		return fmt.Errorf("find cards by content: %w", err)
	}

	others := slices.DeleteFunc(slices.Clone(ids), func(id string) bool {
		return id == currentCardID
	})
	if len(others) == 0 {
		return nil
	}

	return &domain.DuplicateError{
		Message: fmt.Sprintf("a card with the field %q already exists; resubmit with allow_duplicate to save it anyway", content),
		Content: content,
		CardIDs: others,
	}
}
