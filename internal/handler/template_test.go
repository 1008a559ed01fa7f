package handler

import (
	"net/http"
	"testing"

	"memoria/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestListTemplates(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(http.MethodGet, "/api/templates", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Basic"`)
}

func TestGetTemplate(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.do(http.MethodGet, "/api/templates/"+templateID, "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		ts := newTestServer()
		ts.templates.err = domain.NewNotFoundError("template", "template not found")
		rec := ts.do(http.MethodGet, "/api/templates/"+templateID, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
