package group

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/foodmate/pkg/response"
)

func TestListMetaReportsEffectivePagination(t *testing.T) {
	svc, _, _, _ := newService()
	h := NewHandler(svc, nil, nil)

	// Out-of-range per_page falls back to the default; Meta must carry the
	// value the rows were actually fetched with.
	req := httptest.NewRequest(http.MethodGet, "/groups?per_page=200", nil)
	rec := httptest.NewRecorder()
	h.ListAll(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 20, resp.Meta.PerPage)
	assert.Equal(t, 1, resp.Meta.Page)
}

func TestListNearbyRejectsBadCoordinates(t *testing.T) {
	svc, _, _, _ := newService()
	h := NewHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/groups/nearby?latitude=abc&longitude=127.0", nil)
	rec := httptest.NewRecorder()
	h.ListNearby(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
