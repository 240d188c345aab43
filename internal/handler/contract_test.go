package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigstage/music-event-backend/internal/middleware"
	"github.com/gigstage/music-event-backend/internal/repository"
)

func newContractHandler() *ContractHandler {
	return NewContractHandler(
		repository.NewContractRepo(nil),
		repository.NewUserRepo(nil),
		repository.NewEventRepo(nil),
	)
}

func TestContractCreateRequiresAuth(t *testing.T) {
	h := newContractHandler()

	c, rec := newJSONContext(t, http.MethodPost, "/api/contracts", `{"artistId":2,"eventName":"Gig"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContractCreateValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing artist", `{"eventName":"Gig"}`, "artistId is required"},
		{"missing event name", `{"artistId":2}`, "eventName is required"},
		{"negative payment", `{"artistId":2,"eventName":"Gig","paymentAmount":-50}`, "paymentAmount must not be negative"},
	}
	h := newContractHandler()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/contracts", tc.body)
			c.Set(middleware.CtxUserID, uint64(1))
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestContractUpdateStatusValidation(t *testing.T) {
	h := newContractHandler()

	// PENDING is not a legal target state.
	c, rec := newJSONContext(t, http.MethodPut, "/api/contracts/5/status", `{"status":"PENDING"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "status must be ACCEPTED or REJECTED")

	c, rec = newJSONContext(t, http.MethodPut, "/api/contracts/5/status", `{"status":"MAYBE"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContractLinkEventValidation(t *testing.T) {
	h := newContractHandler()

	c, rec := newJSONContext(t, http.MethodPut, "/api/contracts/5/link-event", `{"eventId":0}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.LinkEvent(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "eventId is required")
}
