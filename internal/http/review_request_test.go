package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelab/review-gateway/internal/http/middleware"
	"github.com/storelab/review-gateway/internal/model"
	"github.com/storelab/review-gateway/internal/orders"
)

type fakeRunner struct {
	outcomes []model.Outcome
	err      error
	calls    int
}

func (f *fakeRunner) Run(ctx context.Context) ([]model.Outcome, error) {
	f.calls++
	return f.outcomes, f.err
}

// invoke runs the handler behind the shared-secret middleware, the way the
// route is wired in NewServer.
func invoke(t *testing.T, runner TriggerRunner, secret, header, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/review-request", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if header != "" {
		req.Header.Set(middleware.HeaderSecret, header)
	}
	rec := httptest.NewRecorder()

	h := middleware.SharedSecret(secret)(reviewRequestHandler(runner))
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))

	return rec
}

func TestReviewRequest_Unauthorized(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong secret", header: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeRunner{}
			rec := invoke(t, fr, "sekrit", tt.header, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
			assert.Zero(t, fr.calls, "no fetch or send may happen on auth failure")
		})
	}
}

func TestReviewRequest_Success(t *testing.T) {
	fr := &fakeRunner{outcomes: []model.Outcome{
		{MessageID: "m1", PreviewURL: "http://preview/m1"},
		{Error: "mailbox unavailable"},
	}}

	rec := invoke(t, fr, "sekrit", "sekrit", `{"trigger_type":"cron"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fr.calls)

	var resp triggerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Review requests sent!", resp.Message)
	require.Len(t, resp.Outcomes, 2)
	assert.Equal(t, "m1", resp.Outcomes[0].MessageID)
	assert.Equal(t, "mailbox unavailable", resp.Outcomes[1].Error)
}

func TestReviewRequest_EmptyBodyAccepted(t *testing.T) {
	fr := &fakeRunner{outcomes: []model.Outcome{}}

	rec := invoke(t, fr, "sekrit", "sekrit", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Review requests sent!","outcomes":[]}`, rec.Body.String())
}

func TestReviewRequest_UpstreamFailure(t *testing.T) {
	fr := &fakeRunner{err: fmt.Errorf("fetch review candidates: %w", orders.ErrUpstream)}

	rec := invoke(t, fr, "sekrit", "sekrit", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to fetch review candidates")
}

func TestReviewRequest_InternalFailure(t *testing.T) {
	fr := &fakeRunner{err: fmt.Errorf("boom")}

	rec := invoke(t, fr, "sekrit", "sekrit", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
