package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwright/bookwright/internal/api"
	"github.com/bookwright/bookwright/internal/store"
	"github.com/bookwright/bookwright/internal/wizard"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := NewRouter(NewProcessor(store.NewMemory()))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body, out any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func startSession(t *testing.T, srv *httptest.Server) api.StartResponse {
	t.Helper()
	var resp api.StartResponse
	r := postJSON(t, srv.URL+"/wizard/start", api.StartRequest{
		Concept: "A cartographer maps a city that rearranges itself every night.",
	}, &resp)
	require.Equal(t, http.StatusOK, r.StatusCode)
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	var h api.HealthResponse
	resp := getJSON(t, srv.URL+"/health", &h)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", h.Status)
	assert.False(t, h.Timestamp.IsZero())
}

func TestStartSession(t *testing.T) {
	srv := newTestServer(t)
	resp := startSession(t, srv)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 2, resp.FirstStep.StepNumber)
	assert.Equal(t, "genre", resp.FirstStep.StepName)
	assert.NotEmpty(t, resp.FirstStep.Question)
	require.NotEmpty(t, resp.FirstStep.Options)
	for _, o := range resp.FirstStep.Options {
		assert.Equal(t, 70.0, o.RecommendationScore)
	}
	assert.False(t, resp.FirstStep.CanGoBack)
	assert.False(t, resp.FirstStep.IsFinalStep)
}

func TestStartConceptTooShort(t *testing.T) {
	srv := newTestServer(t)
	var er api.ErrorResponse
	resp := postJSON(t, srv.URL+"/wizard/start", api.StartRequest{Concept: "short"}, &er)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, er.Detail, "at least 10")
}

func TestStartPaddedNotesWithinLimit(t *testing.T) {
	srv := newTestServer(t)
	var resp api.StartResponse
	r := postJSON(t, srv.URL+"/wizard/start", api.StartRequest{
		Concept:         "A cartographer maps a city that rearranges itself every night.",
		AdditionalNotes: "   " + strings.Repeat("n", wizard.MaxNotesLen) + "   ",
	}, &resp)
	assert.Equal(t, http.StatusOK, r.StatusCode, "padding must not count against the notes limit")
	assert.NotEmpty(t, resp.SessionID)
}

func TestStartNotesTooLong(t *testing.T) {
	srv := newTestServer(t)
	var er api.ErrorResponse
	resp := postJSON(t, srv.URL+"/wizard/start", api.StartRequest{
		Concept:         "A cartographer maps a city that rearranges itself every night.",
		AdditionalNotes: strings.Repeat("n", wizard.MaxNotesLen+1),
	}, &er)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, er.Detail, "at most 500")
}

func TestStepUnknownSession(t *testing.T) {
	srv := newTestServer(t)
	sel := "fantasy"
	var er api.ErrorResponse
	resp := postJSON(t, srv.URL+"/wizard/step/2", api.StepRequest{SessionID: "missing", Selection: &sel}, &er)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Session not found", er.Detail)
}

func TestStepOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	started := startSession(t, srv)

	for _, n := range []int{1, 9, 0, 42} {
		var er api.ErrorResponse
		resp := postJSON(t, fmt.Sprintf("%s/wizard/step/%d", srv.URL, n), api.StepRequest{SessionID: started.SessionID}, &er)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "step %d", n)
	}
}

func TestSubmitGenreRecordsSelectionAndSubgenre(t *testing.T) {
	srv := newTestServer(t)
	started := startSession(t, srv)

	sel := "fantasy"
	var meta api.StepMetadata
	resp := postJSON(t, srv.URL+"/wizard/step/2", api.StepRequest{SessionID: started.SessionID, Selection: &sel}, &meta)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "genre", meta.StepName)

	var snap api.SessionSnapshot
	getJSON(t, srv.URL+"/wizard/session/"+started.SessionID, &snap)
	assert.Equal(t, "fantasy", snap.Selections["genre"])
	assert.NotEmpty(t, snap.Selections["subgenre"], "genre submit fills a default subgenre")
	assert.Equal(t, 3, snap.CurrentStep)
}

func TestFetchDoesNotMutate(t *testing.T) {
	srv := newTestServer(t)
	started := startSession(t, srv)

	var meta api.StepMetadata
	resp := postJSON(t, srv.URL+"/wizard/step/4", api.StepRequest{SessionID: started.SessionID}, &meta)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "style", meta.StepName)
	assert.NotEmpty(t, meta.Options)

	var snap api.SessionSnapshot
	getJSON(t, srv.URL+"/wizard/session/"+started.SessionID, &snap)
	assert.Empty(t, snap.Selections["style"])
	assert.Equal(t, 2, snap.CurrentStep, "a fetch must not advance the session")
}

func TestContentStepCompletesSession(t *testing.T) {
	srv := newTestServer(t)
	started := startSession(t, srv)

	selections := map[int]string{2: "mystery", 3: "adult", 4: "atmospheric_prose", 5: "standard_novel", 6: "mystery_structure", 7: "contemporary"}
	for n := 2; n <= 7; n++ {
		sel := selections[n]
		resp := postJSON(t, fmt.Sprintf("%s/wizard/step/%d", srv.URL, n), api.StepRequest{SessionID: started.SessionID, Selection: &sel}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	prefs := "cozy, low gore"
	var meta api.StepMetadata
	resp := postJSON(t, srv.URL+"/wizard/step/8", api.StepRequest{SessionID: started.SessionID, Selection: &prefs, AdditionalInput: prefs}, &meta)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, meta.IsFinalStep)

	var snap api.SessionSnapshot
	getJSON(t, srv.URL+"/wizard/session/"+started.SessionID, &snap)
	assert.True(t, snap.IsComplete)
	require.NotNil(t, snap.BookSummary)
	assert.Equal(t, "Mystery", snap.BookSummary["genre"])
	assert.Equal(t, "cozy, low gore", snap.BookSummary["contentPreferences"])
	assert.NotEmpty(t, snap.BookSummary["concept"])
}

func TestSessionNotFound(t *testing.T) {
	srv := newTestServer(t)
	var er api.ErrorResponse
	resp := getJSON(t, srv.URL+"/wizard/session/missing", &er)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Session not found", er.Detail)
}
