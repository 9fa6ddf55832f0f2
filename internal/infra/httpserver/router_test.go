package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appanalysis "legalease/internal/application/analysis"
	appdocs "legalease/internal/application/documents"
	"legalease/internal/infra/ai/heuristic"
	"legalease/internal/infra/db/memory"
	"legalease/internal/infra/extract"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := memory.New()
	svc := &appdocs.Service{
		Docs:      repo,
		Analyses:  repo,
		Extractor: extract.New(),
		Analyzer:  appanalysis.NewService(nil, heuristic.New()),
		Clock:     appdocs.SystemClock{},
	}
	srv := httptest.NewServer(NewRouter(svc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func uploadFile(t *testing.T, url, filename, contentType, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="document"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url+"/api/documents/analyze", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := uploadFile(t, srv.URL, "lease.txt", "text/plain",
		"This rental agreement requires a security deposit and has a lock-in period.")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	doc := body["document"].(map[string]any)
	require.NotEmpty(t, doc["id"])
	require.Equal(t, "lease.txt", doc["filename"])
	require.Equal(t, "Residential Rental Agreement", doc["type"])

	an := body["analysis"].(map[string]any)
	require.NotEmpty(t, an["id"])
	require.NotEmpty(t, an["summary"])
	require.Equal(t, "heuristic", an["source"])
	require.NotEmpty(t, an["risks"])
	require.NotEmpty(t, an["keyProvisions"])
}

func TestAnalyzeRejectsMissingFile(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/documents/analyze", "multipart/form-data; boundary=x", strings.NewReader("--x--"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode(t, resp)
	require.Contains(t, body["message"], "no file uploaded")
}

func TestAnalyzeRejectsDisallowedType(t *testing.T) {
	srv := newTestServer(t)
	resp := uploadFile(t, srv.URL, "cat.gif", "image/gif", "GIF89a")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode(t, resp)
	require.Contains(t, body["message"], "only PDF, DOC, DOCX, and text files are allowed")
}

func TestAnalyzeRejectsEmptyDocument(t *testing.T) {
	srv := newTestServer(t)
	resp := uploadFile(t, srv.URL, "blank.txt", "text/plain", "   \n ")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetAnalysis(t *testing.T) {
	srv := newTestServer(t)
	resp := uploadFile(t, srv.URL, "doc.txt", "text/plain", "an agreement between parties")
	body := decode(t, resp)
	id := body["document"].(map[string]any)["id"].(string)

	resp2, err := http.Get(srv.URL + "/api/documents/" + id + "/analysis")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	got := decode(t, resp2)
	require.Equal(t, id, got["document"].(map[string]any)["id"])

	resp3, err := http.Get(srv.URL + "/api/documents/unknown/analysis")
	require.NoError(t, err)
	defer resp3.Body.Close()
	require.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

func TestQuestionFlow(t *testing.T) {
	srv := newTestServer(t)
	resp := uploadFile(t, srv.URL, "lease.txt", "text/plain",
		"rental agreement with a lock-in period of 11 months")
	body := decode(t, resp)
	id := body["document"].(map[string]any)["id"].(string)

	q := `{"question": "What is the lock-in period?"}`
	resp2, err := http.Post(srv.URL+"/api/documents/"+id+"/questions", "application/json", strings.NewReader(q))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	got := decode(t, resp2)
	require.NotEmpty(t, got["id"])
	require.Equal(t, "What is the lock-in period?", got["question"])
	// No providers in the test assembly, so the canned fallback answers.
	require.Contains(t, got["answer"], `"What is the lock-in period?"`)
	require.NotEmpty(t, got["createdAt"])

	resp3, err := http.Get(srv.URL + "/api/documents/" + id + "/questions")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp3.StatusCode)
	defer resp3.Body.Close()
	var history []map[string]any
	require.NoError(t, json.NewDecoder(resp3.Body).Decode(&history))
	require.Len(t, history, 1)
}

func TestQuestionValidation(t *testing.T) {
	srv := newTestServer(t)
	resp := uploadFile(t, srv.URL, "doc.txt", "text/plain", "agreement text")
	body := decode(t, resp)
	id := body["document"].(map[string]any)["id"].(string)

	resp2, err := http.Post(srv.URL+"/api/documents/"+id+"/questions", "application/json", strings.NewReader(`{"question": "  "}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)

	resp3, err := http.Post(srv.URL+"/api/documents/unknown/questions", "application/json", strings.NewReader(`{"question": "Is it valid?"}`))
	require.NoError(t, err)
	defer resp3.Body.Close()
	require.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
