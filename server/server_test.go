package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dripapps/canva-connect/auth"
	"github.com/dripapps/canva-connect/authstate"
	"github.com/dripapps/canva-connect/canva"
	"github.com/dripapps/canva-connect/designs"
	"github.com/dripapps/canva-connect/export"
	"github.com/dripapps/canva-connect/fetch"
	"github.com/dripapps/canva-connect/internal/config"
	"github.com/dripapps/canva-connect/server"
	"github.com/dripapps/canva-connect/sessions"
)

const testFrontend = "http://127.0.0.1:5173"

type testServerConfig struct {
	config.EnvVars
	config.Cors
	config.Export
	remoteURL string
	uploadDir string
}

func (c testServerConfig) GetClientID() string         { return "client-1" }
func (c testServerConfig) GetClientSecret() string     { return "secret-1" }
func (c testServerConfig) GetAuthorizationURL() string { return c.remoteURL + "/authorize" }
func (c testServerConfig) GetTokenURL() string         { return c.remoteURL + "/token" }
func (c testServerConfig) GetAPIBaseURL() string       { return c.remoteURL }
func (c testServerConfig) GetRedirectURI() string      { return "http://127.0.0.1:8080/callback" }
func (c testServerConfig) GetScopes() string           { return "design:meta:read design:content:read" }
func (c testServerConfig) GetUploadDir() string        { return c.uploadDir }
func (c testServerConfig) GetFrontendOrigin() string   { return testFrontend }
func (c testServerConfig) GetExportPollInterval() time.Duration { return time.Millisecond }

func (c testServerConfig) GetAllowedOrigins() config.AllowedOrigins {
	return config.AllowedOrigins{testFrontend: struct{}{}}
}

// fakeCanva scripts the remote platform: OAuth token endpoint, design list,
// and the export job lifecycle.
type fakeCanva struct {
	mux          *http.ServeMux
	exportStatus string // status returned by the export poll endpoint
	failMessage  string
}

func newFakeCanva() *fakeCanva {
	f := &fakeCanva{mux: http.NewServeMux(), exportStatus: canva.ExportStatusSuccess}

	f.mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "remote-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	f.mux.HandleFunc("GET /designs", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer remote-access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"D1"}]}`))
	})

	f.mux.HandleFunc("POST /exports", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"job":{"id":"job-1"}}`))
	})

	f.mux.HandleFunc("GET /exports/{jobID}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch f.exportStatus {
		case canva.ExportStatusFailed:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"job": map[string]any{"id": "job-1", "status": "failed", "error": map[string]any{"message": f.failMessage}},
			})
		default:
			host := "http://" + r.Host
			_ = json.NewEncoder(w).Encode(map[string]any{
				"job": map[string]any{
					"id":     "job-1",
					"status": f.exportStatus,
					"result": map[string]any{"downloadUrls": []string{host + "/download/D1.png"}},
				},
			})
		}
	})

	f.mux.HandleFunc("GET /download/{file}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	})

	return f
}

// serverFixture holds all test dependencies
type serverFixture struct {
	remote    *fakeCanva
	srv       *httptest.Server
	client    *http.Client
	uploadDir string
}

func setupServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	remote := newFakeCanva()
	remoteServer := httptest.NewServer(remote.mux)
	t.Cleanup(remoteServer.Close)

	cfg := testServerConfig{
		remoteURL: remoteServer.URL,
		uploadDir: t.TempDir(),
	}

	pendingRepo := authstate.NewInMemoryRepo()
	sessionRepo := sessions.NewInMemoryRepo()

	authService, err := auth.NewAuthorizationService(cfg, pendingRepo, sessionRepo)
	require.NoError(t, err)

	apiClient := canva.NewClient(cfg)
	runner := export.NewRunner(apiClient, cfg.GetExportPollInterval(), cfg.GetExportMaxAttempts())
	fetcher := fetch.NewFetcher(cfg)
	registry := designs.NewInMemoryRegistry()
	catalog := designs.NewCatalog(apiClient, authService, registry, runner, fetcher)

	srv := httptest.NewServer(server.New(cfg, authService, catalog, pendingRepo))
	t.Cleanup(srv.Close)

	return &serverFixture{
		remote: remote,
		srv:    srv,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		uploadDir: cfg.uploadDir,
	}
}

func (f *serverFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := f.client.Get(f.srv.URL + path)
	require.NoError(t, err)
	return resp
}

func (f *serverFixture) post(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := f.client.Post(f.srv.URL+path, "application/json", nil)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// login walks the fixture through the OAuth flow: pulls the auth URL,
// extracts the state, and replays the provider callback.
func (f *serverFixture) login(t *testing.T) {
	t.Helper()

	resp := f.get(t, "/auth/login")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decodeBody[server.AuthStatusResponse](t, resp)
	require.False(t, status.Authenticated)
	require.NotEmpty(t, status.AuthURL)

	parsed, err := url.Parse(status.AuthURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	callback := f.get(t, "/callback?code=auth-code-1&state="+url.QueryEscape(state))
	defer callback.Body.Close()
	require.Equal(t, http.StatusFound, callback.StatusCode)
	require.Equal(t, testFrontend+"?auth=success", callback.Header.Get("Location"))
}

func TestAuthStatusUnauthenticated(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.get(t, "/auth/status")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := decodeBody[server.AuthStatusResponse](t, resp)
	require.False(t, status.Authenticated)
	require.Contains(t, status.AuthURL, "code_challenge=")
	require.Contains(t, status.AuthURL, "code_challenge_method=S256")
}

func TestAuthStatusAfterLogin(t *testing.T) {
	f := setupServerFixture(t)
	f.login(t)

	resp := f.get(t, "/auth/status")
	status := decodeBody[server.AuthStatusResponse](t, resp)
	require.True(t, status.Authenticated)
	require.Empty(t, status.AuthURL)
}

func TestCallbackWithUnknownState(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.get(t, "/callback?code=auth-code-1&state=forged-state")
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, testFrontend+"?auth=failed", resp.Header.Get("Location"))
}

func TestCallbackWithMissingParameters(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.get(t, "/callback")
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, testFrontend+"?auth=failed", resp.Header.Get("Location"))
}

func TestLogout(t *testing.T) {
	f := setupServerFixture(t)
	f.login(t)

	resp := f.post(t, "/logout")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := decodeBody[server.AuthStatusResponse](t, f.get(t, "/auth/status"))
	require.False(t, status.Authenticated)
}

func TestListDesignsRequiresAuthentication(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.get(t, "/designs")
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListDesignsDefaultsMissingFields(t *testing.T) {
	f := setupServerFixture(t)
	f.login(t)

	list := decodeBody[[]designs.Design](t, f.get(t, "/designs"))
	require.Equal(t, []designs.Design{{
		DesignID: "D1",
		Title:    "Untitled Design",
		Imported: false,
	}}, list)
}

func TestGetDesign(t *testing.T) {
	f := setupServerFixture(t)
	f.login(t)

	design := decodeBody[designs.Design](t, f.get(t, "/designs/D1"))
	require.Equal(t, "D1", design.DesignID)

	resp := f.get(t, "/designs/D9")
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImportAndServeImage(t *testing.T) {
	f := setupServerFixture(t)
	f.login(t)

	result := decodeBody[server.ImportResult](t, f.post(t, "/designs/D1/import"))
	require.True(t, result.Success)
	require.Equal(t, "D1", result.DesignID)
	require.Equal(t, "/images/D1.png", result.ImageURL)
	require.Empty(t, result.Error)

	// Subsequent listings must show the imported overlay.
	list := decodeBody[[]designs.Design](t, f.get(t, "/designs"))
	require.Len(t, list, 1)
	require.True(t, list[0].Imported)
	require.Equal(t, "/images/D1.png", list[0].LocalImageURL)

	// And the PNG must be served back.
	resp := f.get(t, "/images/D1.png")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), body)
}

func TestImportFailureIsReportedInBody(t *testing.T) {
	f := setupServerFixture(t)
	f.login(t)
	f.remote.exportStatus = canva.ExportStatusFailed
	f.remote.failMessage = "quota exceeded"

	resp := f.post(t, "/designs/D1/import")
	require.Equal(t, http.StatusOK, resp.StatusCode) // failure travels in the body

	result := decodeBody[server.ImportResult](t, resp)
	require.False(t, result.Success)
	require.Equal(t, "D1", result.DesignID)
	require.Contains(t, result.Error, "quota exceeded")
}

func TestServeImageNotFound(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.get(t, "/images/missing.png")
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Wrong extension and dotted names never reach the filesystem.
	resp = f.get(t, "/images/diagram.svg")
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.get(t, "/images/..png")
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCorsHeadersForAllowedOrigin(t *testing.T) {
	f := setupServerFixture(t)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/auth/status", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", testFrontend)

	resp, err := f.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, testFrontend, resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCorsPreflight(t *testing.T) {
	f := setupServerFixture(t)

	req, err := http.NewRequest(http.MethodOptions, f.srv.URL+"/designs/D1/import", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", testFrontend)
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := f.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, testFrontend, resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}
