package alwaseet

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
)

// fakeUpstream is an httptest.Server mimicking the merchant API.
// Bodies are canned per path; calls and their query/form values are recorded.
type fakeUpstream struct {
	t   *testing.T
	srv *httptest.Server

	mu        sync.Mutex
	bodies    map[string]string
	statuses  map[string]int
	calls     map[string]int
	lastQuery map[string]url.Values
	lastForm  url.Values
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{
		t:         t,
		bodies:    map[string]string{loginPath: `{"status":true,"data":{"token":"tok-1"},"msg":"ok"}`},
		statuses:  map[string]int{},
		calls:     map[string]int{},
		lastQuery: map[string]url.Values{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[r.URL.Path]++
	f.lastQuery[r.URL.Path] = r.URL.Query()
	if r.URL.Path == loginPath {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_ = r.ParseForm()
		f.lastForm = r.PostForm
	}

	body, ok := f.bodies[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if code := f.statuses[r.URL.Path]; code != 0 {
		w.WriteHeader(code)
	}
	_, _ = w.Write([]byte(body))
}

func (f *fakeUpstream) respond(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[path] = body
}

func (f *fakeUpstream) respondStatus(path string, code int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[path] = body
	f.statuses[path] = code
}

func (f *fakeUpstream) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeUpstream) query(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery[path]
}

func (f *fakeUpstream) form() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastForm
}

func (f *fakeUpstream) URL() string { return f.srv.URL }

// unreachableURL returns the address of a server that has already been shut down.
func unreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

func newTestClient(baseURL string) *Client {
	return NewClient(zap.NewNop(), nil, baseURL, 2*time.Second)
}

// newTestService wires a Service with a fresh in-memory store against baseURL.
func newTestService(baseURL string) (*Service, *auth.MemoryStore) {
	logger := zap.NewNop()
	store := auth.NewMemoryStore(0)
	client := newTestClient(baseURL)
	tokens := NewTokenManager(logger, client, store)
	return NewService(logger, tokens, client), store
}

func testCreds(user string) auth.Credentials {
	return auth.Credentials{Username: user, Password: "pw-" + user}
}
