package rest

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfeed/infra/auth"
	"termfeed/infra/logging"
)

type staticToken string

func (s staticToken) AccessToken() (string, error) { return string(s), nil }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, staticToken("tok-1"), logging.Discard()), srv
}

func TestClient_SetsAuthHeader(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := c.Get("/x/")
	require.NoError(t, err)
	assert.Equal(t, "Token tok-1", gotAuth)
}

func TestClient_AnonymousGetOmitsAuthHeader(t *testing.T) {
	var hits int
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	// A missing token file means logged out, not broken. Reads still work.
	tp := auth.NewFileTokenProvider(filepath.Join(t.TempDir(), "no-such-token"))
	c := NewClient(srv.URL, tp, logging.Discard())

	_, err := c.Get("/app/posts/")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Empty(t, gotAuth)
}

func TestClient_MirrorsCSRFCookieOnMutations(t *testing.T) {
	var mu struct{ get, post string }
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			mu.get = r.Header.Get("X-CSRFToken")
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-42", Path: "/"})
		case http.MethodPost:
			mu.post = r.Header.Get("X-CSRFToken")
		}
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := c.Get("/seed/")
	require.NoError(t, err)
	assert.Empty(t, mu.get, "GET must not carry a CSRF header")

	_, err = c.PostJSON("/mutate/", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "csrf-42", mu.post)
}

func TestClient_ErrorMessageExtractionChain(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"nope"}`, "nope"},
		{"detail field", `{"detail":"not found"}`, "not found"},
		{"field array", `{"content":["content is required"]}`, "content is required"},
		{"error wins over detail", `{"error":"primary","detail":"secondary"}`, "primary"},
		{"unparseable body", `<html>boom</html>`, "request failed (400)"},
		{"empty object", `{}`, "request failed (400)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			_, err := c.Get("/err/")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClient_UnauthorizedMapsToNotLoggedIn(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	_, err := c.Get("/private/")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not logged in")
}

func TestClient_MultipartCarriesFieldsAndFile(t *testing.T) {
	attachment := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(attachment, []byte("png-bytes"), 0o600))

	var gotContent, gotFile, gotFileName string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotContent = r.FormValue("content")
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, 16)
		n, _ := f.Read(buf)
		gotFile = string(buf[:n])
		gotFileName = hdr.Filename
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := c.PostMultipart("/up/", map[string]string{"content": "hi"}, "image", attachment)
	require.NoError(t, err)
	assert.Equal(t, "hi", gotContent)
	assert.Equal(t, "png-bytes", gotFile)
	assert.Equal(t, "pic.png", gotFileName)
}
