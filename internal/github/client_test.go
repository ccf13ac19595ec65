package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDescription(t *testing.T) {
	type request struct {
		method, path, auth string
		body               map[string]any
	}
	requests := make(chan request, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		requests <- request{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization"), body: body}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"number": 42, "body": body["body"]})
	}))
	defer srv.Close()

	client, err := NewClient("ghp_test", 10, srv.URL)
	require.NoError(t, err)

	require.NoError(t, client.UpdateDescription(context.Background(), "steveseguin", "social_stream", 42, "## Summary\nBetter"))

	got := <-requests
	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, "/repos/steveseguin/social_stream/pulls/42", got.path)
	assert.Equal(t, "Bearer ghp_test", got.auth)
	assert.Equal(t, "## Summary\nBetter", got.body["body"])
}

func TestUpdateDescriptionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
	}))
	defer srv.Close()

	client, err := NewClient("ghp_test", 10, srv.URL+"/")
	require.NoError(t, err)

	err = client.UpdateDescription(context.Background(), "o", "r", 7, "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update pull request #7")
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("t", 1, "://bad")
	assert.Error(t, err)
}

func TestLoadPullRequestEvent(t *testing.T) {
	payload := `{
  "action": "synchronize",
  "number": 12,
  "pull_request": {
    "number": 12,
    "body": "Adds Kick chat",
    "base": {"ref": "main", "sha": "1111111111111111111111111111111111111111"},
    "head": {"ref": "feature/kick", "sha": "2222222222222222222222222222222222222222"}
  }
}`
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	info, err := LoadPullRequestEvent(path)
	require.NoError(t, err)
	assert.Equal(t, &PullRequestInfo{
		Number:  12,
		Body:    "Adds Kick chat",
		BaseSHA: "1111111111111111111111111111111111111111",
		HeadSHA: "2222222222222222222222222222222222222222",
		BaseRef: "main",
		HeadRef: "feature/kick",
	}, info)
}

func TestLoadPullRequestEventErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
		return p
	}

	tests := map[string]string{
		"empty path":   "",
		"missing file": filepath.Join(dir, "absent.json"),
		"invalid json": write("bad.json", "{"),
		"push event":   write("push.json", `{"ref":"refs/heads/main"}`),
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadPullRequestEvent(path)
			assert.Error(t, err)
		})
	}

	info, err := LoadPullRequestEvent(write("nobody.json", `{"pull_request":{"number":3,"body":null}}`))
	require.NoError(t, err)
	assert.Empty(t, info.Body)
}
