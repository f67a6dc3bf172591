package game

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStaticFileServer(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>race</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("connect()"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := StaticFileServer(dir, "/index.html")
	if err != nil {
		t.Fatalf("StaticFileServer: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"/app.js", "connect()"},
		{"/lobby/42", "race"},
		{"/", "race"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("GET %s body = %q, want it to contain %q", tt.path, rec.Body.String(), tt.want)
		}
	}
}

func TestStaticFileServerMissingDir(t *testing.T) {
	if _, err := StaticFileServer(filepath.Join(t.TempDir(), "missing"), "/index.html"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
