package modapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newServer(t *testing.T, archive []byte) (*httptest.Server, *int) {
	t.Helper()
	downloads := 0
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	mux.HandleFunc("/api/mod/wolves", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
  "statuscode": "200",
  "mod": {"releases": [
    {"modversion": "1.3.0-pre.1", "mainfile": "%[1]s/files/wolves-1.3.0-pre.1.zip", "filename": "wolves-1.3.0-pre.1.zip"},
    {"modversion": "1.2.0", "mainfile": "%[1]s/files/wolves-1.2.0.zip", "filename": "wolves-1.2.0.zip"}
  ]}
}`, srv.URL)
	})
	mux.HandleFunc("/api/mod/gone", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"statuscode": "404"}`)
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		downloads++
		w.Write(archive)
	})
	t.Cleanup(srv.Close)
	return srv, &downloads
}

func TestLatestSkipsPrerelease(t *testing.T) {
	srv, _ := newServer(t, nil)
	c := NewClient(srv.URL, t.TempDir(), nil)
	rels, err := c.Releases(context.Background(), "wolves")
	if err != nil {
		t.Fatal(err)
	}
	r, err := Latest(rels)
	if err != nil {
		t.Fatal(err)
	}
	if r.ModVersion != "1.2.0" || r.FileName != "wolves-1.2.0.zip" {
		t.Errorf("got %+v", r)
	}
	if _, err := Latest(rels[:1]); !errors.Is(err, ErrNoRelease) {
		t.Errorf("expected ErrNoRelease, got %v", err)
	}
}

func TestReleasesAPIStatus(t *testing.T) {
	srv, _ := newServer(t, nil)
	c := NewClient(srv.URL, t.TempDir(), nil)
	if _, err := c.Releases(context.Background(), "gone"); !errors.Is(err, ErrStatus) {
		t.Errorf("expected ErrStatus, got %v", err)
	}
	if _, err := c.Releases(context.Background(), "missing"); !errors.Is(err, ErrStatus) {
		t.Errorf("expected ErrStatus for 404, got %v", err)
	}
}

func TestNewer(t *testing.T) {
	tests := []struct {
		next, current string
		want          bool
	}{
		{"1.2.0", "", true},
		{"1.2.0", "1.1.9", true},
		{"1.2.0", "1.2.0", false},
		{"1.10.0", "1.9.0", true},
		{"1.2.0", "v1.3.0", false},
	}
	for _, tt := range tests {
		got, err := Newer(tt.next, tt.current)
		if err != nil {
			t.Errorf("Newer(%q, %q): %v", tt.next, tt.current, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Newer(%q, %q) = %v, want %v", tt.next, tt.current, got, tt.want)
		}
	}
	if _, err := Newer("1.2.0", "latest"); err == nil {
		t.Error("expected error for invalid version")
	}
}

func TestCheckDownloadsOnce(t *testing.T) {
	archive := []byte("PK\x03\x04 not really a zip")
	srv, downloads := newServer(t, archive)
	cache := t.TempDir()
	c := NewClient(srv.URL, cache, nil)
	ctx := context.Background()

	up, err := c.Check(ctx, "wolves", "1.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if up == nil {
		t.Fatal("expected update")
	}
	want := &Update{
		ModID:   "wolves",
		Release: Release{ModVersion: "1.2.0", MainFile: srv.URL + "/files/wolves-1.2.0.zip", FileName: "wolves-1.2.0.zip"},
		Archive: filepath.Join(cache, "wolves-1.2.0.zip"),
	}
	if diff := cmp.Diff(want, up); diff != "" {
		t.Errorf("update mismatch (-want +got):\n%s", diff)
	}
	d, err := os.ReadFile(up.Archive)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != string(archive) {
		t.Errorf("archive content %q", d)
	}

	if _, err := c.Download(ctx, up.Release); err != nil {
		t.Fatal(err)
	}
	if *downloads != 1 {
		t.Errorf("expected 1 download, got %d", *downloads)
	}

	up, err = c.Check(ctx, "wolves", "1.2.0")
	if err != nil {
		t.Fatal(err)
	}
	if up != nil {
		t.Errorf("expected no update, got %+v", up)
	}
}

func TestDownloadRejectsScheme(t *testing.T) {
	c := NewClient("", t.TempDir(), nil)
	_, err := c.Download(context.Background(), Release{ModVersion: "1", MainFile: "file:///etc/passwd", FileName: "x.zip"})
	if err == nil {
		t.Fatal("expected error")
	}
}
