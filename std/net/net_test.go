package net

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "finch/") {
			t.Errorf("user agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	body, contentType, err := NewClient(5*time.Second, nil).Fetch(srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if string(body) != "<html></html>" {
		t.Errorf("body = %q", body)
	}
	if !strings.HasPrefix(contentType, "text/html") {
		t.Errorf("content type = %q", contentType)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, _, err := NewClient(5*time.Second, nil).Fetch(srv.URL + "/missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("error = %v, want HTTP 404 mention", err)
	}
}

func TestFetchTransportError(t *testing.T) {
	// Nothing listens on this address.
	_, _, err := NewClient(time.Second, nil).Fetch("http://127.0.0.1:1/nope")
	if err == nil {
		t.Fatal("expected transport error")
	}
}

func TestResolveURL(t *testing.T) {
	cases := []struct {
		base, ref, want string
	}{
		{"https://example.com/a/b.html", "style.css", "https://example.com/a/style.css"},
		{"https://example.com/a/b.html", "/root.css", "https://example.com/root.css"},
		{"https://example.com/a/", "https://other.com/x", "https://other.com/x"},
	}
	for _, c := range cases {
		if got := ResolveURL(c.base, c.ref); got != c.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", c.base, c.ref, got, c.want)
		}
	}
}

func TestIsNetworkURL(t *testing.T) {
	if !IsNetworkURL("https://example.com") || !IsNetworkURL("http://example.com") {
		t.Error("http(s) URLs should be network URLs")
	}
	if IsNetworkURL("/tmp/page.html") || IsNetworkURL("page.html") {
		t.Error("local paths are not network URLs")
	}
}
