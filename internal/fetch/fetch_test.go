package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "promoforge-bot") {
			t.Errorf("unexpected User-Agent %q", ua)
		}
		w.Write([]byte("<html>SAVE20</html>"))
	}))
	defer srv.Close()

	c := New(0, "")
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "SAVE20") {
		t.Errorf("body = %q, want SAVE20 inside", body)
	}
}

func TestGetNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(0, "")
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Error("expected error on 404 response")
	}
}

func TestGetContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(0, "")
	if _, err := c.Get(ctx, srv.URL); err == nil {
		t.Error("expected error on cancelled context")
	}
}
