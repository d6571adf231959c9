package promoforge

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/cognicore/promoforge/pkg/promoforge/config"
	"github.com/cognicore/promoforge/pkg/promoforge/store/memstore"
)

type stubFetcher struct {
	pages map[string]string
}

func (s *stubFetcher) Get(ctx context.Context, url string) (string, error) {
	page, ok := s.pages[url]
	if !ok {
		return "", errors.New("stub: no such page")
	}
	return page, nil
}

func newTestForge(pages map[string]string) *Forge {
	cfg := config.Default()
	cfg.Delay = 0 // no politeness delay in tests

	return New(Options{
		Store:   memstore.New(),
		Fetcher: &stubFetcher{pages: pages},
		Config:  &cfg,
		Rand:    rand.New(rand.NewSource(1)),
	})
}

const dealsPage = `<html><body>
	<p>Use coupon SAVE20-NOW today</p>
	<div class="promo">WELCOME10</div>
	<input value="FALL2024">
</body></html>`

func TestHarvestURLs(t *testing.T) {
	f := newTestForge(map[string]string{"https://example.com/deals": dealsPage})
	defer f.Close()

	found, err := f.HarvestURLs(context.Background(), []string{"https://example.com/deals"})
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string]bool)
	for _, r := range found {
		got[r.Code] = true
		if r.SourceURL != "https://example.com/deals" {
			t.Errorf("wrong provenance: %+v", r)
		}
	}
	for _, want := range []string{"SAVE20-NOW", "WELCOME10", "FALL2024"} {
		if !got[want] {
			t.Errorf("harvest missing %q, got %v", want, got)
		}
	}
}

func TestHarvestURLsPartialFailure(t *testing.T) {
	f := newTestForge(map[string]string{"https://ok.example.com": dealsPage})
	defer f.Close()

	found, err := f.HarvestURLs(context.Background(), []string{
		"https://down.example.com",
		"https://ok.example.com",
	})

	if err == nil {
		t.Error("expected joined error for failing URL")
	}
	if len(found) == 0 {
		t.Error("good URL should still be harvested")
	}
}

func TestHarvestURLsCancelled(t *testing.T) {
	cfg := config.Default() // keeps the 1s delay so cancellation has a window
	f := New(Options{
		Store:   memstore.New(),
		Fetcher: &stubFetcher{pages: map[string]string{"a": dealsPage, "b": dealsPage}},
		Config:  &cfg,
		Rand:    rand.New(rand.NewSource(1)),
	})
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.HarvestURLs(ctx, []string{"a", "b"}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestInferTemplatesOverHarvest(t *testing.T) {
	f := newTestForge(map[string]string{"https://example.com": `
		<div class="coupon">AB12</div>
		<div class="coupon">CD34</div>
		<div class="coupon">EF56</div>
	`})
	defer f.Close()

	ctx := context.Background()
	if _, err := f.HarvestURLs(ctx, []string{"https://example.com"}); err != nil {
		t.Fatal(err)
	}

	res, err := f.InferTemplates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.TopTemplate() != "LLDD" {
		t.Errorf("top template = %q, want LLDD", res.TopTemplate())
	}
}

func TestInferTemplatesEmptyStore(t *testing.T) {
	f := newTestForge(nil)
	defer f.Close()

	res, err := f.InferTemplates(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Templates) != 0 {
		t.Errorf("empty store should yield empty rankings, got %+v", res)
	}
}

func TestGenerateCodesPersistsProvenance(t *testing.T) {
	f := newTestForge(nil)
	defer f.Close()

	ctx := context.Background()
	recs, err := f.GenerateCodes(ctx, "LLDD", 5, "GO", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 5 {
		t.Fatalf("expected 5 records, got %d", len(recs))
	}

	for _, r := range recs {
		if !strings.HasSuffix(r.Code, f.Marker()) {
			t.Errorf("code %q missing marker %q", r.Code, f.Marker())
		}
		if !strings.HasPrefix(r.Code, "GO") {
			t.Errorf("code %q missing prefix", r.Code)
		}
		if r.Template != "LLDD" || r.Marker != f.Marker() {
			t.Errorf("provenance wrong: %+v", r)
		}
		if r.GeneratedAt.IsZero() {
			t.Error("generation timestamp missing")
		}
	}
}

func TestGenerateCodesDefaultCount(t *testing.T) {
	f := newTestForge(nil)
	defer f.Close()

	recs, err := f.GenerateCodes(context.Background(), "LL", 0, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != config.Default().GenerateCount {
		t.Errorf("expected configured default count, got %d", len(recs))
	}
}

func TestHarvestThenInferIdempotent(t *testing.T) {
	pages := map[string]string{"https://example.com": dealsPage}

	run := func() []string {
		f := newTestForge(pages)
		defer f.Close()
		ctx := context.Background()
		if _, err := f.HarvestURLs(ctx, []string{"https://example.com"}); err != nil {
			t.Fatal(err)
		}
		res, err := f.InferTemplates(ctx)
		if err != nil {
			t.Fatal(err)
		}
		var out []string
		for _, e := range res.Templates {
			out = append(out, e.Value)
		}
		return out
	}

	first := strings.Join(run(), "|")
	second := strings.Join(run(), "|")
	if first != second {
		t.Errorf("repeated runs differ: %q vs %q", first, second)
	}
}
