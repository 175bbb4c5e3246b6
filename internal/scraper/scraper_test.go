package scraper

import (
	"context"
	"testing"
	"time"

	"JobScanner/internal/domain"
	"JobScanner/internal/ports"
)

type fakeElement struct {
	text  string
	attrs map[string]string
	kids  map[string]*fakeElement
}

func (f *fakeElement) Text() string { return f.text }

func (f *fakeElement) Attribute(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

func (f *fakeElement) Find(selector string) (ports.Element, bool) {
	kid, ok := f.kids[selector]
	if !ok {
		return nil, false
	}
	return kid, true
}

func (f *fakeElement) FindAll(selector string) []ports.Element {
	if kid, ok := f.kids[selector]; ok {
		return []ports.Element{kid}
	}
	return nil
}

func TestChainText(t *testing.T) {
	t.Parallel()

	root := &fakeElement{kids: map[string]*fakeElement{
		".empty":    {text: "   "},
		".fallback": {text: "Software Engineer"},
	}}

	chain := Chain{".missing", ".empty", ".fallback"}
	if got := chain.Text(root); got != "Software Engineer" {
		t.Errorf("chain.Text = %q, want first non-empty match", got)
	}

	if got := (Chain{".missing", ".empty"}).Text(root); got != "" {
		t.Errorf("exhausted chain = %q, want empty", got)
	}
}

func TestChainAttribute(t *testing.T) {
	t.Parallel()

	root := &fakeElement{kids: map[string]*fakeElement{
		".bare": {attrs: map[string]string{"href": ""}},
		".link": {attrs: map[string]string{"href": "https://example.org/job/1"}},
	}}

	chain := Chain{".bare", ".link"}
	if got := chain.Attribute(root, "href"); got != "https://example.org/job/1" {
		t.Errorf("chain.Attribute = %q, want the non-empty href", got)
	}
}

type stubAdapter struct {
	name      string
	paginated bool
}

func (s stubAdapter) Name() string    { return s.name }
func (s stubAdapter) Paginated() bool { return s.paginated }
func (s stubAdapter) FetchListings(context.Context, Request) []domain.RawListing {
	return nil
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubAdapter{name: "linkedin", paginated: true})
	reg.Register(stubAdapter{name: "career_page"})

	if _, err := reg.Resolve("linkedin"); err != nil {
		t.Fatalf("resolve linkedin: %v", err)
	}
	if _, err := reg.Resolve("monster"); err == nil {
		t.Fatal("expected error for unregistered adapter")
	}

	all := reg.All()
	if len(all) != 2 || all[0].Name() != "linkedin" || all[1].Name() != "career_page" {
		t.Fatalf("All() order broken: %v", all)
	}
}

func TestPacingSleepCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	Pacing{Min: time.Minute, Max: 2 * time.Minute}.Sleep(ctx)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancelled pacing slept %v", elapsed)
	}
}

func TestPacingSleepZero(t *testing.T) {
	t.Parallel()

	start := time.Now()
	Pacing{}.Sleep(context.Background())
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("zero pacing slept %v", elapsed)
	}
}
