package adapters

import (
	"context"
	"strings"
	"testing"

	"JobScanner/internal/scraper"
)

const structuredCareerPage = `
<html><body>
  <div class="job-listing">
    <h3 class="job-title">Network Engineer</h3>
    <p class="description">Maintain the core network.</p>
    <a href="https://careers.example.org/network-engineer">Apply</a>
  </div>
  <div class="job-listing">
    <h3 class="job-title">HR Officer</h3>
    <p class="description">Run recruitment.</p>
  </div>
</body></html>`

const unstructuredCareerPage = `
<html><body>
  <h2>Работа с нами</h2>
  <ul>
    <li>Senior Financial Analyst - Treasury</li>
    <li>Branch Manager, Kisumu</li>
    <li>Our offices are open daily</li>
  </ul>
</body></html>`

func TestCareerPagesStructured(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{pages: []fakePage{{match: "careers.example.org", html: structuredCareerPage}}}
	adapter := NewCareerPages(testDeps(t, sess), []CareerPage{
		{Organization: "Example Org", URL: "https://careers.example.org/jobs"},
	})

	listings := adapter.FetchListings(context.Background(), scraper.Request{})
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Title != "Network Engineer" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Company != "Example Org" {
		t.Errorf("company = %q", first.Company)
	}
	if first.SourceURL != "https://careers.example.org/network-engineer" {
		t.Errorf("sourceURL = %q", first.SourceURL)
	}
	if first.SourcePlatform != "career_page" {
		t.Errorf("platform = %q", first.SourcePlatform)
	}
	if !strings.HasPrefix(first.ExternalID, "example_org_") {
		t.Errorf("externalID = %q, want example_org_ prefix", first.ExternalID)
	}

	// The second listing has no link, so the career page URL is kept.
	if listings[1].SourceURL != "https://careers.example.org/jobs" {
		t.Errorf("fallback sourceURL = %q", listings[1].SourceURL)
	}
}

func TestCareerPagesContentScanFallback(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{pages: []fakePage{{match: "unstructured", html: unstructuredCareerPage}}}
	adapter := NewCareerPages(testDeps(t, sess), []CareerPage{
		{Organization: "Plain Co", URL: "https://unstructured.example.org/careers"},
	})

	listings := adapter.FetchListings(context.Background(), scraper.Request{})
	if len(listings) != 2 {
		t.Fatalf("expected 2 keyword-matched listings, got %d: %+v", len(listings), listings)
	}
	for _, l := range listings {
		if !strings.Contains(l.Title, "Analyst") && !strings.Contains(l.Title, "Manager") {
			t.Errorf("unexpected candidate %q", l.Title)
		}
	}
}

func TestCareerPagesSkipsFailingOrganization(t *testing.T) {
	t.Parallel()

	// The first registry entry never resolves; the second must still be
	// scraped.
	sess := &fakeSession{pages: []fakePage{{match: "careers.example.org", html: structuredCareerPage}}}
	adapter := NewCareerPages(testDeps(t, sess), []CareerPage{
		{Organization: "Gone Corp", URL: "https://gone.example.org/careers"},
		{Organization: "Example Org", URL: "https://careers.example.org/jobs"},
	})

	listings := adapter.FetchListings(context.Background(), scraper.Request{})
	if len(listings) != 2 {
		t.Fatalf("expected listings from the healthy organization, got %d", len(listings))
	}
	if listings[0].Company != "Example Org" {
		t.Errorf("company = %q", listings[0].Company)
	}
}

func TestSyntheticIDStable(t *testing.T) {
	t.Parallel()

	a := syntheticID("Equity Bank", "Branch Manager")
	b := syntheticID("Equity Bank", "Branch Manager")
	if a != b {
		t.Fatalf("synthetic ID not stable: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "equity_bank_") {
		t.Errorf("synthetic ID = %q", a)
	}
}
