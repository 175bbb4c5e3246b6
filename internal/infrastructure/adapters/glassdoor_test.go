package adapters

import (
	"context"
	"testing"

	"JobScanner/internal/scraper"
)

const glassdoorPage = `
<html><body>
  <li data-test="jobListing">
    <div data-test="job-title"><a href="https://www.glassdoor.com/partner/job.htm?jobListingId=98765">Product Manager</a></div>
    <div data-test="employer-name">Gamma Inc</div>
    <div data-test="job-location">Nakuru</div>
    <div data-test="detailSalary">KES 150,000</div>
    <div data-test="job-desc">Own the roadmap. Agile experience required.</div>
  </li>
</body></html>`

func TestGlassdoorFetchListings(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{pages: []fakePage{{match: "p=1", html: glassdoorPage}}}
	adapter := NewGlassdoor(testDeps(t, sess))

	listings := adapter.FetchListings(context.Background(), scraper.Request{
		SearchTerm: "product manager",
		MaxPages:   1,
	})

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}

	got := listings[0]
	if got.Title != "Product Manager" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Company != "Gamma Inc" {
		t.Errorf("company = %q", got.Company)
	}
	if got.ExternalID != "98765" {
		t.Errorf("externalID = %q", got.ExternalID)
	}
	if got.SalaryRaw != "KES 150,000" {
		t.Errorf("salaryRaw = %q", got.SalaryRaw)
	}
	if got.SourcePlatform != "glassdoor" {
		t.Errorf("platform = %q", got.SourcePlatform)
	}
}
