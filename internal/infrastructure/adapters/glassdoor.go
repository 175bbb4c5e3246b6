package adapters

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"JobScanner/internal/domain"
	"JobScanner/internal/ports"
	"JobScanner/internal/scraper"
)

const glassdoorBaseURL = "https://www.glassdoor.com/Job/jobs.htm"

var glassdoorJobID = regexp.MustCompile(`jobListingId=(\d+)`)

var (
	glassdoorCards    = scraper.Chain{"[data-test='jobListing']", ".jobCard"}
	glassdoorTitle    = scraper.Chain{"[data-test='job-title']", ".jobTitle"}
	glassdoorEmployer = scraper.Chain{"[data-test='employer-name']", ".employerName"}
	glassdoorLocation = scraper.Chain{"[data-test='job-location']", ".location"}
	glassdoorSalary   = scraper.Chain{"[data-test='detailSalary']", ".salaryEstimate"}
	glassdoorDesc     = scraper.Chain{"[data-test='job-desc']", ".jobDescription"}
	glassdoorLink     = scraper.Chain{"[data-test='job-title'] a", "a"}
)

// Glassdoor extracts listings from paginated search results; pages are
// one-indexed in the query string.
type Glassdoor struct {
	deps
}

var _ scraper.Adapter = (*Glassdoor)(nil)

// NewGlassdoor constructs the adapter.
func NewGlassdoor(d Deps) *Glassdoor {
	return &Glassdoor{deps: d.internal("adapter.glassdoor")}
}

func (a *Glassdoor) Name() string    { return "glassdoor" }
func (a *Glassdoor) Paginated() bool { return true }

// FetchListings walks pages 1..MaxPages of the search results.
func (a *Glassdoor) FetchListings(ctx context.Context, req scraper.Request) []domain.RawListing {
	var listings []domain.RawListing

	sess, err := a.sessions.Open(ctx)
	if err != nil {
		a.logger.Error("open session", "error", err)
		return listings
	}
	defer sess.Close()

	for page := 0; page < req.MaxPages; page++ {
		pageURL := fmt.Sprintf("%s?sc.keyword=%s&locT=C&locId=115&p=%d",
			glassdoorBaseURL, url.QueryEscape(req.SearchTerm), page+1)
		a.logger.Info("scraping page", "page", page+1, "url", pageURL)

		if err := sess.Navigate(ctx, pageURL); err != nil {
			a.logger.Error("navigate search page", "page", page+1, "error", err)
			return listings
		}
		a.pacing.Sleep(ctx)

		if err := sess.WaitUntilPresent(ctx, "[data-test='jobListing']", a.pageTimeout); err != nil {
			a.logger.Warn("results never ready, skipping page", "page", page+1, "error", err)
			continue
		}

		for _, card := range scraper.FindAllChain(sess, glassdoorCards) {
			listing, ok := a.parseCard(card)
			if !ok {
				continue
			}
			listings = append(listings, listing)
		}

		a.pacing.Sleep(ctx)
		if ctx.Err() != nil {
			return listings
		}
	}

	return listings
}

func (a *Glassdoor) parseCard(card ports.Element) (domain.RawListing, bool) {
	title := glassdoorTitle.Text(card)
	if !validTitle(title) {
		return domain.RawListing{}, false
	}

	company := glassdoorEmployer.Text(card)
	if company == "" {
		company = "Unknown"
	}
	location := glassdoorLocation.Text(card)
	if location == "" {
		location = "Kenya"
	}

	jobURL := glassdoorLink.Attribute(card, "href")

	return domain.RawListing{
		Title:          title,
		Company:        company,
		Location:       location,
		Description:    glassdoorDesc.Text(card),
		SourcePlatform: a.Name(),
		SourceURL:      jobURL,
		ExternalID:     firstGroup(glassdoorJobID, jobURL),
		SalaryRaw:      glassdoorSalary.Text(card),
	}, true
}
