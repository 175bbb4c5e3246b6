package adapters

import (
	"context"
	"fmt"
	"net/url"

	"JobScanner/internal/domain"
	"JobScanner/internal/ports"
	"JobScanner/internal/scraper"
)

const indeedBaseURL = "https://ke.indeed.com/jobs"

var (
	indeedTitle    = scraper.Chain{"[data-testid='job-title'] a", "h2.jobTitle a", "h2 a"}
	indeedCompany  = scraper.Chain{"[data-testid='company-name']", ".companyName"}
	indeedLocation = scraper.Chain{"[data-testid='job-location']", ".companyLocation"}
	indeedSalary   = scraper.Chain{"[data-testid='attribute_snippet_testid']", ".salary-snippet"}
	indeedSnippet  = scraper.Chain{"[data-testid='job-snippet']", ".job-snippet"}
)

// Indeed extracts listings from paginated search results. The card carries
// everything needed, including a salary snippet; no detail navigation.
type Indeed struct {
	deps
}

var _ scraper.Adapter = (*Indeed)(nil)

// NewIndeed constructs the adapter.
func NewIndeed(d Deps) *Indeed {
	return &Indeed{deps: d.internal("adapter.indeed")}
}

func (a *Indeed) Name() string    { return "indeed" }
func (a *Indeed) Paginated() bool { return true }

// FetchListings walks pages 0..MaxPages-1, ten results per page.
func (a *Indeed) FetchListings(ctx context.Context, req scraper.Request) []domain.RawListing {
	var listings []domain.RawListing

	sess, err := a.sessions.Open(ctx)
	if err != nil {
		a.logger.Error("open session", "error", err)
		return listings
	}
	defer sess.Close()

	for page := 0; page < req.MaxPages; page++ {
		pageURL := fmt.Sprintf("%s?q=%s&l=%s&start=%d",
			indeedBaseURL, url.QueryEscape(req.SearchTerm), url.QueryEscape(req.Location), page*10)
		a.logger.Info("scraping page", "page", page+1, "url", pageURL)

		if err := sess.Navigate(ctx, pageURL); err != nil {
			a.logger.Error("navigate search page", "page", page+1, "error", err)
			return listings
		}
		a.pacing.Sleep(ctx)

		if err := sess.WaitUntilPresent(ctx, "[data-jk]", a.pageTimeout); err != nil {
			a.logger.Warn("results never ready, skipping page", "page", page+1, "error", err)
			continue
		}

		for _, card := range sess.FindAll("[data-jk]") {
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

func (a *Indeed) parseCard(card ports.Element) (domain.RawListing, bool) {
	title := indeedTitle.Text(card)
	if !validTitle(title) {
		return domain.RawListing{}, false
	}

	externalID, _ := card.Attribute("data-jk")

	company := indeedCompany.Text(card)
	if company == "" {
		company = "Unknown"
	}
	location := indeedLocation.Text(card)
	if location == "" {
		location = "Kenya"
	}

	return domain.RawListing{
		Title:          title,
		Company:        company,
		Location:       location,
		Description:    indeedSnippet.Text(card),
		SourcePlatform: a.Name(),
		SourceURL:      fmt.Sprintf("https://ke.indeed.com/viewjob?jk=%s", externalID),
		ExternalID:     externalID,
		SalaryRaw:      indeedSalary.Text(card),
	}, true
}
