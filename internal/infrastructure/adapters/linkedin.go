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

const linkedinBaseURL = "https://www.linkedin.com/jobs/search"

var linkedinJobID = regexp.MustCompile(`/jobs/view/(\d+)`)

var (
	linkedinCards    = scraper.Chain{".base-card.relative", ".base-card", ".job-search-card"}
	linkedinTitle    = scraper.Chain{".base-search-card__title", "h3"}
	linkedinCompany  = scraper.Chain{".base-search-card__subtitle", "h4"}
	linkedinLocation = scraper.Chain{".job-search-card__location"}
	linkedinLink     = scraper.Chain{".base-card__full-link", "a"}
	linkedinPosted   = scraper.Chain{".job-search-card__listdate", "time"}
	linkedinDesc     = scraper.Chain{".show-more-less-html__markup", ".description__text"}
	linkedinCriteria = scraper.Chain{".description__job-criteria-list", ".job-criteria__list"}
)

// LinkedIn extracts listings from paginated search results. Each card
// needs a secondary navigation to its detail page for the full
// description; the original search page is restored afterwards so the
// remaining cards keep extracting.
type LinkedIn struct {
	deps
}

var _ scraper.Adapter = (*LinkedIn)(nil)

// NewLinkedIn constructs the adapter.
func NewLinkedIn(d Deps) *LinkedIn {
	return &LinkedIn{deps: d.internal("adapter.linkedin")}
}

func (a *LinkedIn) Name() string    { return "linkedin" }
func (a *LinkedIn) Paginated() bool { return true }

// FetchListings walks pages 0..MaxPages-1 of the search results.
func (a *LinkedIn) FetchListings(ctx context.Context, req scraper.Request) []domain.RawListing {
	var listings []domain.RawListing

	sess, err := a.sessions.Open(ctx)
	if err != nil {
		a.logger.Error("open session", "error", err)
		return listings
	}
	defer sess.Close()

	searchURL := fmt.Sprintf("%s?keywords=%s&location=%s&f_E=1,2,3,4&f_JT=F,P,C,T",
		linkedinBaseURL, url.QueryEscape(req.SearchTerm), url.QueryEscape(req.Location))

	for page := 0; page < req.MaxPages; page++ {
		pageURL := fmt.Sprintf("%s&start=%d", searchURL, page*25)
		a.logger.Info("scraping page", "page", page+1, "url", pageURL)

		if err := sess.Navigate(ctx, pageURL); err != nil {
			a.logger.Error("navigate search page", "page", page+1, "error", err)
			return listings
		}
		a.pacing.Sleep(ctx)

		if err := sess.WaitUntilPresent(ctx, ".jobs-search__results-list", a.pageTimeout); err != nil {
			a.logger.Warn("results never ready, skipping page", "page", page+1, "error", err)
			continue
		}

		for _, card := range scraper.FindAllChain(sess, linkedinCards) {
			listing, ok := a.parseCard(ctx, sess, card)
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

func (a *LinkedIn) parseCard(ctx context.Context, sess ports.Session, card ports.Element) (domain.RawListing, bool) {
	title := linkedinTitle.Text(card)
	if !validTitle(title) {
		return domain.RawListing{}, false
	}

	jobURL := linkedinLink.Attribute(card, "href")
	listing := domain.RawListing{
		Title:          title,
		Company:        linkedinCompany.Text(card),
		Location:       linkedinLocation.Text(card),
		SourcePlatform: a.Name(),
		SourceURL:      jobURL,
		ExternalID:     firstGroup(linkedinJobID, jobURL),
		PostedRaw:      linkedinPosted.Attribute(card, "datetime"),
	}

	if jobURL != "" {
		description, requirements, err := a.fetchDetails(ctx, sess, jobURL)
		if err != nil {
			a.logger.Warn("detail page failed, keeping card fields", "url", jobURL, "error", err)
		} else {
			listing.Description = description
			listing.Requirements = requirements
		}
	}

	return listing, true
}

// fetchDetails visits the job detail page and restores the search page
// before returning so sibling cards keep extracting from it.
func (a *LinkedIn) fetchDetails(ctx context.Context, sess ports.Session, jobURL string) (description, requirements string, err error) {
	returnURL := sess.CurrentURL()
	defer func() {
		if returnURL == "" {
			return
		}
		if backErr := sess.Navigate(ctx, returnURL); backErr != nil && err == nil {
			err = fmt.Errorf("restore search page: %w", backErr)
		}
	}()

	if err := sess.Navigate(ctx, jobURL); err != nil {
		return "", "", fmt.Errorf("navigate detail: %w", err)
	}
	a.pacing.Sleep(ctx)

	if err := sess.WaitUntilPresent(ctx, ".show-more-less-html__markup", a.pageTimeout); err != nil {
		return "", "", fmt.Errorf("detail never ready: %w", err)
	}

	root, ok := sess.Find("body")
	if !ok {
		return "", "", fmt.Errorf("detail page has no body")
	}

	return linkedinDesc.Text(root), linkedinCriteria.Text(root), nil
}
