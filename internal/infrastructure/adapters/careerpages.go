package adapters

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"

	"JobScanner/internal/domain"
	"JobScanner/internal/ports"
	"JobScanner/internal/scraper"
)

const (
	maxJobsPerOrganization = 10
	maxContentScanResults  = 5
)

// CareerPage names one organization whose career page is crawled directly.
type CareerPage struct {
	Organization string
	URL          string
}

var (
	careerListings = scraper.Chain{
		".job-listing", ".career-opportunity", ".job-opening", ".position",
		`[class*="job"]`, `[class*="career"]`, `tr[class*="job"]`, ".vacancy",
	}
	careerTitle = scraper.Chain{
		".job-title", ".title", "h3", "h4", "h5", `[class*="title"]`, "a", "strong",
	}
	careerDesc = scraper.Chain{".description", ".summary", "p"}
)

// titleKeywords drives the content-pattern fallback: when no structural
// selector matches, page text containing these role words is treated as a
// listing candidate.
var titleKeywords = []string{"Manager", "Officer", "Analyst", "Developer", "Engineer"}

// CareerPages iterates a fixed registry of organization career pages
// instead of search results. It has no pagination, caps extraction per
// organization, and assigns a synthetic external ID since career pages
// have none.
type CareerPages struct {
	deps
	pages []CareerPage
}

var _ scraper.Adapter = (*CareerPages)(nil)

// NewCareerPages constructs the adapter over the given registry.
func NewCareerPages(d Deps, pages []CareerPage) *CareerPages {
	return &CareerPages{deps: d.internal("adapter.careerpages"), pages: pages}
}

func (a *CareerPages) Name() string    { return "career_page" }
func (a *CareerPages) Paginated() bool { return false }

// FetchListings visits every registered career page; a failing
// organization is logged and skipped, never aborting the rest.
func (a *CareerPages) FetchListings(ctx context.Context, _ scraper.Request) []domain.RawListing {
	var listings []domain.RawListing

	sess, err := a.sessions.Open(ctx)
	if err != nil {
		a.logger.Error("open session", "error", err)
		return listings
	}
	defer sess.Close()

	for _, page := range a.pages {
		a.logger.Info("scraping career page", "organization", page.Organization, "url", page.URL)

		jobs := a.scrapeOrganization(ctx, sess, page)
		listings = append(listings, jobs...)

		a.pacing.Sleep(ctx)
		if ctx.Err() != nil {
			return listings
		}
	}

	return listings
}

func (a *CareerPages) scrapeOrganization(ctx context.Context, sess ports.Session, page CareerPage) []domain.RawListing {
	if err := sess.Navigate(ctx, page.URL); err != nil {
		a.logger.Error("navigate career page", "organization", page.Organization, "error", err)
		return nil
	}
	a.pacing.Sleep(ctx)

	candidates := scraper.FindAllChain(sess, careerListings)
	if len(candidates) == 0 {
		candidates = a.scanContent(sess)
	}
	if len(candidates) > maxJobsPerOrganization {
		candidates = candidates[:maxJobsPerOrganization]
	}

	var jobs []domain.RawListing
	for _, candidate := range candidates {
		listing, ok := a.parseCandidate(candidate, page)
		if !ok {
			continue
		}
		jobs = append(jobs, listing)
	}
	return jobs
}

// scanContent is the content-pattern fallback for pages with no
// recognizable listing structure: elements whose text mentions a
// job-title-like keyword become candidates.
func (a *CareerPages) scanContent(sess ports.Session) []ports.Element {
	var candidates []ports.Element
	for _, el := range sess.FindAll("h1, h2, h3, h4, h5, a, li, td, strong") {
		text := el.Text()
		for _, kw := range titleKeywords {
			if strings.Contains(text, kw) {
				candidates = append(candidates, el)
				break
			}
		}
		if len(candidates) >= maxContentScanResults {
			break
		}
	}
	return candidates
}

func (a *CareerPages) parseCandidate(el ports.Element, page CareerPage) (domain.RawListing, bool) {
	title := careerTitle.Text(el)
	if title == "" {
		title = el.Text()
		if len(title) > 100 {
			title = title[:100]
		}
		title = strings.TrimSpace(title)
	}
	if !validTitle(title) {
		return domain.RawListing{}, false
	}

	description := careerDesc.Text(el)
	if description == "" {
		description = el.Text()
	}

	jobURL := page.URL
	if href := (scraper.Chain{"a"}).Attribute(el, "href"); strings.HasPrefix(href, "http") {
		jobURL = href
	}

	return domain.RawListing{
		Title:          title,
		Company:        page.Organization,
		Location:       "Kenya",
		Description:    description,
		SourcePlatform: a.Name(),
		SourceURL:      jobURL,
		ExternalID:     syntheticID(page.Organization, title),
		SalaryRaw:      "",
	}, true
}

// syntheticID is stable for a given organization and title so repeated
// cycles dedup against the same key.
func syntheticID(organization, title string) string {
	slug := strings.ReplaceAll(strings.ToLower(organization), " ", "_")
	h := fnv.New32a()
	h.Write([]byte(title))
	return slug + "_" + strconv.Itoa(int(h.Sum32()%10000))
}
