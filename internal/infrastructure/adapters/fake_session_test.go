package adapters

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"JobScanner/internal/ports"
	"JobScanner/internal/scraper"
)

// fakePage maps a URL fragment to the HTML served for it.
type fakePage struct {
	match string
	html  string
}

// fakeSession resolves navigations against canned pages, matching the
// first fragment contained in the requested URL. Unmatched URLs fail,
// which doubles as the navigation-failure fixture.
type fakeSession struct {
	pages      []fakePage
	currentURL string
	doc        *goquery.Document
	visited    []string
	closed     bool
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	for _, page := range s.pages {
		if strings.Contains(url, page.match) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.html))
			if err != nil {
				return err
			}
			s.currentURL = url
			s.doc = doc
			s.visited = append(s.visited, url)
			return nil
		}
	}
	return fmt.Errorf("no page for %s", url)
}

func (s *fakeSession) CurrentURL() string { return s.currentURL }

func (s *fakeSession) WaitUntilPresent(_ context.Context, selector string, _ time.Duration) error {
	if s.doc != nil && s.doc.Find(selector).Length() > 0 {
		return nil
	}
	return fmt.Errorf("timeout waiting for %q", selector)
}

func (s *fakeSession) Find(selector string) (ports.Element, bool) {
	if s.doc == nil {
		return nil, false
	}
	sel := s.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return fakeElement{sel}, true
}

func (s *fakeSession) FindAll(selector string) []ports.Element {
	if s.doc == nil {
		return nil
	}
	var out []ports.Element
	s.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, fakeElement{sel})
	})
	return out
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeElement struct {
	sel *goquery.Selection
}

func (e fakeElement) Text() string { return strings.TrimSpace(e.sel.Text()) }

func (e fakeElement) Attribute(name string) (string, bool) { return e.sel.Attr(name) }

func (e fakeElement) Find(selector string) (ports.Element, bool) {
	sel := e.sel.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return fakeElement{sel}, true
}

func (e fakeElement) FindAll(selector string) []ports.Element {
	var out []ports.Element
	e.sel.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, fakeElement{sel})
	})
	return out
}

type fakeFactory struct {
	session *fakeSession
}

func (f *fakeFactory) Open(context.Context) (ports.Session, error) {
	return f.session, nil
}

func testDeps(t *testing.T, sess *fakeSession) Deps {
	t.Helper()
	return Deps{
		Sessions:    &fakeFactory{session: sess},
		Pacing:      scraper.Pacing{},
		PageTimeout: 100 * time.Millisecond,
	}
}
