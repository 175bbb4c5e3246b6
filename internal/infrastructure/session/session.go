// Package session implements the browsing capability over plain HTTP and
// goquery. A session holds the most recently navigated document; element
// location runs against that snapshot. Re-navigation replaces it.
package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"JobScanner/internal/ports"
)

const defaultTimeout = 20 * time.Second

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36",
}

// Factory opens HTTP-backed sessions sharing one client.
type Factory struct {
	client *http.Client
}

var _ ports.SessionFactory = (*Factory)(nil)

// NewFactory wires an HTTP client; a nil client gets sane timeouts.
func NewFactory(client *http.Client) *Factory {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Factory{client: client}
}

// Open creates a fresh session with its own User-Agent.
func (f *Factory) Open(_ context.Context) (ports.Session, error) {
	return &httpSession{
		client:    f.client,
		userAgent: userAgents[int(time.Now().UnixNano())%len(userAgents)],
	}, nil
}

type httpSession struct {
	client     *http.Client
	userAgent  string
	currentURL string
	doc        *goquery.Document
}

var _ ports.Session = (*httpSession)(nil)

// Navigate fetches the URL and replaces the current document.
func (s *httpSession) Navigate(ctx context.Context, pageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}

	s.currentURL = pageURL
	s.doc = doc
	return nil
}

func (s *httpSession) CurrentURL() string {
	return s.currentURL
}

// WaitUntilPresent polls for the selector, re-fetching the current page
// between attempts, until found or the timeout elapses.
func (s *httpSession) WaitUntilPresent(ctx context.Context, selector string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if s.doc != nil && s.doc.Find(selector).Length() > 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for %q on %s", selector, s.currentURL)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
		if s.currentURL != "" {
			if err := s.Navigate(ctx, s.currentURL); err != nil {
				return fmt.Errorf("refetch while waiting: %w", err)
			}
		}
	}
}

func (s *httpSession) Find(selector string) (ports.Element, bool) {
	if s.doc == nil {
		return nil, false
	}
	sel := s.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return element{sel}, true
}

func (s *httpSession) FindAll(selector string) []ports.Element {
	if s.doc == nil {
		return nil
	}
	var elements []ports.Element
	s.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, element{sel})
	})
	return elements
}

func (s *httpSession) Close() error {
	s.doc = nil
	s.currentURL = ""
	return nil
}

type element struct {
	sel *goquery.Selection
}

var _ ports.Element = element{}

func (e element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e element) Attribute(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e element) Find(selector string) (ports.Element, bool) {
	sel := e.sel.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return element{sel}, true
}

func (e element) FindAll(selector string) []ports.Element {
	var elements []ports.Element
	e.sel.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, element{sel})
	})
	return elements
}
