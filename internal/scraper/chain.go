package scraper

import (
	"math/rand/v2"
	"strings"
	"time"

	"JobScanner/internal/ports"
)

// Chain is an ordered list of candidate selectors for one structural role.
// Strategies are tried in sequence; the first that yields a non-empty
// result wins. When every strategy fails the field stays empty, the
// record is still produced.
type Chain []string

// Text returns the trimmed text of the first matching element under root.
func (c Chain) Text(root ports.Element) string {
	for _, selector := range c {
		if el, ok := root.Find(selector); ok {
			if text := strings.TrimSpace(el.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// Attribute returns the named attribute of the first element that carries
// a non-empty value for it.
func (c Chain) Attribute(root ports.Element, name string) string {
	for _, selector := range c {
		if el, ok := root.Find(selector); ok {
			if value, present := el.Attribute(name); present && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// FindAllChain returns the matches of the first selector in the chain
// that yields any. Used for listing-container roles.
func FindAllChain(session ports.Session, chain Chain) []ports.Element {
	for _, selector := range chain {
		if elements := session.FindAll(selector); len(elements) > 0 {
			return elements
		}
	}
	return nil
}

func randDuration(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(max)))
}
