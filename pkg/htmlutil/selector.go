package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selector describes an element by tag name and class attribute. Class may
// contain several space separated classes, an element matches when it carries
// all of them. An empty Tag matches any element.
type Selector struct {
	Tag   string
	Class string
}

// CSS renders the selector as a goquery/cascadia selector string.
func (s Selector) CSS() string {
	var out strings.Builder
	out.WriteString(s.Tag)
	for _, class := range strings.Fields(s.Class) {
		out.WriteByte('.')
		out.WriteString(class)
	}
	if out.Len() == 0 {
		return "*"
	}
	return out.String()
}

func (s Selector) String() string {
	return s.CSS()
}

// First returns the first descendant of sel matching s.
func First(sel *goquery.Selection, s Selector) (*goquery.Selection, bool) {
	found := sel.Find(s.CSS()).First()
	return found, found.Length() > 0
}

// All returns every descendant of sel matching s in document order.
func All(sel *goquery.Selection, s Selector) []*goquery.Selection {
	found := sel.Find(s.CSS())
	out := make([]*goquery.Selection, 0, found.Length())
	found.Each(func(_ int, item *goquery.Selection) {
		out = append(out, item)
	})
	return out
}
