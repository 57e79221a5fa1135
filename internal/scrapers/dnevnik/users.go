package dnevnik

import (
	"dnevnik-client/pkg/htmlutil"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func newDocument(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("dnevnik: parse html: %w", err)
	}
	return doc, nil
}

var digitRun = regexp.MustCompile(`\d+`)

// UserListParser extracts people from roster, search and upcoming birthday pages.
type UserListParser struct {
	selectors UserListSelectorTable
}

func NewUserListParser(selectors UserListSelectorTable) UserListParser {
	return UserListParser{selectors: selectors}
}

// ParseUserPage parses a people listing with the default selectors.
func ParseUserPage(page string) (UserPage, error) {
	return NewUserListParser(UserListSelectors).Parse(page)
}

func (p UserListParser) Parse(page string) (UserPage, error) {
	doc, err := newDocument(page)
	if err != nil {
		return UserPage{}, err
	}
	return p.ParseDocument(doc)
}

// ParseDocument returns an empty page when the "found" counter is missing, that
// is how the portal renders a search without results or a page past the end.
func (p UserListParser) ParseDocument(doc *goquery.Document) (UserPage, error) {
	empty := UserPage{Count: 0, Items: []UserRecord{}}

	counter, ok := htmlutil.First(doc.Selection, p.selectors.Count)
	if !ok {
		return empty, nil
	}
	digits := digitRun.FindString(htmlutil.Text(counter))
	if digits == "" {
		return empty, nil
	}
	count, err := strconv.Atoi(digits)
	if err != nil {
		return UserPage{}, malformed(PageUsers, "count", "parse %q: %s", digits, err)
	}

	table, ok := htmlutil.First(doc.Selection, p.selectors.Table)
	if !ok {
		return UserPage{}, malformed(PageUsers, "table", "%s not found", p.selectors.Table)
	}

	items := []UserRecord{}
	for i, row := range htmlutil.All(table, p.selectors.Row) {
		user, ok := htmlutil.First(row, p.selectors.User)
		if !ok {
			return UserPage{}, malformed(PageUsers, "row", "row %d: %s not found", i, p.selectors.User)
		}
		anchor := htmlutil.GetAnchor(user)
		items = append(items, UserRecord{
			DisplayName: anchor.Name,
			ProfileURL:  anchor.Href,
		})
	}

	return UserPage{Count: count, Items: items}, nil
}
