package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestSelectorCSS(t *testing.T) {
	table := []struct {
		selector Selector
		expected string
	}{
		{selector: Selector{Tag: "h5", Class: "h5 h5_bold"}, expected: "h5.h5.h5_bold"},
		{selector: Selector{Tag: "b"}, expected: "b"},
		{selector: Selector{Class: "u"}, expected: ".u"},
		{selector: Selector{Tag: "table", Class: " people  grid "}, expected: "table.people.grid"},
		{selector: Selector{}, expected: "*"},
	}

	for _, row := range table {
		require.Equal(t, row.expected, row.selector.CSS())
	}
}

func TestFirstAndAll(t *testing.T) {
	doc := parse(t, `
		<ul>
			<li class="item first">one</li>
			<li class="item">two</li>
			<li class="other">three</li>
		</ul>`)

	first, ok := First(doc.Selection, Selector{Tag: "li", Class: "item"})
	require.True(t, ok)
	require.Equal(t, "one", Text(first))

	all := All(doc.Selection, Selector{Tag: "li", Class: "item"})
	require.Len(t, all, 2)
	require.Equal(t, "two", Text(all[1]))

	_, ok = First(doc.Selection, Selector{Tag: "div", Class: "item"})
	require.False(t, ok)
	require.Empty(t, All(doc.Selection, Selector{Tag: "div"}))
}

func TestText(t *testing.T) {
	doc := parse(t, "<p>  Иванов \n\t Иван <b>Иванович</b>\u200b </p>")
	require.Equal(t, "Иванов Иван Иванович", Text(doc.Find("p")))
	require.Equal(t, "", Text(doc.Find("span")))
}

func TestGetAnchor(t *testing.T) {
	doc := parse(t, `<a href=" https://dnevnik.ru/user/1 ">Петров</a><a class="u">Сидоров</a>`)

	anchors := []Anchor{}
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		anchors = append(anchors, GetAnchor(s))
	})

	require.Equal(t, []Anchor{
		{Name: "Петров", Href: "https://dnevnik.ru/user/1"},
		{Name: "Сидоров", Href: ""},
	}, anchors)
}
