package openwork

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseFixture(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const loginPageFixture = `
<html><body>
<form action="/login_check" method="post">
	<input type="text" name="_username"/>
	<input type="password" name="_password"/>
	<input type="hidden" name="_csrf_token" value="token-123"/>
</form>
</body></html>`

func TestParserLoginToken(t *testing.T) {
	parser := MarkupParser{}

	doc := parseFixture(t, loginPageFixture)
	require.Equal(t, "token-123", parser.LoginToken(doc))

	doc = parseFixture(t, `<html><body><form></form></body></html>`)
	require.Equal(t, "", parser.LoginToken(doc))

	doc = parseFixture(t, `<html><body><input name="_csrf_token" value=""/></body></html>`)
	require.Equal(t, "", parser.LoginToken(doc))
}

func TestParserLoggedIn(t *testing.T) {
	parser := MarkupParser{}

	doc := parseFixture(t, `<html><body><p>ようこそ、テストさん</p></body></html>`)
	require.True(t, parser.LoggedIn(doc))

	doc = parseFixture(t, `<html><body><p>ログインしてください</p></body></html>`)
	require.False(t, parser.LoggedIn(doc))
}

const companyPageFixture = `
<html><body>
<div id="mainTitle"><h2><a href="/company?m_id=12345">Acme Corp</a></h2></div>
<div id="contentsHeader_text"><div>
	<p class="mt-20 w-740 madblack break-all">A manufacturer of everything.</p>
</div></div>
</body></html>`

func TestParserCompanyFields(t *testing.T) {
	parser := MarkupParser{}

	doc := parseFixture(t, companyPageFixture)
	require.Equal(t, "Acme Corp", parser.CompanyName(doc))
	require.Equal(t, "A manufacturer of everything.", parser.CompanyIntro(doc))

	doc = parseFixture(t, `<html><body><p>not found</p></body></html>`)
	require.Equal(t, "", parser.CompanyName(doc))
	require.Equal(t, "", parser.CompanyIntro(doc))
}

func reviewArticle(date, content string) string {
	var b strings.Builder
	b.WriteString(`<article class="article">`)
	b.WriteString(`<div class="article_header-white"><p>`)
	if date != "" {
		b.WriteString(`<time datetime="` + date + `">` + date + `</time>`)
	}
	b.WriteString(`</p></div>`)
	b.WriteString(`<div class="article_body"><dl><dt>回答</dt>`)
	b.WriteString(`<dd class="article_answer">` + content + `</dd></dl></div>`)
	b.WriteString(`</article>`)
	return b.String()
}

func listingPage(articles ...string) string {
	return `<html><body><div id="anchor01">` +
		strings.Join(articles, "\n") +
		`</div></body></html>`
}

func TestParserReviewItems(t *testing.T) {
	parser := MarkupParser{}

	doc := parseFixture(t, listingPage(
		reviewArticle("2025-04-01", "good place"),
		reviewArticle("", "undated review"),
	))
	items, ok := parser.ReviewItems(doc)
	require.True(t, ok)
	require.Equal(t, []ReviewItem{
		{Date: "2025-04-01", Content: "good place"},
		{Date: "", Content: "undated review"},
	}, items)
}

func TestParserReviewItemsMissingContainer(t *testing.T) {
	parser := MarkupParser{}

	doc := parseFixture(t, `<html><body><p>no listing here</p></body></html>`)
	items, ok := parser.ReviewItems(doc)
	require.False(t, ok)
	require.Empty(t, items)
}

func TestParserReviewItemsEmptyContainer(t *testing.T) {
	parser := MarkupParser{}

	doc := parseFixture(t, listingPage())
	items, ok := parser.ReviewItems(doc)
	require.True(t, ok)
	require.Empty(t, items)
}
