package openwork

import (
	"strings"

	"openwork-summarizer/lib/htmlutil"
	"openwork-summarizer/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// ReviewItem is a raw review as it appears on a listing page, before
// any cutoff filtering.
type ReviewItem struct {
	Date    string
	Content string
}

// PageParser isolates every markup selector the scraper depends on.
// When the site changes its markup, only the adapter below needs to be
// touched; the session and pagination logic stay untouched.
type PageParser interface {
	// LoginToken returns the hidden anti-forgery token embedded in the
	// login form, or "" when it cannot be found.
	LoginToken(doc *goquery.Document) string
	// LoggedIn reports whether the page shows the logged-in greeting.
	LoggedIn(doc *goquery.Document) bool
	CompanyName(doc *goquery.Document) string
	CompanyIntro(doc *goquery.Document) string
	// ReviewItems returns the items of a listing page in document
	// order. ok is false when the listing container itself is absent.
	ReviewItems(doc *goquery.Document) (items []ReviewItem, ok bool)
}

// MarkupParser is the PageParser for the live site's markup.
type MarkupParser struct{}

func (MarkupParser) LoginToken(doc *goquery.Document) string {
	return doc.Find("input[name=_csrf_token]").AttrOr("value", "")
}

func (MarkupParser) LoggedIn(doc *goquery.Document) bool {
	// the landing page greets a logged-in member with "ようこそ"
	for _, node := range doc.Selection.Nodes {
		if strings.Contains(htmlutil.GetText(node), "ようこそ") {
			return true
		}
	}
	return false
}

func (MarkupParser) CompanyName(doc *goquery.Document) string {
	return textutil.CollapseWhitespace(htmlutil.Text(doc.Find("#mainTitle > h2 > a")))
}

func (MarkupParser) CompanyIntro(doc *goquery.Document) string {
	return textutil.CollapseWhitespace(htmlutil.Text(doc.Find("#contentsHeader_text > div > p.mt-20.w-740.madblack.break-all")))
}

func (MarkupParser) ReviewItems(doc *goquery.Document) ([]ReviewItem, bool) {
	container := doc.Find("#anchor01")
	if len(container.Nodes) == 0 {
		return nil, false
	}

	var items []ReviewItem
	container.Find("article.article").Each(func(_ int, article *goquery.Selection) {
		date := article.
			Find("div.article_header-white > p > time").
			AttrOr("datetime", "")
		content := htmlutil.Text(article.Find("div.article_body > dl > dd.article_answer"))
		items = append(items, ReviewItem{Date: date, Content: content})
	})
	return items, true
}
