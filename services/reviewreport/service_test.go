package reviewreport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"openwork-summarizer/lib/scrapers/openwork"
	"openwork-summarizer/lib/summarizer"
	"openwork-summarizer/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const companyPage = `
<html><body>
<div id="mainTitle"><h2><a href="/company?m_id=12345">Acme Corp</a></h2></div>
<div id="contentsHeader_text"><div>
	<p class="mt-20 w-740 madblack break-all">A manufacturer of everything.</p>
</div></div>
</body></html>`

func article(date, content string) string {
	return fmt.Sprintf(
		`<article class="article">`+
			`<div class="article_header-white"><p><time datetime="%s">%s</time></p></div>`+
			`<div class="article_body"><dl><dd class="article_answer">%s</dd></dl></div>`+
			`</article>`,
		date, date, content,
	)
}

// siteServer serves a company profile for id 12345 and listing pages
// with the given per-page review counts, all dated well after any
// two-year cutoff.
func siteServer(t *testing.T, pageSizes []int) (*httptest.Server, []string) {
	var texts []string
	pages := make([]string, len(pageSizes))
	n := 0
	for p, size := range pageSizes {
		var articles []string
		for i := 0; i < size; i++ {
			n++
			text := fmt.Sprintf("review %d", n)
			texts = append(texts, text)
			date := time.Now().AddDate(0, 0, -n).Format("2006-01-02")
			articles = append(articles, article(date, text))
		}
		pages[p] = `<div id="anchor01">` + strings.Join(articles, "\n") + `</div>`
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /company_answer.php", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "12345", r.URL.Query().Get("m_id"))

		rawPage := r.URL.Query().Get("next_page")
		if rawPage == "" {
			w.Write([]byte(companyPage))
			return
		}
		page, err := strconv.Atoi(rawPage)
		require.NoError(t, err)
		if page > len(pages) {
			w.Write([]byte(`<html><body><div id="anchor01"></div></body></html>`))
			return
		}
		w.Write([]byte(`<html><body>` + pages[page-1] + `</body></html>`))
	})
	return httptest.NewServer(mux), texts
}

type fakeSummarizer struct {
	requests []summarizer.Request
	summary  string
	err      error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, req summarizer.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func newService(t *testing.T, server *httptest.Server, fake *fakeSummarizer) *Service {
	scraper, err := openwork.NewClient(openwork.ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	return &Service{
		Scraper:    scraper,
		Summarizer: fake,
		OutputRoot: t.TempDir(),
		DelayMin:   time.Millisecond,
		DelayMax:   2 * time.Millisecond,
	}
}

func TestRunEndToEnd(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/reviewreport")
	defer cleanup()

	server, texts := siteServer(t, []int{5, 5, 2})
	defer server.Close()

	fake := &fakeSummarizer{summary: "the summary"}
	service := newService(t, server, fake)

	result, err := service.Run(context.Background(), RunRequest{
		CompanyID: "12345",
		Model:     "gemini-2.5-flash",
		Lang:      "ja",
		MaxPages:  12,
	})
	require.NoError(t, err)

	require.Equal(t, "Acme Corp", result.Company.Name)
	require.Equal(t, 12, result.ReviewCount)
	require.Equal(t, "the summary", result.Summary)
	require.False(t, result.Skipped)

	// exactly the scraped texts, in server order, reach the summarizer
	require.Len(t, fake.requests, 1)
	require.Equal(t, texts, fake.requests[0].Reviews)
	require.Equal(t, "Acme Corp", fake.requests[0].CompanyName)
	require.Equal(t, "A manufacturer of everything.", fake.requests[0].CompanyIntro)

	var persisted []openwork.ReviewRecord
	raw, err := os.ReadFile(result.ReviewsPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 12)

	written, err := os.ReadFile(result.SummaryPath)
	require.NoError(t, err)
	require.Equal(t, "the summary", string(written))

	require.Equal(t, "reviews_Acme_Corp.json", filepath.Base(result.ReviewsPath))
	require.Equal(t, "summary_Acme_Corp.txt", filepath.Base(result.SummaryPath))
}

func TestRunInvalidCompany(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /company_answer.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>no such company</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fake := &fakeSummarizer{}
	service := newService(t, server, fake)

	_, err := service.Run(context.Background(), RunRequest{CompanyID: "404"})
	require.ErrorIs(t, err, ErrInvalidCompany)
	require.Empty(t, fake.requests)
}

func TestRunNoReviewsSkipsSummary(t *testing.T) {
	server, _ := siteServer(t, nil)
	defer server.Close()

	fake := &fakeSummarizer{}
	service := newService(t, server, fake)

	result, err := service.Run(context.Background(), RunRequest{CompanyID: "12345"})
	require.NoError(t, err)
	require.Equal(t, 0, result.ReviewCount)
	require.Empty(t, result.Summary)
	// no summary request goes out, no summary file appears
	require.Empty(t, fake.requests)
	require.NoFileExists(t, result.SummaryPath)

	var persisted []openwork.ReviewRecord
	raw, err := os.ReadFile(result.ReviewsPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Empty(t, persisted)
}

func TestRunDeclinedOverwrite(t *testing.T) {
	server, _ := siteServer(t, []int{1})
	defer server.Close()

	fake := &fakeSummarizer{summary: "new summary"}
	service := newService(t, server, fake)
	service.ConfirmOverwrite = func(path string) bool { return false }

	existing := filepath.Join(service.OutputRoot, "summaries", "summary_Acme_Corp.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0777))
	require.NoError(t, os.WriteFile(existing, []byte("old summary"), 0666))

	result, err := service.Run(context.Background(), RunRequest{CompanyID: "12345"})
	require.NoError(t, err)
	require.True(t, result.Skipped)
	require.Empty(t, fake.requests)

	kept, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, "old summary", string(kept))
}

func TestRunSummaryFailurePropagates(t *testing.T) {
	server, _ := siteServer(t, []int{2})
	defer server.Close()

	fake := &fakeSummarizer{err: summarizer.ErrSummaryFailed}
	service := newService(t, server, fake)

	result, err := service.Run(context.Background(), RunRequest{CompanyID: "12345"})
	require.ErrorIs(t, err, summarizer.ErrSummaryFailed)
	// the scraped reviews are still persisted before the failure
	require.FileExists(t, result.ReviewsPath)
	require.NoFileExists(t, result.SummaryPath)
}
