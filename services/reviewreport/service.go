package reviewreport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"openwork-summarizer/lib/scrapers/openwork"
	"openwork-summarizer/lib/summarizer"
	"openwork-summarizer/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/reviewreport")

var ErrInvalidCompany = fmt.Errorf("invalid company id")

// Summarizer is the narrow slice of the LLM client the service needs,
// so tests can substitute a capturing fake.
type Summarizer interface {
	Summarize(ctx context.Context, req summarizer.Request) (string, error)
}

type Service struct {
	Scraper    *openwork.Client
	Summarizer Summarizer
	// OutputRoot is the directory under which reviews/ and summaries/
	// are created. Defaults to the working directory.
	OutputRoot string
	// ConfirmOverwrite decides whether an existing summary should be
	// regenerated. nil always regenerates.
	ConfirmOverwrite func(path string) bool
	// Courtesy delay bounds forwarded to the paginator; zero values
	// use the scraper defaults.
	DelayMin time.Duration
	DelayMax time.Duration
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

type RunRequest struct {
	CompanyID string
	Model     string
	Lang      string
	MaxPages  int
}

type RunResult struct {
	Company      openwork.CompanyInfo
	PagesFetched int
	ReviewCount  int
	Stop         openwork.StopReason
	ReviewsPath  string
	SummaryPath  string
	Summary      string
	// Skipped is set when the user declined to regenerate an existing
	// summary; the run ends cleanly without scraping.
	Skipped bool
}

func (s *Service) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Run drives one full report: company lookup, review scrape, JSON
// persistence, summarization, and summary persistence. The session must
// already be authenticated.
func (s *Service) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	ctx, span := tracer.Start(ctx, "service:Run")
	defer span.End()
	span.SetAttributes(attribute.String("company_id", req.CompanyID))

	log := s.log()

	company, err := s.Scraper.CompanyInfo(ctx, req.CompanyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch company info")
		return RunResult{}, err
	}
	if company.Name == "" {
		span.SetStatus(codes.Error, ErrInvalidCompany.Error())
		return RunResult{}, fmt.Errorf("%w: %s", ErrInvalidCompany, req.CompanyID)
	}

	safeName := textutil.SafeFilename(company.Name)
	result := RunResult{
		Company:     company,
		ReviewsPath: filepath.Join(s.OutputRoot, "reviews", fmt.Sprintf("reviews_%s.json", safeName)),
		SummaryPath: filepath.Join(s.OutputRoot, "summaries", fmt.Sprintf("summary_%s.txt", safeName)),
	}

	if _, err := os.Stat(result.SummaryPath); err == nil {
		if s.ConfirmOverwrite != nil && !s.ConfirmOverwrite(result.SummaryPath) {
			log.InfoContext(ctx, "summary exists, skipping regeneration", "path", result.SummaryPath)
			result.Skipped = true
			return result, nil
		}
	}

	scraped := s.Scraper.Reviews(ctx, openwork.ReviewsOptions{
		CompanyID: req.CompanyID,
		MaxPages:  req.MaxPages,
		DelayMin:  s.DelayMin,
		DelayMax:  s.DelayMax,
	})
	result.PagesFetched = scraped.PagesFetched
	result.ReviewCount = len(scraped.Records)
	result.Stop = scraped.Stop

	if err := s.writeReviews(result.ReviewsPath, scraped.Records); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist reviews")
		return result, err
	}
	log.InfoContext(ctx, "saved reviews", "count", len(scraped.Records), "path", result.ReviewsPath)

	if len(scraped.Records) == 0 {
		log.WarnContext(ctx, "no reviews found, skipping summarization")
		return result, nil
	}

	texts := make([]string, len(scraped.Records))
	for i, r := range scraped.Records {
		texts[i] = r.Content
	}
	summary, err := s.Summarizer.Summarize(ctx, summarizer.Request{
		Model:        req.Model,
		Lang:         req.Lang,
		CompanyName:  company.Name,
		CompanyIntro: company.Introduction,
		Reviews:      texts,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate summary")
		return result, err
	}
	result.Summary = summary

	if err := writeFile(result.SummaryPath, []byte(summary)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist summary")
		return result, err
	}
	log.InfoContext(ctx, "saved summary", "path", result.SummaryPath)

	return result, nil
}

func (s *Service) writeReviews(path string, records []openwork.ReviewRecord) error {
	if records == nil {
		// an empty run still produces a valid JSON array
		records = []openwork.ReviewRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}
