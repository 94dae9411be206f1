package openwork

import (
	"context"
	"strconv"
	"time"

	"openwork-summarizer/lib/timezone"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type ReviewsOptions struct {
	CompanyID string
	// MaxPages defaults to 12.
	MaxPages int
	// Cutoff defaults to two years before now; records dated before it
	// end the walk.
	Cutoff time.Time
	// Courtesy pause between page fetches, uniform in [DelayMin, DelayMax].
	// Defaults to 500ms-1s. A heuristic, not a contract.
	DelayMin time.Duration
	DelayMax time.Duration
}

// Reviews walks the paginated listing newest-first and accumulates
// records until a page ceiling, a too-old review, or an exhausted
// listing ends the walk. It never fails: whatever was harvested before
// a page mishap is returned rather than thrown away.
func (c *Client) Reviews(ctx context.Context, opts ReviewsOptions) ReviewsResult {
	ctx, span := tracer.Start(ctx, "client:Reviews")
	defer span.End()

	if opts.MaxPages <= 0 {
		opts.MaxPages = 12
	}
	if opts.Cutoff.IsZero() {
		opts.Cutoff = timezone.ReviewCutoff(timezone.Now())
	}
	if opts.DelayMin <= 0 {
		opts.DelayMin = 500 * time.Millisecond
	}
	if opts.DelayMax <= 0 {
		opts.DelayMax = time.Second
	}
	if opts.DelayMax < opts.DelayMin {
		opts.DelayMax = opts.DelayMin
	}
	span.SetAttributes(
		attribute.String("company_id", opts.CompanyID),
		attribute.Int("max_pages", opts.MaxPages),
	)

	result := ReviewsResult{Stop: StopMaxPages}
	for page := 1; page <= opts.MaxPages; page++ {
		c.log.InfoContext(ctx, "scraping listing page", "page", page, "max_pages", opts.MaxPages)

		outcome := c.fetchReviewPage(ctx, opts, page)
		result.Records = append(result.Records, outcome.Records...)
		result.PagesFetched = page

		if outcome.Stop != StopNone {
			result.Stop = outcome.Stop
			switch outcome.Stop {
			case StopPageError:
				c.log.ErrorContext(ctx, "error while processing page, keeping partial results",
					"page", page, "err", outcome.Err)
			case StopCutoff:
				c.log.InfoContext(ctx, "reached review older than cutoff", "page", page)
			default:
				c.log.WarnContext(ctx, "stopping pagination", "page", page, "reason", string(outcome.Stop))
			}
			break
		}

		if page < opts.MaxPages {
			if err := c.courtesyDelay(ctx, opts); err != nil {
				result.Stop = StopPageError
				break
			}
		}
	}

	span.SetAttributes(
		attribute.Int("reviews", len(result.Records)),
		attribute.String("stop", string(result.Stop)),
	)
	return result
}

func (c *Client) fetchReviewPage(ctx context.Context, opts ReviewsOptions, page int) PageOutcome {
	ctx, span := tracer.Start(ctx, "client:fetchReviewPage")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Referer", c.BaseUrl.String()+"/company_answer.php?m_id="+opts.CompanyID).
		SetQueryParams(map[string]string{
			"m_id":      opts.CompanyID,
			"sort_key":  "1",
			"sort_val":  "-1",
			"next_page": strconv.Itoa(page),
		}).
		Get("/company_answer.php")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing page")
		return PageOutcome{Stop: StopPageError, Err: err}
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "listing page returned bad status")
		return PageOutcome{Stop: StopBadStatus}
	}

	doc, err := c.document(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse listing page html")
		return PageOutcome{Stop: StopPageError, Err: err}
	}

	items, ok := c.Parser.ReviewItems(doc)
	if !ok {
		return PageOutcome{Stop: StopNoListing}
	}
	if len(items) == 0 {
		return PageOutcome{Stop: StopNoItems}
	}

	var records []ReviewRecord
	for _, item := range items {
		if item.Date != "" {
			date, err := time.ParseInLocation("2006-01-02", item.Date, timezone.Location)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to parse review date")
				return PageOutcome{Records: records, Stop: StopPageError, Err: err}
			}
			if date.Before(opts.Cutoff) {
				// early stop: everything after this item is older still
				return PageOutcome{Records: records, Stop: StopCutoff}
			}
		}
		records = append(records, ReviewRecord{Date: item.Date, Content: item.Content})
	}

	return PageOutcome{Records: records}
}

// courtesyDelay sleeps for a random duration to avoid hammering the
// server between page fetches.
func (c *Client) courtesyDelay(ctx context.Context, opts ReviewsOptions) error {
	ms, err := random.IntRange(
		int(opts.DelayMin/time.Millisecond),
		int(opts.DelayMax/time.Millisecond)+1,
	)
	if err != nil {
		ms = int(opts.DelayMin / time.Millisecond)
	}

	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
