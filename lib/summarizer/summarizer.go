package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
)

var tracer = otel.Tracer("summarizer")

var (
	ErrEmptyReviews  = fmt.Errorf("cannot summarize empty reviews")
	ErrSummaryFailed = fmt.Errorf("failed to generate summary")
)

const DefaultModel = "gemini-2.5-flash"

type Client struct {
	genai *genai.Client
	log   *slog.Logger
}

type ClientOptions struct {
	// APIKey falls back to the GEMINI_API_KEY environment variable.
	APIKey string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no LLM API key configured")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{genai: client, log: opts.Logger}, nil
}

type Request struct {
	// Model defaults to DefaultModel.
	Model        string
	Lang         string
	CompanyName  string
	CompanyIntro string
	Reviews      []string
}

// PromptParts assembles the two message segments of a summary request:
// the instruction/persona segment and the data segment carrying the
// company metadata plus every review wrapped in triple quotes so the
// model can tell them apart.
func PromptParts(req Request) (instructions string, data string) {
	wrapped := make([]string, len(req.Reviews))
	for i, r := range req.Reviews {
		wrapped[i] = fmt.Sprintf("\"\"\"\n%s\n\"\"\"", r)
	}

	data = fmt.Sprintf(
		"Name: %s\nIntro: %s\n\n%s",
		req.CompanyName,
		req.CompanyIntro,
		strings.Join(wrapped, "\n\n"),
	)
	return instructionsFor(req.Lang), data
}

// Summarize issues a single chat-style completion request and returns
// the model's text response. An empty review list is a caller error and
// produces no request at all; a completion-service failure is wrapped
// in ErrSummaryFailed and never retried.
func (c *Client) Summarize(ctx context.Context, req Request) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Summarize")
	defer span.End()

	if len(req.Reviews) == 0 {
		span.SetStatus(codes.Error, ErrEmptyReviews.Error())
		return "", ErrEmptyReviews
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}
	span.SetAttributes(
		attribute.String("model", req.Model),
		attribute.String("lang", req.Lang),
		attribute.Int("reviews", len(req.Reviews)),
	)

	instructions, data := PromptParts(req)
	c.log.InfoContext(ctx, "requesting summary",
		"model", req.Model, "lang", req.Lang, "reviews", len(req.Reviews))

	// maximum-exploration sampling, mirroring how the prompt was tuned
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
		Temperature:       genai.Ptr[float32](1.0),
		TopP:              genai.Ptr[float32](1.0),
	}
	res, err := c.genai.Models.GenerateContent(ctx, req.Model, genai.Text(data), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion request failed")
		return "", fmt.Errorf("%w: %w", ErrSummaryFailed, err)
	}

	summary := res.Text()
	if summary == "" {
		span.SetStatus(codes.Error, "completion response carried no text")
		return "", fmt.Errorf("%w: empty response", ErrSummaryFailed)
	}

	c.log.InfoContext(ctx, "generated summary", "chars", len(summary))
	return summary, nil
}
