package openwork

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"time"

	"openwork-summarizer/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/openwork")

var (
	ErrTokenMissing     = fmt.Errorf("anti-forgery token not found in login page")
	ErrAuthVerification = fmt.Errorf("could not verify logged-in state after login")
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.2 Safari/605.1.15"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	Parser  PageParser

	log *slog.Logger
}

type ClientOptions struct {
	// BaseUrl defaults to the live site, tests point it at a stub server.
	BaseUrl string
	// Parser defaults to MarkupParser.
	Parser PageParser
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://www.openwork.jp"
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if opts.Parser == nil {
		opts.Parser = MarkupParser{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	// the original tool ran without timeouts; 30s keeps a wedged
	// connection from hanging a whole run
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/openwork/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
		Parser:  opts.Parser,
		log:     opts.Logger,
	}
	return c, nil
}

func (c *Client) document(res *resty.Response) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// Login authenticates the session cookie jar with the site. It never
// retries; the caller is expected to abort the run on any error.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	c.log.InfoContext(ctx, "logging in", "username", username)

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/login.php")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "login page returned bad status")
		return fmt.Errorf("fetch login page: %s", res.Status())
	}
	doc, err := c.document(res)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}

	token := c.Parser.LoginToken(doc)
	if token == "" {
		span.SetStatus(codes.Error, ErrTokenMissing.Error())
		return ErrTokenMissing
	}

	res, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"_username":    username,
			"_password":    password,
			"_remember_me": "1",
			"_csrf_token":  token,
			"_target_path": c.BaseUrl.String() + "/",
		}).
		Post("/login_check")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "login request returned bad status")
		return fmt.Errorf("submit login: %s", res.Status())
	}

	res, err = c.Http.R().
		SetContext(ctx).
		Get("/my_top")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request landing page after login")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "landing page returned bad status")
		return fmt.Errorf("fetch landing page: %s", res.Status())
	}
	doc, err = c.document(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse landing page html")
		return err
	}

	if !c.Parser.LoggedIn(doc) {
		span.SetStatus(codes.Error, ErrAuthVerification.Error())
		return ErrAuthVerification
	}

	c.log.InfoContext(ctx, "logged in")
	return nil
}
