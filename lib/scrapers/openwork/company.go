package openwork

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CompanyInfo fetches a company's display name and introduction.
// Absence of either field is not an error; the caller decides whether a
// missing name means the identifier was invalid.
func (c *Client) CompanyInfo(ctx context.Context, companyID string) (CompanyInfo, error) {
	ctx, span := tracer.Start(ctx, "client:CompanyInfo")
	defer span.End()
	span.SetAttributes(attribute.String("company_id", companyID))

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("m_id", companyID).
		Get("/company_answer.php")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch company page")
		return CompanyInfo{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "company page returned bad status")
		return CompanyInfo{}, fmt.Errorf("fetch company page: %s", res.Status())
	}
	doc, err := c.document(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse company page html")
		return CompanyInfo{}, err
	}

	info := CompanyInfo{
		Name:         c.Parser.CompanyName(doc),
		Introduction: c.Parser.CompanyIntro(doc),
	}
	if info.Name == "" {
		c.log.WarnContext(ctx, "company name not found", "company_id", companyID)
	}
	if info.Introduction == "" {
		c.log.WarnContext(ctx, "company introduction not found", "company_id", companyID)
	}
	return info, nil
}
