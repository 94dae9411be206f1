package openwork

// ReviewRecord is a single harvested review. Date is an ISO 8601 day
// ("2006-01-02") or empty when the item carried no timestamp.
type ReviewRecord struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// CompanyInfo is fetched once per run and never mutated afterwards.
// Either field may be empty when the profile page lacks the region.
type CompanyInfo struct {
	Name         string
	Introduction string
}

// StopReason records why pagination came to an end. Every reason other
// than StopPageError is a normal outcome, not a failure.
type StopReason string

const (
	// StopNone marks a page that should be followed by the next one.
	StopNone StopReason = ""

	StopMaxPages  StopReason = "page ceiling reached"
	StopBadStatus StopReason = "non-success status"
	StopNoListing StopReason = "listing container absent"
	StopNoItems   StopReason = "no review items on page"
	StopCutoff    StopReason = "review older than cutoff"

	// StopPageError ends the walk while preserving everything
	// accumulated so far.
	StopPageError StopReason = "page processing error"
)

// PageOutcome is the explicit result of fetching one listing page:
// either "continue with these records" (Stop == StopNone), a clean stop,
// or an error stop that still carries the records harvested before the
// failure.
type PageOutcome struct {
	Records []ReviewRecord
	Stop    StopReason
	Err     error
}

// ReviewsResult is what the paginator hands back. Records never contain
// an entry dated before the configured cutoff.
type ReviewsResult struct {
	Records      []ReviewRecord
	PagesFetched int
	Stop         StopReason
}
