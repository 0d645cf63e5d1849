package extract

// Status indicates whether a fetch attempt produced usable content.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Metadata holds page metadata gathered opportunistically during extraction.
// Absence of either field is not an error.
type Metadata struct {
	Title       string
	Description string
}

// Result is the outcome of a single fetch-and-extract attempt. It is created
// per attempt and consumed synchronously by the caller; it is never persisted.
type Result struct {
	URL      string
	Status   Status
	Metadata Metadata
	Content  string
	Err      string // human-readable reason when Status is StatusError
}

// OK reports whether the extraction succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

func errorResult(url, reason string) Result {
	return Result{URL: url, Status: StatusError, Err: reason}
}
