package domain

// Preview result discriminator values.
const (
	PreviewStatusSuccess = "success"
	PreviewStatusFailed  = "failed"
)

// PreviewResult is the outcome of one fetch-and-parse pass over a URL. It
// is produced and consumed within a single request and never persisted.
type PreviewResult struct {
	Status  string
	Content string // raw response body, success only
	Title   string // extracted <title>, "Untitled" when absent
	Error   string // classified message, failure only
}

// Success reports whether the fetch succeeded.
func (r PreviewResult) Success() bool { return r.Status == PreviewStatusSuccess }
