package canva

// Wire types for the Canva Connect REST API. Only the fields this service
// reads are mapped; the API returns considerably more.

// Design is one entry of the design-list endpoint.
type Design struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

// DesignList is a single page of designs. A non-empty Continuation means
// more pages exist.
type DesignList struct {
	Items        []Design `json:"items"`
	Continuation string   `json:"continuation,omitempty"`
}

// Export job statuses as reported by the API. Canva reports "success",
// not "completed".
const (
	ExportStatusInProgress = "in_progress"
	ExportStatusSuccess    = "success"
	ExportStatusFailed     = "failed"
)

// ExportJob is the job object embedded in export create/status responses.
type ExportJob struct {
	ID     string        `json:"id"`
	Status string        `json:"status"`
	Result *ExportResult `json:"result,omitempty"`
	// URLs is a fallback location some responses carry instead of
	// result.downloadUrls.
	URLs  []string     `json:"urls,omitempty"`
	Error *ExportError `json:"error,omitempty"`
}

type ExportResult struct {
	DownloadURLs []string `json:"downloadUrls"`
}

type ExportError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type exportResponse struct {
	Job *ExportJob `json:"job"`
}

type exportRequest struct {
	DesignID string       `json:"design_id"`
	Format   exportFormat `json:"format"`
}

type exportFormat struct {
	Type string `json:"type"`
}
