package model

// CompressionResult is the JSON document returned by the API after an upload.
// Output is nil when the server rejected the file; Error and Message then carry
// the server-side reason.
type CompressionResult struct {
	Input   ResultInput   `json:"input"`
	Output  *ResultOutput `json:"output,omitempty"`
	Error   string        `json:"error,omitempty"`
	Message string        `json:"message,omitempty"`
}

type ResultInput struct {
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type ResultOutput struct {
	Size   int64   `json:"size"`
	Type   string  `json:"type"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Ratio  float64 `json:"ratio"`
	// URL is a time-limited link to the compressed file. Every follow-up
	// operation (transform, store, download) targets it.
	URL string `json:"url"`
}

// ResultURL returns the result URL, or "" when the result carries none.
func (r *CompressionResult) ResultURL() string {
	if r == nil || r.Output == nil {
		return ""
	}
	return r.Output.URL
}

// Failed reports whether the server flagged the upload as an error.
func (r *CompressionResult) Failed() bool {
	return r != nil && (r.Error != "" || r.ResultURL() == "")
}

// FailureReason joins the server error code and message into one line.
func (r *CompressionResult) FailureReason() string {
	switch {
	case r == nil:
		return "empty response"
	case r.Error != "" && r.Message != "":
		return r.Error + ": " + r.Message
	case r.Error != "":
		return r.Error
	case r.Message != "":
		return r.Message
	default:
		return "response carries no output url"
	}
}
