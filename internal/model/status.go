package model

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Status is the outcome of a single HTTP exchange with the API.
type Status struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// StatusFromResponse extracts the code and reason phrase of resp.
func StatusFromResponse(resp *http.Response) Status {
	desc := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if desc == "" {
		desc = http.StatusText(resp.StatusCode)
	}
	return Status{Code: resp.StatusCode, Description: desc}
}

func (s Status) OK() bool {
	return s.Code >= 200 && s.Code < 300
}

func (s Status) String() string {
	return fmt.Sprintf("%d %s", s.Code, s.Description)
}

// APIError describes a non-2xx answer from the API. Err and Message are
// filled when the error body is the usual {"error","message"} document.
type APIError struct {
	Status  Status `json:"status"`
	Err     string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	switch {
	case e.Err != "" && e.Message != "":
		return fmt.Sprintf("way2enjoy: %s (%s: %s)", e.Status, e.Err, e.Message)
	case e.Err != "" || e.Message != "":
		return fmt.Sprintf("way2enjoy: %s (%s%s)", e.Status, e.Err, e.Message)
	default:
		return fmt.Sprintf("way2enjoy: %s", e.Status)
	}
}
