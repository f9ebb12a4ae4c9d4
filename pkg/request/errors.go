package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ConnectivityErrorMessage is reported when no response was received.
const ConnectivityErrorMessage = "Connection error. Make sure the API server is running."

const malformedBodyDetail = "malformed response body"

// serverErrorMessage renders "Error {status}: {detail}" from an error response.
func serverErrorMessage(status int, body []byte) string {
	detail := extractDetail(body)
	if detail == "" {
		detail = fmt.Sprintf("unknown server error (%d).", status)
	}
	return formatServerError(status, detail)
}

func formatServerError(status int, detail string) string {
	return fmt.Sprintf("Error %d: %s", status, detail)
}

// extractDetail pulls the "detail" field out of a JSON error body. String
// details are used verbatim; structured ones (validation error lists) are
// rendered as compact JSON. Falsy details (null, "", false, 0) count as
// missing.
func extractDetail(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	raw := bytes.TrimSpace(envelope.Detail)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	if bytes.Equal(raw, []byte("false")) {
		return ""
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil && n == 0 {
		return ""
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return ""
	}
	return compact.String()
}
