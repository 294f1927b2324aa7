package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/unfurl"
)

// unhandledRecord describes a response that has no preview.
type unhandledRecord struct {
	URL         string `json:"url"`
	Strategy    string `json:"strategy"`
	StatusCode  int    `json:"statusCode"`
	ContentType string `json:"contentType,omitempty"`
}

// printResult writes result to w and releases any response it holds.
func printResult(w io.Writer, result *unfurl.Result, asJSON bool) error {
	if result.Response != nil && result.Response.Body != nil {
		defer result.Response.Body.Close()
	}

	if asJSON {
		enc := json.NewEncoder(w)
		if result.Preview != nil {
			return enc.Encode(result.Preview)
		}
		return enc.Encode(unhandledRecord{
			URL:         result.Response.URL,
			Strategy:    result.Strategy.String(),
			StatusCode:  result.Response.StatusCode,
			ContentType: result.Response.ContentType,
		})
	}

	if result.Preview != nil {
		_, err := fmt.Fprintln(w, unfurl.FormatPreview(result.Preview))
		return err
	}

	contentType := result.Response.ContentType
	if contentType == "" {
		contentType = "unknown content type"
	}
	_, err := fmt.Fprintf(w, "%s\nno preview for %s (HTTP %d)\n", result.Response.URL, contentType, result.Response.StatusCode)
	return err
}
