package unfurl

import (
	"context"
	"io"
)

// MediaType describes the kind of resource a preview summarizes.
type MediaType string

// MediaType constants. Only MediaTypeImage and MediaTypeWebsite are produced
// by the current extraction rules; the rest mirror content-type families.
const (
	MediaTypeImage       MediaType = "image"
	MediaTypeWebsite     MediaType = "website"
	MediaTypeAudio       MediaType = "audio"
	MediaTypeVideo       MediaType = "video"
	MediaTypeApplication MediaType = "application"
)

// Preview is the normalized summary of a fetched resource.
//
// Optional strings are pointers: nil means the source had no such value,
// while a pointer to "" means the value was present but empty.
type Preview struct {
	URL         string    `json:"url"`
	MediaType   MediaType `json:"mediaType"`
	ContentType *string   `json:"contentType,omitempty"`
	Title       *string   `json:"title,omitempty"`
	SiteName    *string   `json:"siteName,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      []string  `json:"images"`
	Videos      []Video   `json:"videos"`
	Favicons    []string  `json:"favicons"`
}

// Video is an embedded video advertised by the page metadata.
type Video struct {
	URL       string  `json:"url"`
	SecureURL *string `json:"secureUrl,omitempty"`
	Type      *string `json:"type,omitempty"`
	Width     *string `json:"width,omitempty"`
	Height    *string `json:"height,omitempty"`
}

// NewImagePreview returns the preview of a resource that is itself an image.
// No markup is involved: the image is its own only picture and the favicon
// is guessed at the site root.
func NewImagePreview(finalURL, contentType string) *Preview {
	p := &Preview{
		URL:       finalURL,
		MediaType: MediaTypeImage,
		Images:    []string{finalURL},
		Videos:    []Video{},
		Favicons:  []string{DefaultFavicon(finalURL)},
	}
	if contentType != "" {
		p.ContentType = &contentType
	}
	return p
}

// ExtractOptions controls metadata extraction.
type ExtractOptions struct {
	// ImagesPropertyType is the metadata namespace consulted for images
	// ("og" looks at og:image). Empty selects "og" and additionally enables
	// the link[rel=image_src] and <img> fallbacks when no tag matches.
	ImagesPropertyType string
}

// Extractor builds a preview from HTML markup.
type Extractor interface {
	// Extract parses markup and applies the metadata rules. Relative
	// references are resolved against baseURL. Missing metadata is never
	// an error.
	Extract(markup, baseURL string, opts ExtractOptions) (*Preview, error)
}

// Result is the outcome of previewing a URL. Exactly one of Preview or
// Response is set, depending on Strategy.
type Result struct {
	Strategy Strategy

	// Preview is set for StrategyImage and StrategyText.
	Preview *Preview

	// Response is set for StrategyUnhandled. The caller owns it and must
	// close its Body.
	Response *Response
}

// Previewer turns a URL into a preview result.
type Previewer interface {
	// Preview fetches url and summarizes it.
	// The context controls timeout and cancellation.
	Preview(ctx context.Context, url string, opts ExtractOptions) (*Result, error)
}

// Response is a fetched resource as seen after redirects.
type Response struct {
	// URL is the final URL after redirects.
	URL string

	StatusCode int

	// ContentType is the raw Content-Type header, or "" if missing.
	ContentType string

	Body io.ReadCloser
}
