package unfurl

import "regexp"

// Strategy selects how a fetched resource is summarized.
type Strategy int

// Strategy constants.
const (
	// StrategyUnhandled hands the raw response back to the caller.
	StrategyUnhandled Strategy = iota
	// StrategyImage synthesizes a preview without reading the body.
	StrategyImage
	// StrategyText reads the body as markup and extracts metadata.
	StrategyText
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyImage:
		return "image"
	case StrategyText:
		return "text"
	default:
		return "unhandled"
	}
}

// contentTypeFamilies maps content-type patterns to media types.
// Order matters: the first matching family wins.
var contentTypeFamilies = []struct {
	pattern   *regexp.Regexp
	mediaType MediaType
}{
	{regexp.MustCompile(`(?i)^\s*image/`), MediaTypeImage},
	{regexp.MustCompile(`(?i)^\s*audio/`), MediaTypeAudio},
	{regexp.MustCompile(`(?i)^\s*video/`), MediaTypeVideo},
	{regexp.MustCompile(`(?i)^\s*text/`), MediaTypeWebsite},
	{regexp.MustCompile(`(?i)^\s*application/`), MediaTypeApplication},
}

// MediaTypeOf returns the media type family of a Content-Type header value.
// It returns "" when no family matches.
func MediaTypeOf(contentType string) MediaType {
	for _, f := range contentTypeFamilies {
		if f.pattern.MatchString(contentType) {
			return f.mediaType
		}
	}
	return ""
}

// Classify decides how the resource at finalURL should be summarized given
// its declared Content-Type. It never fails: anything other than image/* or
// text/*, including a missing content type, is StrategyUnhandled.
func Classify(finalURL, contentType string) Strategy {
	switch MediaTypeOf(contentType) {
	case MediaTypeImage:
		return StrategyImage
	case MediaTypeWebsite:
		return StrategyText
	default:
		return StrategyUnhandled
	}
}
