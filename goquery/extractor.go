// Package goquery implements unfurl.Extractor on top of goquery's
// CSS-selector document model.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/unfurl"
)

// DefaultImagesPropertyType is the metadata namespace consulted for images
// when the caller does not pick one.
const DefaultImagesPropertyType = "og"

// Ensure Extractor implements unfurl.Extractor at compile time.
var _ unfurl.Extractor = (*Extractor)(nil)

// Extractor reads Open Graph style metadata from HTML, falling back to
// conventional elements where a rule allows it.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses markup and builds a website preview. Every rule is
// independent and first-match-wins; absent metadata yields nil fields.
func (e *Extractor) Extract(markup, baseURL string, opts unfurl.ExtractOptions) (*unfurl.Preview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "failed to parse HTML: %v", err)
	}

	return &unfurl.Preview{
		URL:         baseURL,
		MediaType:   unfurl.MediaTypeWebsite,
		Title:       title(doc),
		SiteName:    attr(metaProperty(doc, "og:site_name"), "content"),
		Description: description(doc),
		Images:      images(doc, baseURL, opts.ImagesPropertyType),
		Videos:      videos(doc, baseURL),
		Favicons:    []string{},
	}, nil
}

// title prefers a non-empty og:title and falls back to the <title> text.
func title(doc *goquery.Document) *string {
	if t := attr(metaProperty(doc, "og:title"), "content"); t != nil && *t != "" {
		return t
	}
	sel := doc.Find("title")
	if sel.Length() == 0 {
		return nil
	}
	text := sel.Text()
	return &text
}

// description walks the cascade and stops at the first attribute that is
// present, even when its value is empty.
func description(doc *goquery.Document) *string {
	candidates := []*goquery.Selection{
		metaAttr(doc, "name", "description"),
		metaAttr(doc, "name", "Description"),
		metaProperty(doc, "og:description"),
	}
	for _, sel := range candidates {
		if d := attr(sel, "content"); d != nil {
			return d
		}
	}
	return nil
}

// images collects {propertyType}:image tags in document order without
// deduplication. With the default property type and no tags found it falls
// back to link[rel=image_src], then to every <img>, deduplicated.
func images(doc *goquery.Document, baseURL, propertyType string) []string {
	explicit := propertyType != ""
	if !explicit {
		propertyType = DefaultImagesPropertyType
	}

	result := []string{}
	metaProperty(doc, propertyType+":image").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("content")
		if src == "" {
			return
		}
		if resolved := unfurl.ResolveURL(baseURL, src); resolved != "" {
			result = append(result, resolved)
		}
	})
	if len(result) > 0 || explicit {
		return result
	}

	if href := attr(doc.Find("link[rel=image_src]"), "href"); href != nil && *href != "" {
		if resolved := unfurl.ResolveURL(baseURL, *href); resolved != "" {
			return []string{resolved}
		}
	}

	seen := make(map[string]bool)
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" {
			return
		}
		resolved := unfurl.ResolveURL(baseURL, src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		result = append(result, resolved)
	})
	return result
}

// videos pairs each og:video tag with the og:video:type and
// og:video:secure_url tags at the same position. Width and height are
// page-wide. Tags without a resolvable URL are skipped; an empty secure
// URL is kept as present. Entries typed video/* are moved to the front; relative order
// is otherwise preserved.
func videos(doc *goquery.Document, baseURL string) []unfurl.Video {
	nodes := metaProperty(doc, "og:video")
	if nodes.Length() == 0 {
		return []unfurl.Video{}
	}

	types := metaProperty(doc, "og:video:type")
	secureURLs := metaProperty(doc, "og:video:secure_url")
	width := attr(metaProperty(doc, "og:video:width"), "content")
	height := attr(metaProperty(doc, "og:video:height"), "content")

	var playable, other []unfurl.Video
	nodes.Each(func(i int, sel *goquery.Selection) {
		src, _ := sel.Attr("content")
		if src == "" {
			return
		}
		resolved := unfurl.ResolveURL(baseURL, src)
		if resolved == "" {
			return
		}

		v := unfurl.Video{
			URL:    resolved,
			Type:   attr(types.Eq(i), "content"),
			Width:  width,
			Height: height,
		}
		if s := attr(secureURLs.Eq(i), "content"); s != nil {
			if *s == "" {
				v.SecureURL = s
			} else if secure := unfurl.ResolveURL(baseURL, *s); secure != "" {
				v.SecureURL = &secure
			}
		}

		if v.Type != nil && strings.HasPrefix(*v.Type, "video/") {
			playable = append(playable, v)
		} else {
			other = append(other, v)
		}
	})

	return append(append([]unfurl.Video{}, playable...), other...)
}

// metaProperty selects <meta> elements whose property attribute equals value.
func metaProperty(doc *goquery.Document, value string) *goquery.Selection {
	return metaAttr(doc, "property", value)
}

// metaAttr selects <meta> elements whose name attribute equals value,
// compared exactly. Values are never interpolated into a selector.
func metaAttr(doc *goquery.Document, name, value string) *goquery.Selection {
	return doc.Find("meta").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		v, ok := sel.Attr(name)
		return ok && v == value
	})
}

// attr returns the named attribute of the first element in sel, or nil if
// sel is empty or the attribute is missing.
func attr(sel *goquery.Selection, name string) *string {
	v, ok := sel.Attr(name)
	if !ok {
		return nil
	}
	return &v
}
