package unfurl

import (
	"net/url"
	"strings"
)

// ResolveURL resolves ref against base using standard reference resolution.
// Absolute references are returned unchanged. Stray percent signs that do not
// start an escape sequence are encoded as %25. It returns "" when the result
// would not be an absolute URL.
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	r, err := url.Parse(ref)
	if err != nil {
		ref = escapeStrayPercents(ref)
		if r, err = url.Parse(ref); err != nil {
			return ""
		}
	}
	if r.IsAbs() {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(r)
	if !resolved.IsAbs() {
		return ""
	}
	return resolved.String()
}

// escapeStrayPercents replaces every '%' not followed by two hex digits
// with "%25".
func escapeStrayPercents(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// DefaultFavicon guesses the favicon location of the site serving rawURL.
func DefaultFavicon(rawURL string) string {
	return ResolveURL(rawURL, "/favicon.ico")
}

// NormalizeURL turns user input into an absolute HTTP(S) URL.
// Input without a scheme ("example.com/page") is assumed to be https.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "url required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + strings.TrimPrefix(raw, "//")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid url %q: %v", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", Errorf(EINVALID, "unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "url %q has no host", raw)
	}
	return u.String(), nil
}
