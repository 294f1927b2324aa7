package unfurl

import "strings"

// FormatPreview renders a preview as a plain-text card.
// Uses title if available, falls back to the URL. Absent fields are
// omitted; only the first image is shown.
func FormatPreview(p *Preview) string {
	if p == nil {
		return ""
	}

	var lines []string
	if p.SiteName != nil && *p.SiteName != "" {
		lines = append(lines, "["+*p.SiteName+"]")
	}

	header := p.URL
	if p.Title != nil && *p.Title != "" {
		header = *p.Title
	}
	lines = append(lines, header)

	if p.Description != nil && *p.Description != "" {
		lines = append(lines, *p.Description)
	}
	if header != p.URL {
		lines = append(lines, p.URL)
	}
	if len(p.Images) > 0 {
		lines = append(lines, "image: "+p.Images[0])
	}
	for _, v := range p.Videos {
		line := "video: " + v.URL
		if v.Type != nil && *v.Type != "" {
			line += " (" + *v.Type + ")"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
