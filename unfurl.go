// Package unfurl builds link previews: it fetches a URL, decides how the
// resource should be summarized based on its content type, and extracts a
// normalized preview (title, description, site name, images, videos).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, slog/).
package unfurl
