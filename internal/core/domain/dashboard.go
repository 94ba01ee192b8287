package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrDashboardNotFound = errors.New("dashboard not found")

// Dashboard references an externally hosted BI dashboard by opaque URL.
// The console stores and passes the URL through; it never parses its content.
type Dashboard struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Active      bool      `json:"active"`
	URL         string    `json:"url,omitempty"`
	EmbedURL    string    `json:"embed_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResolveEmbedURL returns the stored embed URL, or derives one from the base
// URL with the standard embed parameters when none was provided.
func (d *Dashboard) ResolveEmbedURL() string {
	if d.EmbedURL != "" {
		return d.EmbedURL
	}
	if d.URL == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(d.URL, "?") {
		sep = "&"
	}
	return d.URL + sep + "embedded=true&theme=transparent"
}
