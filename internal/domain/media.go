package domain

import "time"

// MediaStorage tells where media content lives.
type MediaStorage string

const (
	StorageLocal  MediaStorage = "Local"
	StorageRemote MediaStorage = "Remote"
)

// Media is a file attached to a service request, either embedded as base64
// content or referenced by URL.
type Media struct {
	UploadedAt time.Time    `json:"uploadedAt"`
	Name       string       `json:"name"`
	Caption    string       `json:"caption,omitempty"`
	Content    string       `json:"content,omitempty"`
	URL        string       `json:"url,omitempty"`
	Mime       string       `json:"mime,omitempty"`
	Storage    MediaStorage `json:"storage,omitempty"`
}

// Normalize applies media defaults.
func (m *Media) Normalize() {
	if m.UploadedAt.IsZero() {
		m.UploadedAt = time.Now()
	}
	if m.Mime == "" {
		m.Mime = "image/png"
	}
	if m.Storage == "" {
		m.Storage = StorageLocal
	}
}
