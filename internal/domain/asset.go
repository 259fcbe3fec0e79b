package domain

import "time"

// Asset kinds.
const (
	AssetKindVideo = "video"
	AssetKindImage = "image"
)

// Asset is a stored binary produced by a generation job. StorageKey locates
// the file in the local store; URL is the public address handed to clients.
type Asset struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	JobID      string    `json:"jobId"`
	Kind       string    `json:"kind"`
	StorageKey string    `json:"-"`
	URL        string    `json:"url"`
	MIMEType   string    `json:"mimeType"`
	Bytes      int       `json:"bytes"`
	SourceURI  string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
