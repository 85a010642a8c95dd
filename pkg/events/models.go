package events

// Event is a top-level gallery folder as rendered to clients. FolderIcon is
// only populated when no cover image could be resolved.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	CoverID     string `json:"coverId,omitempty"`
	FolderIcon  string `json:"folderIcon,omitempty"`
}

// Photo is a direct image child of an event folder. All byte-serving URLs go
// through the image proxy so clients never talk to the storage backend.
type Photo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
	DownloadURL  string `json:"downloadUrl"`
}
