package folders

// Item types as rendered in folder contents listings. Children that are
// neither folders nor images never appear.
const (
	TypeFolder = "folder"
	TypeImage  = "image"
)

// ContentItem is a typed direct child of a folder.
type ContentItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType"`
	CreatedTime string `json:"createdTime,omitempty"`
	Type        string `json:"type"`

	// Folder items only.
	CoverID    string `json:"coverId,omitempty"`
	FolderIcon string `json:"folderIcon,omitempty"`

	// Image items only.
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	DownloadURL  string `json:"downloadUrl,omitempty"`
}

// Folder is a newly created subfolder as rendered to clients.
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	FolderIcon  string `json:"folderIcon,omitempty"`
}
