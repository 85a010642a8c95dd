package events

import "mime/multipart"

// CreateEventPayload accepts both JSON and multipart bodies; the optional
// cover photo arrives as the "coverPhoto" form file.
type CreateEventPayload struct {
	Name      string                           `json:"name" form:"name" validate:"required,max=200"`
	AdminKey  string                           `json:"adminKey" form:"adminKey"`
	FormFiles map[string]*multipart.FileHeader `json:"-" form:"-"`
}

// DownloadQuery selects what goes into the zip. An explicit ids list takes
// precedence over recursive.
type DownloadQuery struct {
	IDs       string `query:"ids" json:"ids,omitempty"`
	Recursive bool   `query:"recursive" json:"recursive,omitempty"`
}
