package folders

// CreateFolderPayload creates a subfolder under the path's parent id.
type CreateFolderPayload struct {
	Name     string `json:"name" form:"name" validate:"required,max=200"`
	AdminKey string `json:"adminKey" form:"adminKey"`
}

// RenamePayload renames the node in the path.
type RenamePayload struct {
	Name     string `json:"name" form:"name" validate:"required,max=200"`
	AdminKey string `json:"adminKey" form:"adminKey"`
}

// DeletePayload deletes the node in the path.
type DeletePayload struct {
	AdminKey string `json:"adminKey" form:"adminKey"`
}
