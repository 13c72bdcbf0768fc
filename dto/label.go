package dto

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Color string `json:"color" binding:"max=50"`
}

type UpdateLabelRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}
