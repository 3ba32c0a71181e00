package dto

type CreateCartoonRequest struct {
	Title              string  `json:"title" binding:"required"`
	Description        string  `json:"description"`
	ImageBackgroundURL string  `json:"image_background_url"`
	VideoURL           string  `json:"video_url" binding:"required"`
	CategoryCartoonID  *string `json:"category_cartoon_id,omitempty"`
}

type UpdateCartoonRequest struct {
	Title              *string `json:"title,omitempty"`
	Description        *string `json:"description,omitempty"`
	ImageBackgroundURL *string `json:"image_background_url,omitempty"`
	VideoURL           *string `json:"video_url,omitempty"`
	CategoryCartoonID  *string `json:"category_cartoon_id,omitempty"`
}
