package dto

// Rating is a pointer so 0 still satisfies required.
type CreateRatingRequest struct {
	Rating *float64 `json:"rating" binding:"required,gte=0,lte=5"`
}
