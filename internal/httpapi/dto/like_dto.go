package dto

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}

type IsLikedResponse struct {
	IsLiked bool `json:"is_liked"`
}

type LikeCountResponse struct {
	Count int64 `json:"count"`
}
