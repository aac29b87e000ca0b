package dto

type CreateReplyRequest struct {
	LocationID     string `json:"location_id" binding:"required,uuid"`
	GoogleReviewID string `json:"google_review_id" binding:"required"`
	ReviewerName   string `json:"reviewer_name"`
	ReviewRating   int    `json:"review_rating" binding:"omitempty,min=1,max=5"`
	Body           string `json:"body" binding:"required,min=2"`
}

type UpdateReplyRequest struct {
	Body string `json:"body" binding:"required,min=2"`
}

type ListRepliesQuery struct {
	LocationID string `form:"location_id" binding:"required,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=draft published"`
}
