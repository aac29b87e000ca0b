package dto

type CreateLocationRequest struct {
	GooglePlaceID   string  `json:"google_place_id" binding:"required"`
	Name            string  `json:"name" binding:"required,min=2,max=150"`
	Address         string  `json:"address" binding:"required"`
	PrimaryCategory string  `json:"primary_category"`
	Website         *string `json:"website" binding:"omitempty,url"`
}

type UpdateLocationRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=150"`
	Address         string  `json:"address" binding:"required"`
	PrimaryCategory string  `json:"primary_category"`
	Website         *string `json:"website" binding:"omitempty,url"`
}
