package model

// Service is a bookable service offering. The booking engine treats it as
// a read-only snapshot: price and duration are frozen into line items at
// booking time.
type Service struct {
	Base
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	Category    string  `json:"category" db:"category"`
	Price       float64 `json:"price" db:"price"`
	Duration    int     `json:"duration" db:"duration"`
	ImageURL    *string `json:"image_url,omitempty" db:"image_url"`
}

// CreateServiceRequest represents service creation parameters
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	ImageURL    *string `json:"image_url"`
}

// UpdateServiceRequest represents service update parameters
type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Duration    *int     `json:"duration" binding:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url"`
}
