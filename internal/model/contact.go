package model

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	Base
	Name    string  `json:"name" db:"name"`
	Email   string  `json:"email" db:"email"`
	Phone   *string `json:"phone,omitempty" db:"phone"`
	Message string  `json:"message" db:"message"`
	Read    bool    `json:"is_read" db:"is_read"`
}

// CreateContactRequest represents contact form parameters
type CreateContactRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message" binding:"required"`
}
