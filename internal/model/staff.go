package model

// Staff represents a stylist in the directory. Working hours are a side
// directory only; the booking engine never enforces them.
type Staff struct {
	Base
	Name            string         `json:"name" db:"name"`
	Email           string         `json:"email" db:"email"`
	Phone           *string        `json:"phone,omitempty" db:"phone"`
	Specialization  *string        `json:"specialization,omitempty" db:"specialization"`
	ExperienceYears int            `json:"experience_years" db:"experience_years"`
	Bio             *string        `json:"bio,omitempty" db:"bio"`
	Active          bool           `json:"is_active" db:"is_active"`
	WorkingHours    []*WorkingHour `json:"working_hours,omitempty" db:"-"`
}

// WorkingHour is one weekday entry of a staff member's schedule.
type WorkingHour struct {
	ID        string `json:"id" db:"id"`
	StaffID   string `json:"staff_id" db:"staff_id"`
	DayOfWeek int    `json:"day_of_week" db:"day_of_week"`
	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`
}

// CreateStaffRequest represents staff creation parameters
type CreateStaffRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           *string `json:"phone"`
	Specialization  *string `json:"specialization"`
	ExperienceYears int     `json:"experience_years" binding:"gte=0"`
	Bio             *string `json:"bio"`
}

// UpdateStaffRequest represents staff update parameters
type UpdateStaffRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone"`
	Specialization  *string `json:"specialization"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,gte=0"`
	Bio             *string `json:"bio"`
	Active          *bool   `json:"is_active"`
}
