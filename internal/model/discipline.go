package model

import "time"

// Discipline is a sport discipline events are grouped under.
type Discipline struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DisciplineRequest is the body accepted when creating or replacing a discipline.
type DisciplineRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}
