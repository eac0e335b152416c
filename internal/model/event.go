package model

import "time"

// Event is a sporting event owned by the user who created it.
// OwnerID never changes after creation.
type Event struct {
	ID           string     `json:"id"`
	DisciplineID string     `json:"disciplineId"`
	OwnerID      string     `json:"ownerId"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	StartsAt     time.Time  `json:"startsAt"`
	EndsAt       *time.Time `json:"endsAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CreateEventRequest represents an event creation request.
type CreateEventRequest struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=1000"`
	Location    string     `json:"location" validate:"max=200"`
	StartsAt    time.Time  `json:"startsAt" validate:"required"`
	EndsAt      *time.Time `json:"endsAt" validate:"omitempty,gtefield=StartsAt"`
}

// UpdateEventRequest represents a partial event update. Nil fields are left unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Location    *string    `json:"location" validate:"omitempty,max=200"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

// Apply returns a copy of e with the non-nil fields of req applied.
func (req UpdateEventRequest) Apply(e Event) Event {
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.StartsAt != nil {
		e.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		ends := *req.EndsAt
		e.EndsAt = &ends
	}
	return e
}
