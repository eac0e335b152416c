package mongo

import (
	"strings"
	"time"

	"github.com/sportsboard/sportsboard-go/internal/model"
)

type userDocument struct {
	ID string `bson:"_id"`

	// Case-sensitive email as registered.
	Email string `bson:"email"`

	// Lowercased email, used for lookups and uniqueness.
	LoweredEmail string `bson:"lemail"`

	Name         string    `bson:"name"`
	Role         string    `bson:"role"`
	PasswordHash string    `bson:"pwhash"`
	Created      time.Time `bson:"c"`
	Updated      time.Time `bson:"u"`
}

func newUserDocument(u *model.User) userDocument {
	return userDocument{
		ID:           u.ID,
		Email:        u.Email,
		LoweredEmail: strings.ToLower(u.Email),
		Name:         u.Name,
		Role:         u.Role.String(),
		PasswordHash: u.PasswordHash,
		Created:      u.CreatedAt,
		Updated:      u.UpdatedAt,
	}
}

func (d userDocument) model() (*model.User, error) {
	role, err := model.ParseRole(d.Role)
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		Role:         role,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.Created,
		UpdatedAt:    d.Updated,
	}, nil
}

type disciplineDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	LoweredName string    `bson:"lname"`
	Description string    `bson:"desc"`
	Created     time.Time `bson:"c"`
	Updated     time.Time `bson:"u"`
}

func newDisciplineDocument(d *model.Discipline) disciplineDocument {
	return disciplineDocument{
		ID:          d.ID,
		Name:        d.Name,
		LoweredName: strings.ToLower(d.Name),
		Description: d.Description,
		Created:     d.CreatedAt,
		Updated:     d.UpdatedAt,
	}
}

func (d disciplineDocument) model() model.Discipline {
	return model.Discipline{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.Created,
		UpdatedAt:   d.Updated,
	}
}

type eventDocument struct {
	ID           string     `bson:"_id"`
	DisciplineID string     `bson:"discipline"`
	OwnerID      string     `bson:"owner"`
	Name         string     `bson:"name"`
	Description  string     `bson:"desc"`
	Location     string     `bson:"loc"`
	StartsAt     time.Time  `bson:"starts"`
	EndsAt       *time.Time `bson:"ends,omitempty"`
	Created      time.Time  `bson:"c"`
	Updated      time.Time  `bson:"u"`
}

func newEventDocument(e *model.Event) eventDocument {
	return eventDocument{
		ID:           e.ID,
		DisciplineID: e.DisciplineID,
		OwnerID:      e.OwnerID,
		Name:         e.Name,
		Description:  e.Description,
		Location:     e.Location,
		StartsAt:     e.StartsAt,
		EndsAt:       e.EndsAt,
		Created:      e.CreatedAt,
		Updated:      e.UpdatedAt,
	}
}

func (d eventDocument) model() model.Event {
	return model.Event{
		ID:           d.ID,
		DisciplineID: d.DisciplineID,
		OwnerID:      d.OwnerID,
		Name:         d.Name,
		Description:  d.Description,
		Location:     d.Location,
		StartsAt:     d.StartsAt,
		EndsAt:       d.EndsAt,
		CreatedAt:    d.Created,
		UpdatedAt:    d.Updated,
	}
}
