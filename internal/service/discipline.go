package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

// DisciplineService manages sport disciplines.
type DisciplineService struct {
	repo repository.DisciplineStore
	now  func() time.Time
}

// NewDisciplineService creates a new DisciplineService.
func NewDisciplineService(repo repository.DisciplineStore) *DisciplineService {
	return &DisciplineService{repo: repo, now: time.Now}
}

func (s *DisciplineService) List(ctx context.Context) ([]model.Discipline, error) {
	return s.repo.List(ctx)
}

func (s *DisciplineService) Get(ctx context.Context, id string) (model.Discipline, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Discipline{}, notFoundAs(err, ErrDisciplineNotFound)
	}
	return *d, nil
}

func (s *DisciplineService) Create(ctx context.Context, req model.DisciplineRequest) (model.Discipline, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := model.Validate(req); err != nil {
		return model.Discipline{}, err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	d := model.Discipline{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, &d); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Discipline{}, ErrDisciplineExists
		}
		return model.Discipline{}, fmt.Errorf("create discipline: %w", err)
	}
	return d, nil
}

func (s *DisciplineService) Update(ctx context.Context, id string, req model.DisciplineRequest) (model.Discipline, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := model.Validate(req); err != nil {
		return model.Discipline{}, err
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Discipline{}, notFoundAs(err, ErrDisciplineNotFound)
	}

	d.Name = req.Name
	d.Description = req.Description
	d.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)

	if err := s.repo.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Discipline{}, ErrDisciplineExists
		}
		return model.Discipline{}, notFoundAs(err, ErrDisciplineNotFound)
	}
	return *d, nil
}

// Delete removes a discipline together with its events.
func (s *DisciplineService) Delete(ctx context.Context, id string) error {
	return notFoundAs(s.repo.Delete(ctx, id), ErrDisciplineNotFound)
}

// notFoundAs replaces repository.ErrNotFound with target and leaves other errors untouched.
func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
