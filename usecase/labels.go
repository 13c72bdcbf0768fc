package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"main/dto"
	"main/model"
	"main/repository"

	"github.com/google/uuid"
)

// LabelsRepository is the label store surface the service needs.
type LabelsRepository interface {
	CreateLabel(ctx context.Context, label *model.Label) error
	GetLabel(ctx context.Context, labelID string, userID string) (*model.Label, error)
	ListLabels(ctx context.Context, userID string) ([]*model.Label, error)
	UpdateLabel(ctx context.Context, labelID string, name *string, color *string) (*model.Label, error)
	DeleteLabel(ctx context.Context, labelID string) error
}

// LabelService is plain CRUD glue: labels are uncached and owner-scoped.
type LabelService struct {
	Labels LabelsRepository
}

func mapLabelErr(err error) error {
	if errors.Is(err, repository.ErrLabelNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *LabelService) Create(ctx context.Context, actorID string, req dto.CreateLabelRequest) (*model.Label, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: label name is required", ErrValidation)
	}

	label := &model.Label{
		ID:     uuid.New().String(),
		UserID: actorID,
		Name:   name,
		Color:  req.Color,
	}
	if err := s.Labels.CreateLabel(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

func (s *LabelService) Get(ctx context.Context, actorID string, labelID string) (*model.Label, error) {
	label, err := s.Labels.GetLabel(ctx, labelID, actorID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, ErrNotFound
	}
	return label, nil
}

func (s *LabelService) List(ctx context.Context, actorID string) ([]*model.Label, error) {
	return s.Labels.ListLabels(ctx, actorID)
}

func (s *LabelService) Update(ctx context.Context, actorID string, labelID string, req dto.UpdateLabelRequest) (*model.Label, error) {
	existing, err := s.Labels.GetLabel(ctx, labelID, actorID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: label name cannot be empty", ErrValidation)
		}
		req.Name = &name
	}

	label, err := s.Labels.UpdateLabel(ctx, labelID, req.Name, req.Color)
	if err != nil {
		return nil, mapLabelErr(err)
	}
	return label, nil
}

func (s *LabelService) Delete(ctx context.Context, actorID string, labelID string) error {
	existing, err := s.Labels.GetLabel(ctx, labelID, actorID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	return mapLabelErr(s.Labels.DeleteLabel(ctx, labelID))
}
