package resource

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("resource not found")
)

type (
	Repository interface {
		CreateResource(ctx context.Context, res Resource) (Resource, error)
		GetResourceByID(ctx context.Context, id string) (Resource, error)
		FilterResources(ctx context.Context, filter QueryFilter) ([]Resource, error)
		UpdateResource(ctx context.Context, id string, ur UpdateResource) (Resource, error)
		DeleteResource(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nr NewResource, createdBy string) (Resource, error) {
	res := Resource{
		ID:          uuid.New().String(),
		Title:       nr.Title,
		Description: nr.Description,
		URL:         nr.URL,
		ProjectID:   nr.ProjectID,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateResource(ctx, res)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Resource, error) {
	return svc.repo.GetResourceByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Resource, error) {
	return svc.repo.FilterResources(ctx, filter)
}

func (svc *Service) Update(ctx context.Context, id string, ur UpdateResource) (Resource, error) {
	return svc.repo.UpdateResource(ctx, id, ur)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteResource(ctx, id)
}
