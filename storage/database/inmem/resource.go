package inmemdb

import (
	"context"

	"github.com/buildbytes/lms/core/resource"
)

type resourceRepository struct {
	db *DB
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *DB) *resourceRepository {
	return &resourceRepository{db: db}
}

func (repo *resourceRepository) CreateResource(_ context.Context, res resource.Resource) (resource.Resource, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.resources[res.ID] = &res
	return res, nil
}

func (repo *resourceRepository) GetResourceByID(_ context.Context, id string) (resource.Resource, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if res, ok := repo.db.resources[id]; ok {
		return *res, nil
	}
	return resource.Resource{}, resource.ErrNotFound
}

func (repo *resourceRepository) FilterResources(_ context.Context, filter resource.QueryFilter) ([]resource.Resource, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ress := make([]resource.Resource, 0, len(repo.db.resources))
	for _, res := range repo.db.resources {
		if filter.ProjectID != "" && res.ProjectID != filter.ProjectID {
			continue
		}
		ress = append(ress, *res)
	}
	return ress, nil
}

func (repo *resourceRepository) UpdateResource(_ context.Context, id string, ur resource.UpdateResource) (resource.Resource, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	res, ok := repo.db.resources[id]
	if !ok {
		return resource.Resource{}, resource.ErrNotFound
	}
	if ur.Title != nil {
		res.Title = *ur.Title
	}
	if ur.Description != nil {
		res.Description = *ur.Description
	}
	if ur.URL != nil {
		res.URL = *ur.URL
	}
	return *res, nil
}

func (repo *resourceRepository) DeleteResource(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.resources[id]; !ok {
		return resource.ErrNotFound
	}
	delete(repo.db.resources, id)
	return nil
}
