package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildbytes/lms/core/resource"
)

type resourceRepository struct {
	coll *mongo.Collection
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *mongo.Database) *resourceRepository {
	return &resourceRepository{coll: db.Collection("resources")}
}

func (repo *resourceRepository) CreateResource(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	if _, err := repo.coll.InsertOne(ctx, res); err != nil {
		return resource.Resource{}, errors.Wrap(err, "inserting resource")
	}
	return res, nil
}

func (repo *resourceRepository) GetResourceByID(ctx context.Context, id string) (resource.Resource, error) {
	var res resource.Resource
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return resource.Resource{}, resource.ErrNotFound
		}
		return resource.Resource{}, errors.Wrap(err, "finding resource")
	}
	return res, nil
}

func (repo *resourceRepository) FilterResources(ctx context.Context, filter resource.QueryFilter) ([]resource.Resource, error) {
	query := bson.M{}
	if filter.ProjectID != "" {
		query["project_id"] = filter.ProjectID
	}

	cursor, err := repo.coll.Find(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "querying resources")
	}
	ress := make([]resource.Resource, 0)
	if err := cursor.All(ctx, &ress); err != nil {
		return nil, errors.Wrap(err, "decoding resources")
	}
	return ress, nil
}

func (repo *resourceRepository) UpdateResource(ctx context.Context, id string, ur resource.UpdateResource) (resource.Resource, error) {
	fields := bson.M{}
	if ur.Title != nil {
		fields["title"] = *ur.Title
	}
	if ur.Description != nil {
		fields["description"] = *ur.Description
	}
	if ur.URL != nil {
		fields["url"] = *ur.URL
	}
	if len(fields) > 0 {
		res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
		if err != nil {
			return resource.Resource{}, errors.Wrap(err, "updating resource")
		}
		if res.MatchedCount == 0 {
			return resource.Resource{}, resource.ErrNotFound
		}
	}
	return repo.GetResourceByID(ctx, id)
}

func (repo *resourceRepository) DeleteResource(ctx context.Context, id string) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrap(err, "deleting resource")
	}
	if res.DeletedCount == 0 {
		return resource.ErrNotFound
	}
	return nil
}
