package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildbytes/lms/core/certificate"
)

type certificateRepository struct {
	coll *mongo.Collection
}

var _ certificate.Repository = (*certificateRepository)(nil) // interface compliance check

func NewCertificateRepository(db *mongo.Database) *certificateRepository {
	return &certificateRepository{coll: db.Collection("certificates")}
}

func (repo *certificateRepository) CreateCertificate(ctx context.Context, cert certificate.Certificate) (certificate.Certificate, error) {
	if _, err := repo.coll.InsertOne(ctx, cert); err != nil {
		return certificate.Certificate{}, errors.Wrap(err, "inserting certificate")
	}
	return cert, nil
}

func (repo *certificateRepository) GetCertificateByID(ctx context.Context, id string) (certificate.Certificate, error) {
	var cert certificate.Certificate
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&cert); err != nil {
		if err == mongo.ErrNoDocuments {
			return certificate.Certificate{}, certificate.ErrNotFound
		}
		return certificate.Certificate{}, errors.Wrap(err, "finding certificate")
	}
	return cert, nil
}

func (repo *certificateRepository) GetCertificateByStudentAndProject(ctx context.Context, studentID, projectID string) (certificate.Certificate, error) {
	var cert certificate.Certificate
	filter := bson.M{"student_id": studentID, "project_id": projectID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&cert); err != nil {
		if err == mongo.ErrNoDocuments {
			return certificate.Certificate{}, certificate.ErrNotFound
		}
		return certificate.Certificate{}, errors.Wrap(err, "finding certificate")
	}
	return cert, nil
}

func (repo *certificateRepository) FilterCertificates(ctx context.Context, filter certificate.QueryFilter) ([]certificate.Certificate, error) {
	query := bson.M{}
	if filter.StudentID != "" {
		query["student_id"] = filter.StudentID
	}
	if filter.ProjectID != "" {
		query["project_id"] = filter.ProjectID
	}

	cursor, err := repo.coll.Find(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "querying certificates")
	}
	certs := make([]certificate.Certificate, 0)
	if err := cursor.All(ctx, &certs); err != nil {
		return nil, errors.Wrap(err, "decoding certificates")
	}
	return certs, nil
}
