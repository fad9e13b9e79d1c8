package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildbytes/lms/core/submission"
)

type submissionRepository struct {
	coll *mongo.Collection
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *mongo.Database) *submissionRepository {
	return &submissionRepository{coll: db.Collection("submissions")}
}

func (repo *submissionRepository) CreateSubmission(ctx context.Context, sub submission.Submission) (submission.Submission, error) {
	if _, err := repo.coll.InsertOne(ctx, sub); err != nil {
		return submission.Submission{}, errors.Wrap(err, "inserting submission")
	}
	return sub, nil
}

func (repo *submissionRepository) GetSubmissionByID(ctx context.Context, id string) (submission.Submission, error) {
	var sub submission.Submission
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, errors.Wrap(err, "finding submission")
	}
	return sub, nil
}

func (repo *submissionRepository) FilterSubmissions(ctx context.Context, filter submission.QueryFilter) ([]submission.Submission, error) {
	query := bson.M{}
	if filter.TaskID != "" {
		query["task_id"] = filter.TaskID
	}
	if len(filter.TaskIDs) > 0 {
		query["task_id"] = bson.M{"$in": filter.TaskIDs}
	}
	if filter.StudentID != "" {
		query["student_id"] = filter.StudentID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cursor, err := repo.coll.Find(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	subs := make([]submission.Submission, 0)
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, errors.Wrap(err, "decoding submissions")
	}
	return subs, nil
}

func (repo *submissionRepository) ReviewSubmission(ctx context.Context, id string, sub submission.Submission) (submission.Submission, error) {
	fields := bson.M{
		"feedback":    sub.Feedback,
		"status":      sub.Status,
		"reviewed_by": sub.ReviewedBy,
		"reviewed_at": sub.ReviewedAt,
	}
	if sub.Grade != nil {
		fields["grade"] = *sub.Grade
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "reviewing submission")
	}
	if res.MatchedCount == 0 {
		return submission.Submission{}, submission.ErrNotFound
	}
	return repo.GetSubmissionByID(ctx, id)
}
