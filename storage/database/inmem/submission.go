package inmemdb

import (
	"context"

	"github.com/buildbytes/lms/core/submission"
)

type submissionRepository struct {
	db *DB
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) *submissionRepository {
	return &submissionRepository{db: db}
}

func (repo *submissionRepository) CreateSubmission(_ context.Context, sub submission.Submission) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.submissions[sub.ID] = &sub
	return sub, nil
}

func (repo *submissionRepository) GetSubmissionByID(_ context.Context, id string) (submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sub, ok := repo.db.submissions[id]; ok {
		return *sub, nil
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (repo *submissionRepository) FilterSubmissions(_ context.Context, filter submission.QueryFilter) ([]submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := make([]submission.Submission, 0, len(repo.db.submissions))
	for _, sub := range repo.db.submissions {
		if filter.TaskID != "" && sub.TaskID != filter.TaskID {
			continue
		}
		if filter.StudentID != "" && sub.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && sub.Status != filter.Status {
			continue
		}
		if len(filter.TaskIDs) > 0 {
			var found bool
			for _, id := range filter.TaskIDs {
				if sub.TaskID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

func (repo *submissionRepository) ReviewSubmission(_ context.Context, id string, sub submission.Submission) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	stored, ok := repo.db.submissions[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	stored.Feedback = sub.Feedback
	stored.Status = sub.Status
	stored.Grade = sub.Grade
	stored.ReviewedBy = sub.ReviewedBy
	stored.ReviewedAt = sub.ReviewedAt
	return *stored, nil
}
