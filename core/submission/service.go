package submission

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/buildbytes/lms/core/course"
)

var (
	// errors
	ErrNotFound = errors.New("submission not found")
)

type (
	Repository interface {
		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		GetSubmissionByID(ctx context.Context, id string) (Submission, error)
		FilterSubmissions(ctx context.Context, filter QueryFilter) ([]Submission, error)
		ReviewSubmission(ctx context.Context, id string, sub Submission) (Submission, error)
	}

	// TaskDirectory is the slice of the course service this package needs.
	TaskDirectory interface {
		GetTask(ctx context.Context, id string) (course.Task, error)
		SetTaskStatus(ctx context.Context, id string, status course.TaskStatus) error
	}

	Service struct {
		repo  Repository
		tasks TaskDirectory
	}
)

func NewService(repo Repository, tasks TaskDirectory) *Service {
	return &Service{repo: repo, tasks: tasks}
}

// Create records a student's submission for a task and moves the task to
// the submitted state. The authorization contract guarantees studentID is
// the authenticated caller.
func (svc *Service) Create(ctx context.Context, ns NewSubmission, studentID string) (Submission, error) {
	if _, err := svc.tasks.GetTask(ctx, ns.TaskID); err != nil {
		return Submission{}, err
	}

	sub := Submission{
		ID:          uuid.New().String(),
		TaskID:      ns.TaskID,
		StudentID:   studentID,
		Content:     ns.Content,
		SubmittedAt: time.Now().UTC(),
		Status:      StatusSubmitted,
	}
	sub, err := svc.repo.CreateSubmission(ctx, sub)
	if err != nil {
		return Submission{}, err
	}
	if err := svc.tasks.SetTaskStatus(ctx, sub.TaskID, course.TaskSubmitted); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Submission, error) {
	return svc.repo.GetSubmissionByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Submission, error) {
	return svc.repo.FilterSubmissions(ctx, filter)
}

// Review applies a mentor's verdict and mirrors it onto the task status so
// project progress and certificate eligibility stay in sync.
func (svc *Service) Review(ctx context.Context, id string, rev Review, reviewerID string) (Submission, error) {
	sub, err := svc.repo.GetSubmissionByID(ctx, id)
	if err != nil {
		return Submission{}, err
	}

	now := time.Now().UTC()
	sub.Feedback = rev.Feedback
	sub.Status = rev.Status
	sub.Grade = rev.Grade
	sub.ReviewedBy = reviewerID
	sub.ReviewedAt = &now

	sub, err = svc.repo.ReviewSubmission(ctx, id, sub)
	if err != nil {
		return Submission{}, err
	}

	var taskStatus course.TaskStatus
	switch rev.Status {
	case StatusApproved:
		taskStatus = course.TaskApproved
	case StatusNeedsRevision:
		taskStatus = course.TaskNeedsRevision
	}
	if taskStatus != "" {
		if err := svc.tasks.SetTaskStatus(ctx, sub.TaskID, taskStatus); err != nil {
			return Submission{}, err
		}
	}
	return sub, nil
}
