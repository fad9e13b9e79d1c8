package submission

import (
	"time"

	"github.com/buildbytes/lms/core"
)

// Status is the review state of a submission.
type Status string

const (
	StatusSubmitted     Status = "submitted"
	StatusApproved      Status = "approved"
	StatusNeedsRevision Status = "needs_revision"
)

// Submission is a student's answer to a task. It belongs to exactly one
// task and exactly one student.
type Submission struct {
	ID          string     `bson:"id" json:"id"`
	TaskID      string     `bson:"task_id" json:"task_id"`
	StudentID   string     `bson:"student_id" json:"student_id"`
	Content     string     `bson:"content" json:"content"`
	SubmittedAt time.Time  `bson:"submitted_at" json:"submitted_at"` // UTC
	Feedback    string     `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Status      Status     `bson:"status" json:"status"`
	Grade       *int       `bson:"grade,omitempty" json:"grade,omitempty"`
	ReviewedBy  string     `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
}

type NewSubmission struct {
	TaskID  string `json:"task_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (ns *NewSubmission) Validate() error {
	ns.Content = core.CleanString(ns.Content)
	return core.Validate.Struct(ns)
}

// Review carries the fields a mentor may set when grading a submission.
type Review struct {
	Feedback string `json:"feedback"`
	Status   Status `json:"status" validate:"required,oneof=approved needs_revision"`
	Grade    *int   `json:"grade" validate:"omitempty,min=0,max=100"`
}

func (r *Review) Validate() error {
	r.Feedback = core.CleanString(r.Feedback)
	return core.Validate.Struct(r)
}

type QueryFilter struct {
	TaskID    string `query:"task_id"`
	StudentID string
	TaskIDs   []string
	Status    Status
}
