package certificate

import (
	"time"

	"github.com/buildbytes/lms/core"
)

// Certificate is a generated completion artifact, unique per
// (student, project) pair.
type Certificate struct {
	ID           string    `bson:"id" json:"id"`
	StudentID    string    `bson:"student_id" json:"student_id"`
	StudentName  string    `bson:"student_name" json:"student_name"`
	ProjectID    string    `bson:"project_id" json:"project_id"`
	ProjectTitle string    `bson:"project_title" json:"project_title"`
	IssuedBy     string    `bson:"issued_by" json:"issued_by"`
	IssuedAt     time.Time `bson:"issued_at" json:"issued_at"` // UTC
}

type GenerateRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
	// StudentID defaults to the caller; only mentors may set it to another
	// student.
	StudentID string `json:"student_id"`
}

func (gr *GenerateRequest) Validate() error {
	return core.Validate.Struct(gr)
}

type QueryFilter struct {
	StudentID string
	ProjectID string `query:"project_id"`
}
