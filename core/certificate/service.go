package certificate

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/buildbytes/lms/core"
	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("certificate not found")
	ErrExists   = errors.New("a certificate for this student and project already exists")

	errNotAssigned     = errors.New("student is not assigned to this project")
	errTasksunapproved = errors.New("all project tasks must be approved before a certificate can be generated")
)

type (
	Repository interface {
		CreateCertificate(ctx context.Context, cert Certificate) (Certificate, error)
		GetCertificateByID(ctx context.Context, id string) (Certificate, error)
		GetCertificateByStudentAndProject(ctx context.Context, studentID, projectID string) (Certificate, error)
		FilterCertificates(ctx context.Context, filter QueryFilter) ([]Certificate, error)
	}

	// CourseDirectory is the slice of the course service this package needs.
	CourseDirectory interface {
		GetProject(ctx context.Context, id string) (course.Project, error)
		CountTasks(ctx context.Context, filter course.TaskFilter) (int64, error)
	}

	// UserDirectory is the slice of the user service this package needs.
	UserDirectory interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	Service struct {
		repo    Repository
		courses CourseDirectory
		users   UserDirectory
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, courses CourseDirectory, users UserDirectory, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, courses: courses, users: users, mailSvc: mailSvc, conf: conf}
}

// Generate issues a completion certificate for a student on a project.
// The student must be assigned to the project, every task of the project
// must be approved, and the (student, project) pair must not already hold
// a certificate. No storage write happens before all checks pass.
func (svc *Service) Generate(ctx context.Context, studentID, projectID, issuedBy string) (Certificate, error) {
	prj, err := svc.courses.GetProject(ctx, projectID)
	if err != nil {
		return Certificate{}, err
	}
	if !prj.HasStudent(studentID) {
		return Certificate{}, core.NewValidationError(errNotAssigned)
	}

	student, err := svc.users.GetByID(ctx, studentID)
	if err != nil {
		return Certificate{}, err
	}

	total, err := svc.courses.CountTasks(ctx, course.TaskFilter{ProjectID: projectID})
	if err != nil {
		return Certificate{}, err
	}
	unapproved, err := svc.courses.CountTasks(ctx, course.TaskFilter{ProjectID: projectID, NotStatus: course.TaskApproved})
	if err != nil {
		return Certificate{}, err
	}
	if total == 0 || unapproved > 0 {
		return Certificate{}, core.NewValidationError(errTasksunapproved)
	}

	if _, err := svc.repo.GetCertificateByStudentAndProject(ctx, studentID, projectID); err == nil {
		return Certificate{}, core.NewConflictError(ErrExists)
	} else if err != ErrNotFound {
		return Certificate{}, err
	}

	cert := Certificate{
		ID:           uuid.New().String(),
		StudentID:    student.ID,
		StudentName:  student.Name,
		ProjectID:    prj.ID,
		ProjectTitle: prj.Title,
		IssuedBy:     issuedBy,
		IssuedAt:     time.Now().UTC(),
	}
	cert, err = svc.repo.CreateCertificate(ctx, cert)
	if err != nil {
		return Certificate{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: student.Name, Address: student.Email}},
		Subject: "Certificate of completion: " + cert.ProjectTitle,
		Body:    fmt.Sprintf("Congratulations %s!\n\nYou completed %q. Your certificate id is %s.", student.Name, cert.ProjectTitle, cert.ID),
	})
	return cert, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Certificate, error) {
	return svc.repo.GetCertificateByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Certificate, error) {
	return svc.repo.FilterCertificates(ctx, filter)
}
