// Package progress aggregates task and submission state into dashboard
// statistics and per-project progress reports.
package progress

import (
	"context"

	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/submission"
	"github.com/buildbytes/lms/core/user"
)

type (
	MentorStats struct {
		TotalCategories int64     `json:"total_categories"`
		TotalProjects   int64     `json:"total_projects"`
		TotalStudents   int64     `json:"total_students"`
		UserRole        user.Role `json:"user_role"`
	}

	StudentStats struct {
		AssignedProjects int64     `json:"assigned_projects"`
		CompletedTasks   int64     `json:"completed_tasks"`
		UserRole         user.Role `json:"user_role"`
	}

	StudentProgress struct {
		StudentID       string  `json:"student_id"`
		TotalTasks      int     `json:"total_tasks"`
		Approved        int     `json:"approved"`
		Submitted       int     `json:"submitted"`
		NeedsRevision   int     `json:"needs_revision"`
		PercentComplete float64 `json:"percent_complete"`
	}

	ProjectProgress struct {
		ProjectID string            `json:"project_id"`
		Students  []StudentProgress `json:"students"`
	}

	// CourseDirectory is the slice of the course service this package needs.
	CourseDirectory interface {
		CountCategories(ctx context.Context) (int64, error)
		CountProjects(ctx context.Context, filter course.ProjectFilter) (int64, error)
		CountTasks(ctx context.Context, filter course.TaskFilter) (int64, error)
		FilterProjects(ctx context.Context, filter course.ProjectFilter) ([]course.Project, error)
		FilterTasks(ctx context.Context, filter course.TaskFilter) ([]course.Task, error)
		GetProject(ctx context.Context, id string) (course.Project, error)
	}

	// SubmissionDirectory is the slice of the submission service this
	// package needs.
	SubmissionDirectory interface {
		Filter(ctx context.Context, filter submission.QueryFilter) ([]submission.Submission, error)
	}

	// UserCounter is the slice of the user service this package needs.
	UserCounter interface {
		CountByRole(ctx context.Context, role user.Role) (int64, error)
	}

	Service struct {
		courses CourseDirectory
		subs    SubmissionDirectory
		users   UserCounter
	}
)

func NewService(courses CourseDirectory, subs SubmissionDirectory, users UserCounter) *Service {
	return &Service{courses: courses, subs: subs, users: users}
}

// MentorStats summarizes the whole platform for a mentor dashboard.
func (svc *Service) MentorStats(ctx context.Context) (MentorStats, error) {
	categories, err := svc.courses.CountCategories(ctx)
	if err != nil {
		return MentorStats{}, err
	}
	projects, err := svc.courses.CountProjects(ctx, course.ProjectFilter{})
	if err != nil {
		return MentorStats{}, err
	}
	students, err := svc.users.CountByRole(ctx, user.RoleStudent)
	if err != nil {
		return MentorStats{}, err
	}
	return MentorStats{
		TotalCategories: categories,
		TotalProjects:   projects,
		TotalStudents:   students,
		UserRole:        user.RoleMentor,
	}, nil
}

// StudentStats summarizes a student's own workload: assigned projects and
// approved tasks within those projects.
func (svc *Service) StudentStats(ctx context.Context, studentID string) (StudentStats, error) {
	projects, err := svc.courses.FilterProjects(ctx, course.ProjectFilter{AssignedStudent: studentID})
	if err != nil {
		return StudentStats{}, err
	}

	var completed int64
	if len(projects) > 0 {
		ids := make([]string, 0, len(projects))
		for _, prj := range projects {
			ids = append(ids, prj.ID)
		}
		completed, err = svc.courses.CountTasks(ctx, course.TaskFilter{ProjectIDs: ids, Status: course.TaskApproved})
		if err != nil {
			return StudentStats{}, err
		}
	}
	return StudentStats{
		AssignedProjects: int64(len(projects)),
		CompletedTasks:   completed,
		UserRole:         user.RoleStudent,
	}, nil
}

// ProjectProgress reports, per assigned student, how far through the
// project's tasks they are based on their submissions.
func (svc *Service) ProjectProgress(ctx context.Context, projectID string) (ProjectProgress, error) {
	prj, err := svc.courses.GetProject(ctx, projectID)
	if err != nil {
		return ProjectProgress{}, err
	}
	tasks, err := svc.courses.FilterTasks(ctx, course.TaskFilter{ProjectID: projectID})
	if err != nil {
		return ProjectProgress{}, err
	}

	taskIDs := make([]string, 0, len(tasks))
	for _, tsk := range tasks {
		taskIDs = append(taskIDs, tsk.ID)
	}

	report := ProjectProgress{ProjectID: projectID, Students: make([]StudentProgress, 0, len(prj.AssignedStudents))}
	for _, sid := range prj.AssignedStudents {
		sp := StudentProgress{StudentID: sid, TotalTasks: len(tasks)}
		if len(taskIDs) > 0 {
			subs, err := svc.subs.Filter(ctx, submission.QueryFilter{StudentID: sid, TaskIDs: taskIDs})
			if err != nil {
				return ProjectProgress{}, err
			}
			// count each task once, by its latest submission
			latest := make(map[string]submission.Submission, len(subs))
			for _, sub := range subs {
				if prev, ok := latest[sub.TaskID]; !ok || sub.SubmittedAt.After(prev.SubmittedAt) {
					latest[sub.TaskID] = sub
				}
			}
			for _, sub := range latest {
				switch sub.Status {
				case submission.StatusApproved:
					sp.Approved++
				case submission.StatusNeedsRevision:
					sp.NeedsRevision++
				default:
					sp.Submitted++
				}
			}
		}
		if sp.TotalTasks > 0 {
			sp.PercentComplete = float64(sp.Approved) / float64(sp.TotalTasks) * 100
		}
		report.Students = append(report.Students, sp)
	}
	return report, nil
}
