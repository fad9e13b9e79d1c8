package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/progress"
	"github.com/buildbytes/lms/core/submission"
	"github.com/buildbytes/lms/core/user"
)

func Test_progressApi_dashboardStats(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	mentor := createUser(t, "Mentor", "mentor@test.cd", "LePassword1", user.RoleMentor)
	student := createUser(t, "Hero", "hero@test.cd", "LePassword1", user.RoleStudent)
	createUser(t, "Other", "other@test.cd", "LePassword1", user.RoleStudent)

	cat, err := courseSvc.CreateCategory(ctx, course.NewCategory{Name: "Go", Description: "Backend track", Color: "#3B82F6"}, mentor.ID)
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	prj, err := courseSvc.CreateProject(ctx, course.NewProject{
		Title: "API", Description: "Build it", SubjectCategoryID: cat.ID, AssignedStudents: []string{student.ID},
	}, mentor.ID)
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	tsk, err := courseSvc.CreateTask(ctx, course.NewTask{ProjectID: prj.ID, Title: "Routing", Description: "Wire the routes"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	sub, err := subSvc.Create(ctx, submission.NewSubmission{TaskID: tsk.ID, Content: "done"}, student.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err = subSvc.Review(ctx, sub.ID, submission.Review{Status: submission.StatusApproved}, mentor.ID); err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	tests := []httpTest{
		{name: "auth required", path: "/api/dashboard/stats", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "mentor shape", path: "/api/dashboard/stats", token: getToken(t, mentor),
			wantData: marchallObj(t, progress.MentorStats{
				TotalCategories: 1, TotalProjects: 1, TotalStudents: 2, UserRole: user.RoleMentor,
			}),
		},
		{
			name: "student shape", path: "/api/dashboard/stats", token: getToken(t, student),
			wantData: marchallObj(t, progress.StudentStats{
				AssignedProjects: 1, CompletedTasks: 1, UserRole: user.RoleStudent,
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_projectApi_progress(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	mentor := createUser(t, "Mentor", "mentor@test.cd", "LePassword1", user.RoleMentor)
	student := createUser(t, "Hero", "hero@test.cd", "LePassword1", user.RoleStudent)
	lagging := createUser(t, "Lag", "lag@test.cd", "LePassword1", user.RoleStudent)
	outsider := createUser(t, "Out", "out@test.cd", "LePassword1", user.RoleStudent)

	cat, err := courseSvc.CreateCategory(ctx, course.NewCategory{Name: "Go", Description: "Backend track", Color: "#3B82F6"}, mentor.ID)
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	prj, err := courseSvc.CreateProject(ctx, course.NewProject{
		Title: "API", Description: "Build it", SubjectCategoryID: cat.ID,
		AssignedStudents: []string{student.ID, lagging.ID},
	}, mentor.ID)
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	tsk1, err := courseSvc.CreateTask(ctx, course.NewTask{ProjectID: prj.ID, Title: "Routing", Description: "Wire the routes"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err = courseSvc.CreateTask(ctx, course.NewTask{ProjectID: prj.ID, Title: "Storage", Description: "Wire the DB"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	sub, err := subSvc.Create(ctx, submission.NewSubmission{TaskID: tsk1.ID, Content: "done"}, student.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err = subSvc.Review(ctx, sub.ID, submission.Review{Status: submission.StatusApproved}, mentor.ID); err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	tests := []httpTest{
		{
			name: "outsider student", path: "/api/projects/" + prj.ID + "/progress", token: getToken(t, outsider),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "mentor", path: "/api/projects/" + prj.ID + "/progress", token: getToken(t, mentor),
			wantData: marchallObj(t, progress.ProjectProgress{
				ProjectID: prj.ID,
				Students: []progress.StudentProgress{
					{StudentID: student.ID, TotalTasks: 2, Approved: 1, PercentComplete: 50},
					{StudentID: lagging.ID, TotalTasks: 2},
				},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
