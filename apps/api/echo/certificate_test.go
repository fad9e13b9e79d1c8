package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/buildbytes/lms/core/certificate"
	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/submission"
	"github.com/buildbytes/lms/core/user"
	emailsvc "github.com/buildbytes/lms/services/email"
)

func Test_certificateApi_generate(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	mentor := createUser(t, "Mentor", "mentor@test.cd", "LePassword1", user.RoleMentor)
	student := createUser(t, "Hero", "hero@test.cd", "LePassword1", user.RoleStudent)
	outsider := createUser(t, "Out", "out@test.cd", "LePassword1", user.RoleStudent)

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

	payload := func(projectID, studentID string) []byte {
		return marchallObj(t, map[string]string{"project_id": projectID, "student_id": studentID})
	}

	t.Run("refused while tasks are unapproved", func(t *testing.T) {
		tt := httpTest{
			body: payload(prj.ID, student.ID), token: getToken(t, mentor), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "all project tasks must be approved before a certificate can be generated"}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/api/certificates", tt.token, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	// approve the only task
	sub, err := subSvc.Create(ctx, submission.NewSubmission{TaskID: tsk.ID, Content: "done"}, student.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err = subSvc.Review(ctx, sub.ID, submission.Review{Status: submission.StatusApproved}, mentor.ID); err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	tests := []httpTest{
		{
			name: "not assigned", body: payload(prj.ID, outsider.ID), token: getToken(t, mentor),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "student is not assigned to this project"}),
		},
		{
			name: "unknown project", body: payload("nope", student.ID), token: getToken(t, mentor),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "project not found"}),
		},
		{
			name: "student cannot claim for another", body: payload(prj.ID, outsider.ID), token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{name: "student self-claim", body: payload(prj.ID, ""), token: getToken(t, student), wantCode: http.StatusCreated},
		{
			name: "duplicate", body: payload(prj.ID, student.ID), token: getToken(t, mentor),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "a certificate for this student and project already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/certificates", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.name != "student self-claim" || rec.Code != http.StatusCreated {
				return
			}
			var cert certificate.Certificate
			if err := json.Unmarshal(rec.Body.Bytes(), &cert); err != nil {
				t.Fatalf("unmarshalling response: %v", err)
			}
			if cert.StudentName != student.Name || cert.ProjectTitle != prj.Title {
				t.Errorf("generate() snapshot = (%q, %q); want (%q, %q)", cert.StudentName, cert.ProjectTitle, student.Name, prj.Title)
			}

			var mailed bool
			for _, msg := range emailsvc.SentMessages {
				if strings.Contains(msg.Subject, "Certificate of completion") {
					mailed = true
				}
			}
			if !mailed {
				t.Error("no congratulation email recorded")
			}
		})
	}
}

func Test_certificateApi_queryAndRetrieve(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	mentor := createUser(t, "Mentor", "mentor@test.cd", "LePassword1", user.RoleMentor)
	student := createUser(t, "Hero", "hero@test.cd", "LePassword1", user.RoleStudent)
	other := createUser(t, "Other", "other@test.cd", "LePassword1", user.RoleStudent)

	cat, err := courseSvc.CreateCategory(ctx, course.NewCategory{Name: "Go", Description: "Backend track", Color: "#3B82F6"}, mentor.ID)
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	prj, err := courseSvc.CreateProject(ctx, course.NewProject{
		Title: "API", Description: "Build it", SubjectCategoryID: cat.ID, AssignedStudents: []string{student.ID, other.ID},
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

	cert, err := certSvc.Generate(ctx, student.ID, prj.ID, mentor.ID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	t.Run("query", func(t *testing.T) {
		for _, tc := range []struct {
			name  string
			token string
			want  int
		}{
			{"mentor sees all", getToken(t, mentor), 1},
			{"owner", getToken(t, student), 1},
			{"other student sees none", getToken(t, other), 0},
		} {
			t.Run(tc.name, func(t *testing.T) {
				req, rec := newAuthRequest(http.MethodGet, "/api/certificates", tc.token)
				app.ServeHTTP(rec, req)
				if rec.Code != http.StatusOK {
					t.Fatalf("code = %v; want 200", rec.Code)
				}
				var certs []certificate.Certificate
				if err := json.Unmarshal(rec.Body.Bytes(), &certs); err != nil {
					t.Fatalf("unmarshalling response: %v", err)
				}
				if len(certs) != tc.want {
					t.Errorf("got %d certificates; want %d", len(certs), tc.want)
				}
			})
		}
	})

	t.Run("retrieve", func(t *testing.T) {
		tests := []httpTest{
			{name: "owner", path: "/api/certificates/" + cert.ID, token: getToken(t, student), wantCode: http.StatusOK},
			{name: "any mentor", path: "/api/certificates/" + cert.ID, token: getToken(t, mentor), wantCode: http.StatusOK},
			{
				name: "other student", path: "/api/certificates/" + cert.ID, token: getToken(t, other),
				wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
			},
			{
				name: "unknown id", path: "/api/certificates/nope", token: getToken(t, mentor),
				wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "certificate not found"}),
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
				app.ServeHTTP(rec, req)
				checkCodeAndData(t, tt, rec)
			})
		}
	})
}
