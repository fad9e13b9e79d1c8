package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/user"
)

func Test_categoryApi_create(t *testing.T) {
	resetDB(t)
	mentor := createUser(t, "Mentor", "mentor@test.cd", "LePassword1", user.RoleMentor)
	student := createUser(t, "Hero", "hero@test.cd", "LePassword1", user.RoleStudent)

	payload := func(name, desc, color string) []byte {
		return marchallObj(t, map[string]string{"name": name, "description": desc, "color": color})
	}

	tests := []httpTest{
		{
			name: "auth required", body: payload("Go", "Backend track", ""),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "mentor required", body: payload("Go", "Backend track", ""), token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "missing name", body: payload("", "Backend track", ""), token: getToken(t, mentor),
			wantCode: http.StatusBadRequest,
		},
		{name: "ok", body: payload("Go", "Backend track", ""), token: getToken(t, mentor), wantCode: http.StatusCreated},
		{
			name: "custom color", body: payload("Rust", "Systems track", "#FF0000"),
			token: getToken(t, mentor), wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/subject-categories", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code != http.StatusCreated {
				return
			}
			var cat course.SubjectCategory
			if err := json.Unmarshal(rec.Body.Bytes(), &cat); err != nil {
				t.Fatalf("unmarshalling response: %v", err)
			}
			if cat.CreatedBy != mentor.ID {
				t.Errorf("create() created_by = %v; want %v", cat.CreatedBy, mentor.ID)
			}
			if tt.name == "ok" && cat.Color != "#3B82F6" {
				t.Errorf("create() color = %v; want default #3B82F6", cat.Color)
			}
			if tt.name == "custom color" && cat.Color != "#FF0000" {
				t.Errorf("create() color = %v; want #FF0000", cat.Color)
			}
		})
	}
}

func Test_categoryApi_updateAndDestroy(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	owner := createUser(t, "Owner", "owner@test.cd", "LePassword1", user.RoleMentor)
	otherMentor := createUser(t, "Other", "other@test.cd", "LePassword1", user.RoleMentor)
	student := createUser(t, "Hero", "hero@test.cd", "LePassword1", user.RoleStudent)

	cat, err := courseSvc.CreateCategory(ctx, course.NewCategory{Name: "Go", Description: "Backend track", Color: "#3B82F6"}, owner.ID)
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	busy, err := courseSvc.CreateCategory(ctx, course.NewCategory{Name: "Rust", Description: "Systems track", Color: "#3B82F6"}, owner.ID)
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if _, err := courseSvc.CreateProject(ctx, course.NewProject{
		Title: "CLI tool", Description: "Build a CLI", SubjectCategoryID: busy.ID,
	}, owner.ID); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	rename := marchallObj(t, map[string]string{"name": "Golang"})

	tests := []httpTest{
		{
			name: "update: owner only (student)", method: http.MethodPut, path: "/api/subject-categories/" + cat.ID,
			body: rename, token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "update: owner only (other mentor)", method: http.MethodPut, path: "/api/subject-categories/" + cat.ID,
			body: rename, token: getToken(t, otherMentor), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "update: unknown id", method: http.MethodPut, path: "/api/subject-categories/nope",
			body: rename, token: getToken(t, owner), wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "subject category not found"}),
		},
		{
			// 403 before 404: a student probing an unknown id learns nothing
			name: "update: unknown id as student", method: http.MethodPut, path: "/api/subject-categories/nope",
			body: rename, token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "update: ok", method: http.MethodPut, path: "/api/subject-categories/" + cat.ID,
			body: rename, token: getToken(t, owner), wantCode: http.StatusOK,
		},
		{
			name: "delete: blocked by projects", method: http.MethodDelete, path: "/api/subject-categories/" + busy.ID,
			token: getToken(t, owner), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "cannot delete category with associated projects"}),
		},
		{
			name: "delete: owner only", method: http.MethodDelete, path: "/api/subject-categories/" + cat.ID,
			token: getToken(t, otherMentor), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "delete: ok", method: http.MethodDelete, path: "/api/subject-categories/" + cat.ID,
			token: getToken(t, owner), wantCode: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.name == "update: ok" && rec.Code == http.StatusOK {
				var got course.SubjectCategory
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatalf("unmarshalling response: %v", err)
				}
				if got.Name != "Golang" {
					t.Errorf("update() name = %v; want Golang", got.Name)
				}
				if got.Description != cat.Description {
					t.Errorf("update() clobbered description: %v", got.Description)
				}
			}
		})
	}

	t.Run("dependency check leaves both sides intact", func(t *testing.T) {
		if _, err := courseSvc.GetCategory(ctx, busy.ID); err != nil {
			t.Errorf("busy category disappeared: %v", err)
		}
		prjs, err := courseSvc.FilterProjects(ctx, course.ProjectFilter{SubjectCategoryID: busy.ID})
		if err != nil {
			t.Fatalf("FilterProjects() error = %v", err)
		}
		if len(prjs) != 1 {
			t.Errorf("projects = %d; want 1", len(prjs))
		}
	})
}
