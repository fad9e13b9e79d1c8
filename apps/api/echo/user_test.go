package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/buildbytes/lms/core/user"
	emailsvc "github.com/buildbytes/lms/services/email"
)

func Test_userApi_register(t *testing.T) {
	resetDB(t)
	createUser(t, "Taken", "taken@test.cd", "LePassword1", user.RoleStudent)

	payload := func(name, email, pwd, role string) []byte {
		return marchallObj(t, map[string]string{"name": name, "email": email, "password": pwd, "role": role})
	}

	tests := []httpTest{
		{
			name: "ok", body: payload("Awe", "awe@test.cd", "LePassword1", ""),
			wantCode: http.StatusCreated,
		},
		{
			name: "explicit mentor role", body: payload("Mentor", "mentor@test.cd", "LePassword1", "mentor"),
			wantCode: http.StatusCreated,
		},
		{
			name: "duplicate email", body: payload("Copy Cat", "taken@test.cd", "LePassword1", ""),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "a user with this email already exists"}),
		},
		{
			name: "case-variant email is a distinct key", body: payload("Taken Too", "TAKEN@test.cd", "LePassword1", ""),
			wantCode: http.StatusCreated,
		},
		{
			name: "unknown role", body: payload("Admin Wannabe", "admin@test.cd", "LePassword1", "admin"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "must be either 'mentor' or 'student'"}),
		},
		{
			name: "short password", body: payload("Shorty", "shorty@test.cd", "Ab1", ""),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "password without digits", body: payload("No Digits", "nodigits@test.cd", "LePassword", ""),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "missing email", body: payload("No Email", "", "LePassword1", ""),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/register", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code != http.StatusCreated {
				return
			}
			var resp LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshalling response: %v", err)
			}
			if resp.AccessToken == "" {
				t.Error("register() returned an empty access_token")
			}
			if resp.TokenType != "bearer" {
				t.Errorf("register() token_type = %q; want %q", resp.TokenType, "bearer")
			}
			if claims, err := testAuth.verifyToken(resp.AccessToken); err != nil {
				t.Errorf("verifyToken() error = %v", err)
			} else if claims.UserID != resp.User.ID {
				t.Errorf("claims.UserID = %v; want %v", claims.UserID, resp.User.ID)
			}
		})
	}

	t.Run("welcome email sent", func(t *testing.T) {
		var found bool
		for _, msg := range emailsvc.SentMessages {
			for _, to := range msg.To {
				if to.Address == "awe@test.cd" {
					found = true
				}
			}
		}
		if !found {
			t.Error("no welcome email recorded for awe@test.cd")
		}
	})
}

func Test_userApi_login(t *testing.T) {
	resetDB(t)
	usr := createUser(t, "Awe", "awe@test.cd", "LePassword1", user.RoleStudent)

	payload := func(email, pwd string) []byte {
		return marchallObj(t, map[string]string{"email": email, "password": pwd})
	}
	failed := marchallObj(t, httpErr{Error: "invalid email or password"})

	tests := []httpTest{
		{name: "ok", body: payload("awe@test.cd", "LePassword1")},
		{name: "email casing must match", body: payload("AWE@Test.CD", "LePassword1"), wantCode: http.StatusUnauthorized, wantData: failed},
		{name: "unknown email", body: payload("who@test.cd", "LePassword1"), wantCode: http.StatusUnauthorized, wantData: failed},
		{name: "wrong password", body: payload("awe@test.cd", "LePassword2"), wantCode: http.StatusUnauthorized, wantData: failed},
		{name: "missing password", body: payload("awe@test.cd", ""), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code != http.StatusOK {
				return
			}
			var resp LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshalling response: %v", err)
			}
			if resp.User.ID != usr.ID {
				t.Errorf("login() user = %v; want %v", resp.User.ID, usr.ID)
			}
			if resp.AccessToken == "" {
				t.Error("login() returned an empty access_token")
			}
		})
	}
}

func Test_userApi_query(t *testing.T) {
	resetDB(t)
	mentor := createUser(t, "Mentor", "mentor@test.cd", "LePassword1", user.RoleMentor)
	student := createUser(t, "Hero", "hero@test.cd", "LePassword1", user.RoleStudent)

	tests := []httpTest{
		{name: "auth required", path: "/api/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "mentor required", path: "/api/users", token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{name: "get all", path: "/api/users", token: getToken(t, mentor), extra: 2},
		{name: "role=student", path: "/api/users?role=student", token: getToken(t, mentor), extra: 1},
		{name: "role (unknown)", path: "/api/users?role=lol", token: getToken(t, mentor), extra: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if want, ok := tt.extra.(int); ok && rec.Code == http.StatusOK {
				var users []user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
					t.Fatalf("unmarshalling response: %v", err)
				}
				if len(users) != want {
					t.Errorf("query() returned %d users; want %d", len(users), want)
				}
			}
		})
	}
}

func Test_userApi_setRole(t *testing.T) {
	resetDB(t)
	mentor := createUser(t, "Mentor", "mentor@test.cd", "LePassword1", user.RoleMentor)
	student := createUser(t, "Hero", "hero@test.cd", "LePassword1", user.RoleStudent)

	payload := func(role string) []byte {
		return marchallObj(t, map[string]string{"role": role})
	}

	tests := []httpTest{
		{
			name: "auth required", path: "/api/users/" + student.ID + "/role", body: payload("mentor"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "mentor required", path: "/api/users/" + mentor.ID + "/role", body: payload("student"),
			token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "unknown role", path: "/api/users/" + student.ID + "/role", body: payload("admin"),
			token: getToken(t, mentor), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "must be either 'mentor' or 'student'"}),
		},
		{
			name: "unknown user", path: "/api/users/nope/role", body: payload("mentor"),
			token: getToken(t, mentor), wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "user not found"}),
		},
		{
			name: "promote", path: "/api/users/" + student.ID + "/role", body: payload("mentor"),
			token: getToken(t, mentor), wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.name == "promote" && rec.Code == http.StatusOK {
				var usr user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
					t.Fatalf("unmarshalling response: %v", err)
				}
				if usr.Role != user.RoleMentor {
					t.Errorf("setRole() role = %v; want %v", usr.Role, user.RoleMentor)
				}
			}
		})
	}
}
