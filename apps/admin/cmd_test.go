package main

import (
	"context"
	"testing"

	"github.com/buildbytes/lms/core"
	"github.com/buildbytes/lms/core/user"
	emailsvc "github.com/buildbytes/lms/services/email"
	inmemdb "github.com/buildbytes/lms/storage/database/inmem"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	conf := &core.Config{TestMode: true, AppName: "BuildBytes LMS"}
	return &commandLine{
		usrSvc: user.NewService(inmemdb.NewUserRepository(inmemdb.NewDB()), emailsvc.NewConsoleService(conf), conf),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	password   string
	wantErr    error
	wantErrStr string
}

func Test_commandLine_addmentor(t *testing.T) {
	cli := setup(t)

	existing, err := cli.usrSvc.Register(context.Background(), user.NewUser{
		Name: "Hero", Email: "hero@test.cd", Password: "LePassword1", Role: user.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"lol"}, wantErr: errHelp},
		{name: "missing flags", args: []string{"addmentor"}, wantErr: errHelp},
		{name: "missing email", args: []string{"addmentor", "-name", "Awe"}, wantErr: errHelp},
		{name: "empty password", args: []string{"addmentor", "-name", "Awe", "-email", "awe@test.cd"}, wantErr: errHelp},
		{
			name: "weak password", args: []string{"addmentor", "-name", "Awe", "-email", "awe@test.cd"},
			password: "weak", wantErrStr: "must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one number",
		},
		{name: "ok", args: []string{"addmentor", "-name", "Awe", "-email", "awe@test.cd"}, password: "LePassword1"},
		{name: "existing user is promoted", args: []string{"addmentor", "-name", "Hero", "-email", "hero@test.cd"}, password: "LePassword1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readPasswordFunc = func(fd int) ([]byte, error) { return []byte(tt.password), nil }

			args := append([]string{"admin"}, tt.args...)
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v; wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil {
					t.Fatal("cli.run() expected an error")
				}
				if vErr, ok := err.(*core.ValidationError); !ok || len(vErr.Fields) == 0 || vErr.Fields[0].Error != tt.wantErrStr {
					t.Errorf("cli.run() error = %v; wantErrStr %s", err, tt.wantErrStr)
				}
			default:
				if err != nil {
					t.Fatalf("cli.run() error = %v", err)
				}
			}
		})
	}

	t.Run("roles landed", func(t *testing.T) {
		for _, email := range []string{"awe@test.cd", "hero@test.cd"} {
			usr, err := cli.usrSvc.GetByEmail(context.Background(), email)
			if err != nil {
				t.Fatalf("GetByEmail(%s) error = %v", email, err)
			}
			if !usr.IsMentor() {
				t.Errorf("%s role = %v; want %v", email, usr.Role, user.RoleMentor)
			}
		}
		// promotion retains the original account
		usr, err := cli.usrSvc.GetByEmail(context.Background(), "hero@test.cd")
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}
		if usr.ID != existing.ID {
			t.Errorf("promotion replaced the account: %v != %v", usr.ID, existing.ID)
		}
	})
}

func Test_commandLine_setrole(t *testing.T) {
	cli := setup(t)

	if _, err := cli.usrSvc.Register(context.Background(), user.NewUser{
		Name: "Hero", Email: "hero@test.cd", Password: "LePassword1", Role: user.RoleStudent,
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []cliTest{
		{name: "missing flags", args: []string{"setrole"}, wantErr: errHelp},
		{name: "missing role", args: []string{"setrole", "-email", "hero@test.cd"}, wantErr: errHelp},
		{name: "unknown user", args: []string{"setrole", "-email", "who@test.cd", "-role", "mentor"}, wantErrStr: "user not found"},
		{name: "unknown role", args: []string{"setrole", "-email", "hero@test.cd", "-role", "admin"}, wantErrStr: "must be either 'mentor' or 'student'"},
		{name: "ok", args: []string{"setrole", "-email", "hero@test.cd", "-role", "mentor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"admin"}, tt.args...)
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v; wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil {
					t.Fatal("cli.run() expected an error")
				}
			default:
				if err != nil {
					t.Fatalf("cli.run() error = %v", err)
				}
			}
		})
	}

	usr, err := cli.usrSvc.GetByEmail(context.Background(), "hero@test.cd")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if !usr.IsMentor() {
		t.Errorf("role = %v; want %v", usr.Role, user.RoleMentor)
	}
}
