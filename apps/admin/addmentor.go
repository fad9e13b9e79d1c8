package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core/user"
)

// addMentor creates a mentor account; an existing account with the same
// email is promoted instead.
func (cli *commandLine) addMentor(name, email, pwd string) error {
	ctx := context.Background()

	if usr, err := cli.usrSvc.GetByEmail(ctx, email); err == nil {
		_, err = cli.usrSvc.SetRole(ctx, usr.ID, user.RoleMentor)
		return errors.Wrap(err, "promoting existing user")
	} else if errors.Cause(err) != user.ErrNotFound {
		return err
	}

	nu := user.NewUser{
		Name:     name,
		Email:    email,
		Password: pwd,
		Role:     user.RoleMentor,
	}
	if err := nu.Validate(); err != nil {
		return err
	}
	_, err := cli.usrSvc.Register(ctx, nu)
	return errors.Wrap(err, "registering mentor")
}

// setRole changes an existing user's role.
func (cli *commandLine) setRole(email string, role user.Role) error {
	ctx := context.Background()

	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.SetRole(ctx, usr.ID, role)
	return errors.Wrap(err, "setting user role")
}
