package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/buildbytes/lms/core"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleMentor  Role = "mentor"
	RoleStudent Role = "student"
)

var AllRoles = []Role{RoleMentor, RoleStudent}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleMentor, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Role         Role      `bson:"role" json:"role"`
	PasswordHash []byte    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"` // UTC
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsMentor() bool  { return u.Role == RoleMentor }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role"`
}

func (nu *NewUser) Validate() error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email)
	if nu.Role == "" {
		nu.Role = RoleStudent
	}

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	if !nu.Role.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "role", Error: invalidRoleText})
	}
	if !ValidatePassword(nu.Password) {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: pwdPolicyText})
	}
	return nil
}

type QueryFilter struct {
	Role Role `query:"role"`
}
