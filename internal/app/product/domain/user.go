package domain

import (
	"net/mail"
	"strings"
	"time"
)

// UserRole is the permission level of a user.
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleAdmin     UserRole = "admin"
	UserRoleModerator UserRole = "moderator"
)

// User owns products. The launch workflow only needs to know a user exists;
// the rest of the aggregate backs the user store.
type User struct {
	id        int64
	firstName string
	lastName  string
	email     string
	role      UserRole
	isActive  bool
	createdAt time.Time
}

// NewUser validates and builds an active user with the default role.
func NewUser(id int64, firstName, lastName, email string, now time.Time) (*User, error) {
	u := &User{
		id:        id,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     strings.TrimSpace(email),
		role:      UserRoleUser,
		isActive:  true,
		createdAt: now,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// ReconstructUser rebuilds a User from persisted state.
func ReconstructUser(id int64, firstName, lastName, email string, role UserRole, isActive bool, createdAt time.Time) *User {
	return &User{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		role:      role,
		isActive:  isActive,
		createdAt: createdAt,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Email() string        { return u.email }
func (u *User) Role() UserRole       { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) FullName() string {
	return u.firstName + " " + u.lastName
}

// HasAdminPrivileges reports whether the user is an admin or a moderator.
func (u *User) HasAdminPrivileges() bool {
	return u.role == UserRoleAdmin || u.role == UserRoleModerator
}

func (u *User) validate() error {
	if u.firstName == "" || u.lastName == "" || len(u.firstName) > 100 || len(u.lastName) > 100 {
		return ErrInvalidUserName
	}
	if len(u.email) > 256 {
		return ErrInvalidUserEmail
	}
	addr, err := mail.ParseAddress(u.email)
	if err != nil || addr.Address != u.email {
		return ErrInvalidUserEmail
	}
	return nil
}
