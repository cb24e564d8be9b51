// Package auth is a local sign-in stub. Any credentials that pass form
// validation are accepted; the signed-in user is remembered in the KV store.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"taskflow/internal/storage"
)

// UserKey holds the signed-in user.
const UserKey = "taskflow_user"

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// User is the signed-in identity.
type User struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Initials returns up to two upper-case initials of the user's name.
func (u User) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(u.Name) {
		if b.Len() >= 2 {
			break
		}
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// FirstName returns the first word of the user's name.
func (u User) FirstName() string {
	if f := strings.Fields(u.Name); len(f) > 0 {
		return f[0]
	}
	return ""
}

// Mode selects between the sign-in and sign-up forms.
type Mode int

const (
	SignIn Mode = iota
	SignUp
)

// Credentials is the submitted form.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// Validate applies the form rules. The name is only required on sign-up.
func Validate(mode Mode, c Credentials) error {
	var errs ValidationErrors
	if mode == SignUp && strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Msg: "Name is required."})
	}
	switch {
	case strings.TrimSpace(c.Email) == "":
		errs = append(errs, ValidationError{Field: "email", Msg: "Email is required."})
	case !emailPattern.MatchString(c.Email):
		errs = append(errs, ValidationError{Field: "email", Msg: "Please enter a valid email."})
	}
	switch {
	case c.Password == "":
		errs = append(errs, ValidationError{Field: "password", Msg: "Password is required."})
	case len(c.Password) < minPasswordLength:
		errs = append(errs, ValidationError{Field: "password", Msg: "Password must be at least 6 characters."})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DisplayName is the sign-up name, or the local part of the email on sign-in.
func DisplayName(mode Mode, c Credentials) string {
	if mode == SignUp {
		return strings.TrimSpace(c.Name)
	}
	local, _, _ := strings.Cut(c.Email, "@")
	if local == "" {
		return "User"
	}
	return local
}

// Session remembers the signed-in user in a KV store.
type Session struct {
	kv storage.KV
}

func NewSession(kv storage.KV) *Session {
	return &Session{kv: kv}
}

// Login validates the form and stores the resulting user.
func (s *Session) Login(ctx context.Context, mode Mode, c Credentials) (User, error) {
	if err := Validate(mode, c); err != nil {
		return User{}, err
	}
	u := User{Name: DisplayName(mode, c), Email: strings.TrimSpace(c.Email)}
	data, err := json.Marshal(u)
	if err != nil {
		return User{}, err
	}
	if err := s.kv.Set(ctx, UserKey, data); err != nil {
		return User{}, storage.PersistenceError{Op: "write", Key: UserKey, Err: err}
	}
	return u, nil
}

// Current returns the stored user. A missing or unreadable record means
// nobody is signed in.
func (s *Session) Current(ctx context.Context) (User, bool) {
	data, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return User{}, false
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil || u.Email == "" {
		return User{}, false
	}
	return u, true
}

// Logout forgets the stored user.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, UserKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return storage.PersistenceError{Op: "delete", Key: UserKey, Err: err}
	}
	return nil
}
