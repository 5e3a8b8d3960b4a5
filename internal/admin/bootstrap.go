// Package admin implements the terminal flow that creates the first
// administrator account, or promotes an existing account to admin.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/dmitrijs2005/recrutement/internal/server/services"
	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 6

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrPasswordTooShort  = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrPasswordsMismatch = errors.New("passwords do not match")
	ErrNameRequired      = errors.New("nom and prenom are required")
)

var validate = validator.New()

type Bootstrapper interface {
	BootstrapAdmin(ctx context.Context, in services.RegisterInput) (*models.User, bool, error)
}

type App struct {
	users  Bootstrapper
	reader *bufio.Reader
	out    io.Writer
	fd     int
}

// NewApp reads answers from in and the password from the terminal behind fd.
func NewApp(users Bootstrapper, in io.Reader, out io.Writer, fd int) *App {
	return &App{users: users, reader: bufio.NewReader(in), out: out, fd: fd}
}

func (a *App) prompt() (services.RegisterInput, error) {
	var in services.RegisterInput

	email, err := GetSimpleText(a.reader, "Enter admin email", a.out)
	if err != nil {
		return in, err
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return in, ErrInvalidEmail
	}
	in.Email = email

	if in.Nom, err = GetSimpleText(a.reader, "Enter nom", a.out); err != nil {
		return in, err
	}
	if in.Prenom, err = GetSimpleText(a.reader, "Enter prenom", a.out); err != nil {
		return in, err
	}
	if in.Nom == "" || in.Prenom == "" {
		return in, ErrNameRequired
	}

	pw, err := GetPassword(a.fd, "Enter password", a.out)
	if err != nil {
		return in, err
	}
	if len(pw) < minPasswordLength {
		return in, ErrPasswordTooShort
	}
	confirm, err := GetPassword(a.fd, "Repeat password", a.out)
	if err != nil {
		return in, err
	}
	if pw != confirm {
		return in, ErrPasswordsMismatch
	}
	in.Password = pw
	in.Role = models.RoleAdmin

	return in, nil
}

// Run prompts for the account details and creates or promotes the admin.
// An existing account keeps its password and names.
func (a *App) Run(ctx context.Context) error {
	in, err := a.prompt()
	if err != nil {
		return err
	}

	u, created, err := a.users.BootstrapAdmin(ctx, in)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(a.out, "Administrator %s created (id %s)\n", u.Email, u.ID)
	} else {
		fmt.Fprintf(a.out, "User %s promoted to administrator (id %s)\n", u.Email, u.ID)
	}
	return nil
}
