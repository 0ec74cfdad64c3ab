package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/localboost/internal/client/models"
)

// errNotSignedIn is returned by commands that need a session.
var errNotSignedIn = errors.New("not signed in")

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register collects the signup form, validates it locally and creates the
// account. On success the home screen is shown.
func (a *App) Register(ctx context.Context) error {
	a.println(titleStyle.Render("Create Account"))
	a.println(subtleStyle.Render("Start boosting your business today"))

	name, err := getSimpleText(a.reader, "Full Name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone Number", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	reg := models.Registration{
		Name:     name,
		Email:    normalizeEmail(email),
		Phone:    phone,
		Password: password,
	}
	if err := validateRegistration(reg); err != nil {
		a.fail("Sign Up Failed", err, "")
		return err
	}

	if err := a.sessions.Register(ctx, reg); err != nil {
		a.fail("Sign Up Failed", err, "Something went wrong. Please try again.")
		return err
	}

	a.Home(ctx)
	return nil
}

// Login asks for email and password. It also works while signed in, which
// switches to the other account.
func (a *App) Login(ctx context.Context) error {
	a.println(titleStyle.Render("Welcome Back"))
	a.println(subtleStyle.Render("Log in to continue growing your business"))

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	creds := models.Credentials{Email: normalizeEmail(email), Password: password}
	if err := validateCredentials(creds); err != nil {
		a.fail("Login Failed", err, "")
		return err
	}

	if err := a.sessions.Login(ctx, creds); err != nil {
		a.fail("Login Failed", err, "Invalid email or password.")
		return err
	}

	a.Home(ctx)
	return nil
}

// Google signs in with a Google ID token obtained elsewhere (for example
// from the OAuth playground) and pasted here.
func (a *App) Google(ctx context.Context) error {
	idToken, err := getSimpleText(a.reader, "Paste your Google ID token", a.out)
	if err != nil {
		return err
	}
	if idToken == "" {
		err := &formError{problems: []string{"Google ID token is required"}}
		a.fail("Google Login Failed", err, "")
		return err
	}

	if err := a.sessions.LoginWithGoogle(ctx, idToken); err != nil {
		a.fail("Google Login Failed", err, "Google sign-in is not available right now.")
		return err
	}

	a.Home(ctx)
	return nil
}

// Logout always succeeds from the user's point of view.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	a.println(successStyle.Render("Logged out."))
	return nil
}

func (a *App) fail(title string, err error, fallback string) {
	a.log.Debug(context.Background(), "command failed", "title", title, "error", err)
	a.println(errorStyle.Render(title+": ") + friendlyError(err, fallback))
}
