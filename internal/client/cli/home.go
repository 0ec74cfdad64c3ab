package cli

import (
	"context"
	"fmt"
	"strings"
)

func greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// Home greets the signed-in user.
func (a *App) Home(ctx context.Context) {
	s := a.sessions.Session()
	if !s.IsAuthenticated() {
		return
	}

	name := "there"
	if s.User.Name != nil && *s.User.Name != "" {
		name = *s.User.Name
	}

	a.println(cardStyle.Render(
		titleStyle.Render(greeting(a.now().Hour())+",") + "\n" +
			logoStyle.Render(name+"!") + "\n" +
			subtleStyle.Render("Let's grow your business today"),
	))
	a.println(mutedStyle.Render("Type 'me' for your profile or 'logout' to sign out."))
}

// Me prints the current profile.
func (a *App) Me(ctx context.Context) error {
	s := a.sessions.Session()
	if !s.IsAuthenticated() {
		a.println(warnStyle.Render("You are not signed in. Type 'login' first."))
		return errNotSignedIn
	}
	u := s.User

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", subtleStyle.Render("Name: "), u.DisplayName())
	fmt.Fprintf(&b, "%s %s", subtleStyle.Render("Email:"), u.Email)
	if u.Phone != nil && *u.Phone != "" {
		fmt.Fprintf(&b, "\n%s %s", subtleStyle.Render("Phone:"), *u.Phone)
	}
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "\n%s", mutedStyle.Render("Member since "+u.CreatedAt.UTC().Format("January 2, 2006")))
	}

	a.println(cardStyle.Render(b.String()))
	return nil
}
