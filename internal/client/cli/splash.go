package cli

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Route is the first screen shown after the splash.
type Route string

const (
	RouteHome       Route = "home"
	RouteLogin      Route = "login"
	RouteOnboarding Route = "onboarding"
)

// Splash waits for the session restore and picks the first screen:
// home when signed in, login for returning users, onboarding otherwise.
func (a *App) Splash(ctx context.Context) (Route, error) {
	a.println(logoStyle.Render("LocalBoost") + " " + accentStyle.Render("AI"))
	a.println(mutedStyle.Render("Grow your local business with AI"))
	a.println()

	s, err := a.sessions.Wait(ctx)
	if err != nil {
		return "", err
	}
	if s.IsAuthenticated() {
		return RouteHome, nil
	}

	onboarded, err := a.prefs.HasOnboarded(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not read onboarding flag", "error", err)
	}
	if onboarded {
		return RouteLogin, nil
	}
	return RouteOnboarding, nil
}

type slide struct {
	title    string
	subtitle string
}

var slides = []slide{
	{"AI-Powered Insights", "Get smart analytics and actionable recommendations to grow your local business online."},
	{"Review Management", "AI helps you respond to reviews, manage your reputation, and attract more customers."},
	{"Smart Marketing", "Automate your social media, ads, and email campaigns with AI that understands your business."},
}

// Onboarding walks through the intro slides. Typing "skip" jumps to the
// end. The flag is set either way.
func (a *App) Onboarding(ctx context.Context) error {
	for i, sl := range slides {
		a.println(cardStyle.Render(titleStyle.Render(sl.title) + "\n" + subtleStyle.Render(sl.subtitle)))

		next := "Next"
		if i == len(slides)-1 {
			next = "Get Started"
		}
		a.println(mutedStyle.Render("[Enter] " + next + "   [skip]"))

		answer, err := readLine(a.reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if errors.Is(err, io.EOF) || strings.EqualFold(answer, "skip") {
			break
		}
	}

	if err := a.prefs.SetOnboarded(ctx); err != nil {
		a.log.Warn(ctx, "could not persist onboarding flag", "error", err)
	}
	return nil
}
