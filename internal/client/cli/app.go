package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/localboost/internal/client/models"
	"github.com/dmitrijs2005/localboost/internal/client/services"
	"github.com/dmitrijs2005/localboost/internal/logging"
)

// Sessions is the part of services.SessionManager the CLI drives.
type Sessions interface {
	Wait(ctx context.Context) (services.Session, error)
	Session() services.Session
	Login(ctx context.Context, creds models.Credentials) error
	Register(ctx context.Context, reg models.Registration) error
	LoginWithGoogle(ctx context.Context, idToken string) error
	Logout(ctx context.Context)
}

// Onboarding remembers whether the intro was shown.
type Onboarding interface {
	HasOnboarded(ctx context.Context) (bool, error)
	SetOnboarded(ctx context.Context) error
}

type App struct {
	sessions Sessions
	prefs    Onboarding
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func NewApp(sessions Sessions, prefs Onboarding, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		sessions: sessions,
		prefs:    prefs,
		log:      log.With("component", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
	}
}

// Run shows the splash screen, routes to the first screen and then serves
// commands until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	route, err := a.Splash(ctx)
	if err != nil {
		return err
	}

	switch route {
	case RouteOnboarding:
		if err := a.Onboarding(ctx); err != nil {
			return err
		}
		a.println(subtleStyle.Render("Type 'register' to create your account, or 'login' if you already have one."))
	case RouteLogin:
		a.println(subtleStyle.Render("Welcome back. Type 'login' to continue or 'help' for all commands."))
	case RouteHome:
		a.Home(ctx)
	}

	runREPL(ctx, a, a.reader, a.out)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Session().IsAuthenticated()
}

func (a *App) prompt() string {
	s := a.sessions.Session()
	if s.IsAuthenticated() {
		return fmt.Sprintf("localboost (%s)> ", s.User.Email)
	}
	return "localboost> "
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
