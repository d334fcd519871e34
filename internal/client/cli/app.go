package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gtstudio/internal/client/api"
	"github.com/dmitrijs2005/gtstudio/internal/client/config"
	"github.com/dmitrijs2005/gtstudio/internal/client/services"
	"github.com/dmitrijs2005/gtstudio/internal/client/session"
	"github.com/dmitrijs2005/gtstudio/internal/logging"
	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// App bundles the services behind the REPL commands.
type App struct {
	config      *config.Config
	api         api.Client
	auth        services.AuthService
	collections services.CollectionService
	ui          *services.UIState
	logger      logging.Logger
	reader      *bufio.Reader

	// docs holds the working set of the last search, refined in place by the
	// filter and sortdocs commands.
	docs []models.Document
}

// NewApp wires the REST client, the session store and the state containers
// from the given configuration.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	apiClient := api.NewRESTClient(c.ServerAddr, c.RequestTimeout)

	sessionFile := c.SessionFile
	if sessionFile == "" {
		path, err := session.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve session path: %w", err)
		}
		sessionFile = path
	}
	store := session.NewFileStore(sessionFile)

	return &App{
		config:      c,
		api:         apiClient,
		auth:        services.NewAuthService(apiClient, store, logger),
		collections: services.NewCollectionService(apiClient, logger),
		ui:          services.NewUIState(),
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session once and hands control to the REPL. It blocks
// until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	if err := a.auth.CheckAuthStatus(ctx); err != nil {
		a.logger.Warn(ctx, "auth status check failed", "error", err)
	}
	if user := a.auth.CurrentUser(); user != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.Username))
	}

	printlnFn("GT Studio CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// getStatus renders the prompt decoration: the signed-in user, the selected
// collection and a busy marker while a page-level operation runs.
func (a *App) getStatus() string {
	s := ""
	if u := a.auth.CurrentUser(); u != nil {
		s = u.Username
		if col := a.collections.CurrentCollection(); col != nil {
			s = s + "/" + col.Name
		}
	}
	if a.ui.PageLoading() {
		s = s + " busy"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
