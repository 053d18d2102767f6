// Package cli wires the cobra command tree: session commands (login,
// logout, whoami), bill queries, and the paid-bill lifecycle.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartbills/billctl/internal/auth"
	"github.com/smartbills/billctl/internal/client"
	"github.com/smartbills/billctl/internal/config"
	"github.com/smartbills/billctl/internal/models"
	"github.com/smartbills/billctl/internal/service"
	"github.com/smartbills/billctl/internal/session"
	"github.com/smartbills/billctl/internal/ui"
	"github.com/smartbills/billctl/pkg/logging"
)

var (
	// Global flags
	configPath string
	themeFlag  string

	// Built in PersistentPreRunE, shared by all commands.
	app *appContext
)

// appContext holds the wired-up dependencies for one command invocation.
type appContext struct {
	cfg      *config.Config
	theme    ui.Theme
	store    session.Store
	identity *auth.Identity
	api      *client.Client
	term     *ui.Terminal
}

var rootCmd = &cobra.Command{
	Use:   "billctl",
	Short: "Smart Bills - browse utility bills and manage payments",
	Long: `billctl is the command-line client for the Smart Bills service.

Browse the latest utility bills, pay bills dated in the current month,
manage your paid-bill history, and export it as a PDF report.

Authenticate once with 'billctl login'; every request then carries a fresh
short-lived bearer token. When the server invalidates the session, local
state is cleared and you are asked to log in again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup()

		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if themeFlag != "" {
			cfg.Theme = themeFlag
		}
		theme, err := ui.ParseTheme(cfg.Theme)
		if err != nil {
			return err
		}

		store, err := session.New(cfg.SessionDB)
		if err != nil {
			return err
		}

		term := ui.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), theme)
		identity := auth.NewIdentity(cfg.IdentityURL)
		provider := auth.NewTokenProvider(store, identity)

		api, err := client.New(cfg.BaseURL,
			client.WithTokenSource(provider),
			client.WithInvalidationHook(func() {
				// The CLI analog of redirecting to the login page. Safe to
				// fire from any in-flight request.
				_ = store.Clear(context.Background())
				term.Error("Session expired. Please run 'billctl login' again.")
			}),
		)
		if err != nil {
			store.Close()
			return err
		}

		app = &appContext{
			cfg:      cfg,
			theme:    theme,
			store:    store,
			identity: identity,
			api:      api,
			term:     term,
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			_ = app.store.Close()
		}
	},
}

// requireSession returns the active session or a friendly error telling the
// user to log in.
func (a *appContext) requireSession(ctx context.Context) (*models.Session, error) {
	sess, err := a.store.Current(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, fmt.Errorf("not logged in; run 'billctl login' first")
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// manager builds a lifecycle manager scoped to the logged-in user.
func (a *appContext) manager(sess *models.Session) *service.Manager {
	return service.NewManager(a.api, sess.Email, sess.DisplayName, a.term, a.term)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/billctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "display theme: light or dark")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(billsCmd)
	rootCmd.AddCommand(paidCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
