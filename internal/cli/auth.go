package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartbills/billctl/internal/auth"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the Smart Bills identity service",
	Long: `Authenticate with email and password.

On success the profile and refresh token are stored locally; bearer tokens
are minted fresh for every request afterwards. The password itself is never
persisted.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the local session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and token status",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	in := bufio.NewReader(cmd.InOrStdin())

	email := loginEmail
	if email == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		line, err := in.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("email required")
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	line, err := in.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimSpace(line)

	sess, err := app.identity.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := app.store.Save(ctx, sess); err != nil {
		return err
	}

	name := sess.DisplayName
	if name == "" {
		name = sess.Email
	}
	app.term.Success(fmt.Sprintf("Logged in as %s.", name))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := app.store.Clear(cmd.Context()); err != nil {
		return err
	}
	app.term.Success("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := app.requireSession(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Email:        %s\n", sess.Email)
	fmt.Fprintf(out, "Display name: %s\n", sess.DisplayName)
	if sess.PhotoURL != "" {
		fmt.Fprintf(out, "Photo:        %s\n", sess.PhotoURL)
	}
	fmt.Fprintf(out, "Logged in:    %s\n", sess.CreatedAt.Format(time.RFC1123))

	// Mint a token to show its lifetime; this also proves the refresh token
	// is still accepted.
	token, err := app.identity.ExchangeToken(ctx, sess.RefreshToken)
	if err != nil {
		app.term.Error("Could not mint a bearer token: " + err.Error())
		return nil
	}
	claims, err := auth.Inspect(token)
	if err != nil {
		return err
	}
	if d := claims.ExpiresIn(time.Now()); d > 0 {
		fmt.Fprintf(out, "Token:        valid for %s\n", d.Round(time.Second))
	} else {
		fmt.Fprintln(out, "Token:        no expiry reported")
	}
	return nil
}
