package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/google"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driving/oauth"
)

var (
	googlePort      int
	googleTimeout   time.Duration
	googleNoBrowser bool
)

var googleCmd = &cobra.Command{
	Use:   "google",
	Short: "Manage Google Calendar and Gmail access",
}

var googleLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorise access to Google Calendar and Gmail",
	Long: `Runs the OAuth consent flow in the browser and stores the token in the
configured token file. Requires google.credentials_file and google.token_file.`,
	Args: cobra.NoArgs,
	RunE: runGoogleLogin,
}

func init() {
	googleLoginCmd.Flags().IntVar(&googlePort, "port", 0, "callback port (0 picks a free port)")
	googleLoginCmd.Flags().DurationVar(&googleTimeout, "timeout", 5*time.Minute, "how long to wait for consent")
	googleLoginCmd.Flags().BoolVar(&googleNoBrowser, "no-browser", false, "print the URL instead of opening a browser")

	googleCmd.AddCommand(googleLoginCmd)
	rootCmd.AddCommand(googleCmd)
}

func runGoogleLogin(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	g := settings.Google
	if !g.IsConfigured() {
		return errors.New("set google.credentials_file and google.token_file first")
	}

	cfg, err := google.LoadConfig(g.CredentialsFile)
	if err != nil {
		return err
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	server := oauth.NewCallbackServer(googlePort, state)
	if err := server.Start(); err != nil {
		return err
	}
	defer func() { _ = server.Stop() }()

	authURL := google.AuthCodeURL(cfg, server.RedirectURI(), state, verifier)
	cmd.Println("Open this URL to authorise access:")
	cmd.Println(authURL)
	cmd.Println()
	if !googleNoBrowser {
		if err := oauth.OpenBrowser(authURL); err != nil {
			cmd.Printf("Could not open a browser: %v\n", err)
		}
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), googleTimeout)
	defer cancel()

	code, err := server.WaitForCode(ctx)
	if err != nil {
		return fmt.Errorf("authorisation failed: %w", err)
	}
	if _, err := google.Exchange(ctx, cfg, code, verifier, g.TokenFile); err != nil {
		return err
	}

	cmd.Printf("Token saved to %s\n", g.TokenFile)
	return nil
}
