package cli

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, storage, scheduling and delivery settings.

Settings live in ~/.screener/config.toml. Secrets may also be supplied through
the environment (SCREENER_LLM_API_KEY, SCREENER_EMBEDDING_API_KEY,
SCREENER_SMTP_PASSWORD, SCREENER_REDIS_URL) or a .env file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single dot-separated setting, for example:

  screener settings set retrieval.k 8
  screener settings set scheduler.timezone Europe/Berlin
  screener settings set http.cors_origins http://localhost:3000,http://localhost:5173`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the embedding provider used to index and rank résumé passages.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used for query expansion and answers.`,
	RunE:  runSettingsLLM,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// Embedding settings
	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())

	// LLM settings
	cmd.Println("[LLM]")
	printProvider(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.TopK)
	cmd.Printf("  Storage: %s\n", settings.Storage)
	if settings.StoragePath != "" {
		cmd.Printf("  Path: %s\n", settings.StoragePath)
	}
	cmd.Println()

	cmd.Println("[Sessions]")
	cmd.Printf("  Backend: %s\n", settings.SessionBackend)
	cmd.Printf("  TTL: %s\n", settings.Session.TTL)
	cmd.Printf("  Max sessions: %d\n", settings.Session.MaxSessions)
	cmd.Printf("  Max turns: %d\n", settings.Session.MaxTurns)
	if settings.SessionBackend == domain.StorageRedis {
		cmd.Printf("  Redis: %s\n", maskURL(settings.RedisURL))
	}
	cmd.Println()

	sched := settings.Scheduler
	cmd.Println("[Scheduler]")
	cmd.Printf("  Work window: %s - %s (%s)\n", clock(sched.Window.Start), clock(sched.Window.End), sched.Location)
	cmd.Printf("  Interview: %s, step %s\n", sched.Duration, sched.Step)
	cmd.Printf("  Max slots: %d, lookahead %d days\n", sched.MaxSlots, sched.LookaheadDays)
	cmd.Println()

	cmd.Println("[Google]")
	if settings.Google.IsConfigured() {
		cmd.Printf("  Credentials: %s\n", settings.Google.CredentialsFile)
		cmd.Printf("  Token: %s\n", settings.Google.TokenFile)
		cmd.Printf("  Calendar: %s\n", settings.Google.CalendarID)
	} else {
		cmd.Println("  Status: not configured")
	}
	cmd.Println()

	cmd.Println("[Email]")
	cmd.Printf("  Transport: %s\n", settings.EmailTransport)
	if settings.EmailTransport == domain.EmailSMTP {
		cmd.Printf("  SMTP: %s@%s:%d\n", settings.SMTP.Username, settings.SMTP.Host, settings.SMTP.Port)
	}
	cmd.Println()

	cmd.Println("[Job]")
	cmd.Printf("  Title: %s\n", settings.Job.Title)
	cmd.Printf("  Company: %s\n", settings.Job.Company)
	cmd.Println()

	if !settings.Embedding.IsConfigured() {
		cmd.Println("Warning: no embedding provider configured, retrieval will fail.")
		cmd.Println("Run 'screener settings embedding' to configure one.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, raw := args[0], args[1]
	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if strings.Contains(key, "api_key") || strings.Contains(key, "password") {
		raw = maskAPIKey(raw)
	}
	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureProvider(cmd, bufio.NewReader(cmd.InOrStdin()), providerPrompt{
		kind:      "embedding",
		title:     "Select Embedding Provider",
		providers: domain.AllEmbeddingProviders(),
		models:    domain.DefaultEmbeddingModels(),
		set:       settingsService.SetEmbeddingProvider,
		validate:  settingsService.ValidateEmbeddingConfig,
	})
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureProvider(cmd, bufio.NewReader(cmd.InOrStdin()), providerPrompt{
		kind:      "LLM",
		title:     "Select LLM Provider",
		providers: domain.AllLLMProviders(),
		models:    domain.DefaultLLMModels(),
		set:       settingsService.SetLLMProvider,
		validate:  settingsService.ValidateLLMConfig,
	})
}

// providerPrompt describes one interactive provider selection.
type providerPrompt struct {
	kind      string
	title     string
	providers []domain.AIProvider
	models    map[domain.AIProvider]string
	set       func(provider domain.AIProvider, model, apiKey string) error
	validate  func() error
}

func configureProvider(cmd *cobra.Command, reader *bufio.Reader, p providerPrompt) error {
	cmd.Println(p.title)
	for i, provider := range p.providers {
		cmd.Printf("  %d. %s\n", i+1, provider.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	selected := p.providers[parseChoice(readLine(reader), len(p.providers), 1)-1]

	defaultModel := p.models[selected]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selected.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := p.set(selected, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure %s provider: %w", p.kind, err)
	}

	// Pings the provider.
	cmd.Print("Validating configuration... ")
	if err := p.validate(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("%s configuration validation failed: %w", p.kind, err)
	}
	cmd.Println("OK")

	cmd.Printf("%s provider configured: %s (%s)\n\n", p.kind, selected.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when stdin is a terminal.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

// clock formats an offset from midnight as HH:MM.
func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// maskURL hides the password of a redis URL.
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
