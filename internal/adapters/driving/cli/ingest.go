package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

var (
	statsJSON bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [workspace] [file]",
	Short: "Index résumés into a workspace",
	Long: `Chunks, embeds and stores résumés in the workspace collection.

The file holds either a JSON array of résumés or an object with a "resumes"
array. Each résumé needs an "id" (or "resume_id") and "text". Use "-" to
read from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: runIngest,
}

var statsCmd = &cobra.Command{
	Use:   "stats [workspace] [resume-id]",
	Short: "Show what a workspace has indexed",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runStats,
}

var jdCmd = &cobra.Command{
	Use:   "jd [workspace] [file]",
	Short: "Store the job description of a workspace",
	Long: `Stores the job description used as context when answering questions.
Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: runJobDescription,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output stats as JSON")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(jdCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return notConfigured("ingest")
	}

	data, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}
	candidates, err := parseCandidates(data)
	if err != nil {
		return err
	}

	n, err := ingestService.Ingest(commandContext(cmd), args[0], candidates)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Indexed %d chunks from %d résumés into %s\n", n, len(candidates), args[0])
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return notConfigured("ingest")
	}

	resumeID := ""
	if len(args) > 1 {
		resumeID = args[1]
	}

	stats, err := ingestService.Stats(commandContext(cmd), args[0], resumeID)
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, stats)
	}

	cmd.Printf("Workspace: %s\n", stats.WorkspaceID)
	if stats.CandidateID != "" {
		cmd.Printf("Résumé: %s\n", stats.CandidateID)
	}
	cmd.Printf("Chunks: %d\n", stats.ChunksCount)
	for _, s := range stats.SampleSnippets {
		cmd.Printf("  - %s\n", truncate(s, 100))
	}
	return nil
}

func runJobDescription(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return notConfigured("query")
	}

	data, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}

	if err := queryService.StoreJobDescription(commandContext(cmd), args[0], strings.TrimSpace(string(data))); err != nil {
		return fmt.Errorf("failed to store job description: %w", err)
	}

	cmd.Println("Job description stored successfully")
	return nil
}

// readInput reads a file, or the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// parseCandidates accepts a JSON array of résumés or {"resumes": [...]}.
func parseCandidates(data []byte) ([]domain.Candidate, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var candidates []domain.Candidate
		if err := json.Unmarshal(data, &candidates); err != nil {
			return nil, fmt.Errorf("parsing résumés: %w", err)
		}
		return candidates, nil
	}

	var wrapped struct {
		Resumes []domain.Candidate `json:"resumes"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing résumés: %w", err)
	}
	return wrapped.Resumes, nil
}

// truncate shortens s to maxLen runes, adding an ellipsis.
func truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
