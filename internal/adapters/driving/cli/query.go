package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

var (
	queryResumeID     string
	queryK            int
	queryChatID       string
	queryJSON         bool
	queryPassagesOnly bool
	historyJSON       bool
	historyClear      bool
)

var queryCmd = &cobra.Command{
	Use:   "query [workspace] [message]",
	Short: "Ask a question about indexed candidates",
	Long: `Ranks résumé passages with hybrid semantic and keyword retrieval and
answers the question from them. Messages asking to schedule an interview
or for free slots are routed to the scheduler instead.

Turns are kept per conversation (--chat, defaulting to the résumé id or
"global").`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

var historyCmd = &cobra.Command{
	Use:   "history [workspace] [chat-id]",
	Short: "Show or clear the turns of a conversation",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runHistory,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [workspace] [resume-id]",
	Short: "Suggest interview questions for a candidate",
	Args:  cobra.ExactArgs(2),
	RunE:  runSuggest,
}

var intentCmd = &cobra.Command{
	Use:   "intent [message]",
	Short: "Classify a recruiter message",
	Args:  cobra.ExactArgs(1),
	RunE:  runIntent,
}

func init() {
	queryCmd.Flags().StringVarP(&queryResumeID, "resume", "r", "", "restrict retrieval to one résumé")
	queryCmd.Flags().IntVarP(&queryK, "top-k", "k", domain.DefaultTopK, "number of passages to retrieve")
	queryCmd.Flags().StringVar(&queryChatID, "chat", "", "conversation id")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the answer as JSON")
	queryCmd.Flags().BoolVar(&queryPassagesOnly, "passages-only", false, "rank passages without answering")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output turns as JSON")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete the conversation")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(intentCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return notConfigured("query")
	}
	ctx := commandContext(cmd)
	workspace, message := args[0], args[1]

	if queryPassagesOnly {
		results, err := queryService.Retrieve(ctx, workspace, message, domain.RetrieveOptions{
			CandidateID: queryResumeID,
			K:           queryK,
		})
		if err != nil {
			return fmt.Errorf("retrieval failed: %w", err)
		}
		if queryJSON {
			return printJSON(cmd, results)
		}
		printPassages(cmd, results)
		return nil
	}

	answer, err := queryService.Query(ctx, workspace, message, domain.QueryOptions{
		CandidateID:    queryResumeID,
		K:              queryK,
		ConversationID: queryChatID,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return printJSON(cmd, answer)
	}

	cmd.Println(answer.Answer)
	cmd.Println()
	switch {
	case answer.Workflow != nil:
		printWorkflow(cmd, answer.Workflow)
	case answer.Availability != nil:
		printAvailability(cmd, answer.Availability)
	default:
		printPassages(cmd, answer.Snippets)
	}
	cmd.Printf("Chat: %s\n", answer.ConversationID)
	return nil
}

func printPassages(cmd *cobra.Command, results []domain.RetrievalCandidate) {
	if len(results) == 0 {
		cmd.Println("No passages found.")
		return
	}

	cmd.Println("Passages:")
	for i := range results {
		name := results[i].Metadata.CandidateName
		if name == "" {
			name = results[i].Metadata.CandidateID
		}
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, name, results[i].FusedScore)
		cmd.Printf("      %s\n", truncate(results[i].Text, 160))
	}
	cmd.Println()
}

func runHistory(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return notConfigured("query")
	}

	chat := domain.GlobalConversation
	if len(args) > 1 {
		chat = args[1]
	}

	if historyClear {
		if err := queryService.ClearHistory(commandContext(cmd), args[0], chat); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		cmd.Printf("Cleared conversation %s.\n", chat)
		return nil
	}

	turns, err := queryService.History(commandContext(cmd), args[0], chat)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, turns)
	}
	if len(turns) == 0 {
		cmd.Println("No turns recorded.")
		return nil
	}
	for _, t := range turns {
		cmd.Printf("[%s] %s: %s\n", t.At.Format("15:04:05"), t.Role, t.Text)
	}
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return notConfigured("query")
	}

	questions, err := queryService.Suggest(commandContext(cmd), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to suggest questions: %w", err)
	}

	for i, q := range questions {
		cmd.Printf("%d. %s\n", i+1, q)
	}
	return nil
}

func runIntent(cmd *cobra.Command, args []string) error {
	if intentService == nil {
		return notConfigured("intent")
	}

	intent := intentService.Classify(args[0])
	cmd.Printf("Intent: %s\n", intent.Kind())
	switch in := intent.(type) {
	case domain.ScheduleIntent:
		cmd.Printf("Keyword: %s\n", in.Keyword)
	case domain.AvailabilityIntent:
		cmd.Printf("Keyword: %s\n", in.Keyword)
	}
	return nil
}
