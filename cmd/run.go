package cmd

import (
	"fmt"
	"os"

	"github.com/ZaneDavis9616/jlptn1/internal/app"
	"github.com/ZaneDavis9616/jlptn1/internal/bank"
	"github.com/ZaneDavis9616/jlptn1/internal/llm"
	"github.com/ZaneDavis9616/jlptn1/internal/questiongen"
	"github.com/ZaneDavis9616/jlptn1/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY.")
		return err
	}

	opts := app.Options{
		Generator: questiongen.New(provider, questiongen.DefaultConfig()),
		Banks:     bank.Load(ctx, st),
	}
	return app.Run(opts)
}
