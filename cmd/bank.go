package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZaneDavis9616/jlptn1/internal/bank"
	"github.com/ZaneDavis9616/jlptn1/internal/store"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/markup"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect or reset the mistake bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List banked questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		banks, closeStore, err := openBanks(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		mistakes := banks.Mistakes()
		if len(mistakes) == 0 {
			fmt.Println("The mistake bank is empty.")
			return nil
		}

		fmt.Printf("%-4s  %-19s  %-14s  %s\n", "No.", "Added", "Category", "Question")
		fmt.Println(strings.Repeat("─", 90))
		for i, q := range mistakes {
			body := strings.ReplaceAll(markup.Strip(q.Body), "\n", " ")
			if len([]rune(body)) > 48 {
				body = string([]rune(body)[:48]) + "…"
			}
			fmt.Printf("%-4d  %-19s  %-14s  %s\n",
				i+1,
				q.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				q.Category,
				body,
			)
		}
		fmt.Printf("\n%d banked, %d mastered\n", banks.MistakeCount(), banks.MasteredCount())
		return nil
	},
}

var bankClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the mistake bank and mastered set",
	RunE: func(cmd *cobra.Command, args []string) error {
		banks, closeStore, err := openBanks(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := banks.Clear(context.Background()); err != nil {
			return fmt.Errorf("clear banks: %w", err)
		}
		fmt.Println("Mistake bank and mastered set cleared.")
		return nil
	},
}

// openBanks opens the store and loads the banks for one-shot subcommands.
func openBanks(cmd *cobra.Command) (*bank.Banks, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	banks := bank.Load(context.Background(), st)
	return banks, func() { _ = st.Close() }, nil
}

func init() {
	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankClearCmd)
}
