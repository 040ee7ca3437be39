// Package chat handles the chat command
package chat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/finassist/cmd/root"
	"fjacquet/finassist/internal/models"
	"fjacquet/finassist/internal/store"
)

// DataFile is the snapshot file passed with --data
var DataFile string

// Cmd represents the chat command
var Cmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask a financial question about a snapshot",
	Long: `Ask a free-text question about the transactions, accounts and
subscriptions in a snapshot file (YAML or JSON). Monthly spending, credit
cards, top categories, cash on hand and subscriptions are answered from the
data; other questions go to the configured model.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.AppContainer == nil {
			return fmt.Errorf("application not initialized")
		}
		return run(cmd.Context(), root.AppContainer.GetAssistant(), DataFile, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&DataFile, "data", "d", "", "Snapshot file (YAML or JSON)")
}

// Chatter answers a query from a snapshot.
type Chatter interface {
	Chat(ctx context.Context, query string, snap models.Snapshot) string
}

func run(ctx context.Context, chatter Chatter, dataFile, query string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var snap models.Snapshot
	if dataFile != "" {
		loaded, err := store.LoadSnapshot(dataFile)
		if err != nil {
			return err
		}
		snap = loaded
	}

	_, err := fmt.Fprintln(out, chatter.Chat(ctx, query, snap))
	return err
}
