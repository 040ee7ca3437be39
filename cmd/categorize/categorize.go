// Package categorize handles single transaction categorization
package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/finassist/cmd/root"
	"fjacquet/finassist/internal/categorizer"
	"fjacquet/finassist/internal/logging"
)

var (
	// Description of the transaction to categorize
	Description string
	// Amount of the transaction
	Amount float64
	// JSONOutput prints the result as JSON
	JSONOutput bool
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction",
	Long: `Categorize a transaction from its description. The configured model is
asked first; if it is unavailable or answers outside the category list, the
keyword rules decide and the result carries confidence 0.3 and the fallback tag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.AppContainer == nil {
			return fmt.Errorf("application not initialized")
		}
		return run(cmd.Context(), root.AppContainer.GetEngine(), Description, Amount, JSONOutput, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&Description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().Float64VarP(&Amount, "amount", "a", 0, "Transaction amount (optional)")
	Cmd.Flags().BoolVar(&JSONOutput, "json", false, "Print the result as JSON")
	_ = Cmd.MarkFlagRequired("description")
}

func run(ctx context.Context, engine *categorizer.Engine, description string, amount float64, asJSON bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	outcome := engine.CategorizeDetailed(ctx, description, amount)
	root.Log.Debug("Categorize command finished",
		logging.Field{Key: logging.FieldSource, Value: string(outcome.Source)},
		logging.Field{Key: logging.FieldReason, Value: outcome.Reason})

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome.Result)
	}

	_, err := fmt.Fprintf(out, "Category: %s\nConfidence: %.2f\nTags: %s\n",
		outcome.Result.Category, outcome.Result.Confidence, strings.Join(outcome.Result.Tags, ", "))
	return err
}
