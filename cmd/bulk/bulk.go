// Package bulk handles batch categorization of a CSV file
package bulk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"fjacquet/finassist/cmd/root"
	"fjacquet/finassist/internal/categorizer"
	"fjacquet/finassist/internal/common"
	"fjacquet/finassist/internal/currencyutils"
	"fjacquet/finassist/internal/fileutils"
	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/metrics"
)

var (
	// InputFile is the CSV to categorize ("-" for stdin)
	InputFile string
	// OutputFile receives the results ("-" for stdout)
	OutputFile string
	// Delimiter is the CSV field separator
	Delimiter string
)

// errInvalidDescription marks a description cell that is not valid UTF-8.
var errInvalidDescription = errors.New("description is not valid UTF-8")

// Cmd represents the bulk command
var Cmd = &cobra.Command{
	Use:   "bulk",
	Short: "Categorize every transaction of a CSV file",
	Long: `Categorize every row of a CSV file with columns id, description, name
and amount. The output has one row per distinct id with its category,
confidence and tags. Rows whose description cannot be read get category
Other, confidence 0.1 and the error tag without affecting other rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.AppContainer == nil {
			return fmt.Errorf("application not initialized")
		}
		delim, err := parseDelimiter(Delimiter)
		if err != nil {
			return err
		}
		return run(cmd.Context(), root.AppContainer.GetEngine(), root.AppContainer.GetRegistry(),
			root.Log, InputFile, OutputFile, delim, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&InputFile, "input", "i", fileutils.StdioPath, "Input CSV file")
	Cmd.Flags().StringVarP(&OutputFile, "output", "o", fileutils.StdioPath, "Output CSV file")
	Cmd.Flags().StringVar(&Delimiter, "delimiter", ",", "CSV field delimiter")
}

type inputRow struct {
	ID          string `csv:"id"`
	Description string `csv:"description"`
	Name        string `csv:"name"`
	Amount      string `csv:"amount"`
}

type outputRow struct {
	ID         string `csv:"id"`
	Category   string `csv:"category"`
	Confidence string `csv:"confidence"`
	Tags       string `csv:"tags"`
}

func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return common.DefaultDelimiter, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

// toItems maps CSV rows to bulk items. Empty cells count as absent, so the
// name column is used only when description is blank.
func toItems(rows []inputRow, logger logging.Logger) []categorizer.BulkItem {
	items := make([]categorizer.BulkItem, 0, len(rows))
	for i, row := range rows {
		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		amount := 0.0
		if parsed, err := currencyutils.ParseAmount(row.Amount); err != nil {
			logger.WithError(err).Warn("Invalid amount, using 0",
				logging.Field{Key: logging.FieldTransactionID, Value: id})
		} else {
			amount = parsed.InexactFloat64()
		}

		item := categorizer.BulkItem{ID: id, Amount: amount}
		if row.Description != "" {
			desc := row.Description
			item.Resolve = func() (string, error) {
				if !utf8.ValidString(desc) {
					return "", errInvalidDescription
				}
				return desc, nil
			}
		} else if row.Name != "" {
			name := row.Name
			item.Name = &name
		}
		items = append(items, item)
	}
	return items
}

func run(ctx context.Context, engine *categorizer.Engine, gatherer prometheus.Gatherer, logger logging.Logger,
	inputFile, outputFile string, delim rune, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger = logging.OrDefault(logger)

	in, err := fileutils.OpenInput(inputFile, stdin)
	if err != nil {
		return err
	}
	defer func() {
		if err := in.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close input")
		}
	}()

	rows, err := common.ReadCSV[inputRow](in, delim)
	if err != nil {
		return err
	}

	items := toItems(rows, logger)
	results := engine.BulkCategorize(ctx, items)

	out := make([]outputRow, 0, len(results))
	for id, res := range results {
		out = append(out, outputRow{
			ID:         id,
			Category:   res.Category,
			Confidence: strconv.FormatFloat(res.Confidence, 'f', 2, 64),
			Tags:       strings.Join(res.Tags, "|"),
		})
	}
	order := make(map[string]int, len(items))
	for i, it := range items {
		if _, ok := order[it.ID]; !ok {
			order[it.ID] = i
		}
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i].ID] < order[out[j].ID] })

	w, err := fileutils.CreateOutput(outputFile, stdout)
	if err != nil {
		return err
	}
	if err := common.WriteCSV(w, out, delim); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	fields := []logging.Field{
		{Key: logging.FieldCount, Value: len(out)},
		{Key: logging.FieldInputFile, Value: inputFile},
		{Key: logging.FieldOutputFile, Value: outputFile},
	}
	if counts, err := metrics.CategorizationCounts(gatherer); err == nil {
		for _, source := range []string{metrics.SourceModel, metrics.SourceFallback, metrics.SourceError} {
			fields = append(fields, logging.Field{Key: source, Value: counts[source]})
		}
	}
	logger.Info("Bulk categorization completed", fields...)
	return nil
}
