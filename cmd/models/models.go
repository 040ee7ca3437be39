// Package models reports on the configured AI service
package models

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/finassist/cmd/root"
)

// ModelLister is the part of the AI client the command needs
type ModelLister interface {
	Model() string
	CheckAvailability(ctx context.Context) bool
	ListModels(ctx context.Context) []string
}

// Cmd represents the models command
var Cmd = &cobra.Command{
	Use:   "models",
	Short: "Check the AI service and list its models",
	Long: `Check whether the configured OpenAI-compatible service answers and list
the model identifiers it offers. An unconfigured or unreachable service is
reported as unavailable with no models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.AppContainer == nil {
			return fmt.Errorf("application not initialized")
		}
		return run(cmd.Context(), root.AppContainer.GetLLMClient(), cmd.OutOrStdout())
	},
}

func run(ctx context.Context, lister ModelLister, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := fmt.Fprintf(out, "Configured model: %s\n", lister.Model()); err != nil {
		return err
	}
	if !lister.CheckAvailability(ctx) {
		_, err := fmt.Fprintln(out, "Service: unavailable")
		return err
	}
	if _, err := fmt.Fprintln(out, "Service: available"); err != nil {
		return err
	}

	models := lister.ListModels(ctx)
	if len(models) == 0 {
		_, err := fmt.Fprintln(out, "No models reported")
		return err
	}
	for _, m := range models {
		if _, err := fmt.Fprintf(out, "  - %s\n", m); err != nil {
			return err
		}
	}
	return nil
}
