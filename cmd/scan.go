// -- cmd/scan.go --
package cmd

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hireloop/autopilot/internal/browser"
	"github.com/hireloop/autopilot/internal/observability"
	"github.com/hireloop/autopilot/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan <application-url>",
	Short: "Discover the fillable fields of an application page.",
	Long: `Loads the page and prints every discovered form field as JSON, including
the derived question text, constraints, and locator. Useful for building
alias files for sites the matcher does not recognize yet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()
		url := args[0]

		manager, err := browser.NewManager(cmd.Context(), appConfig.Browser, logger)
		if err != nil {
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := manager.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Browser shutdown reported an error.", zap.Error(err))
			}
		}()

		session, err := manager.NewSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		if err := session.Navigate(cmd.Context(), url); err != nil {
			return err
		}

		fields, err := scanner.New(appConfig.Scanner, logger).Scan(cmd.Context(), session)
		if err != nil {
			return err
		}

		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(fields, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode fields: %w", err)
		}
		cmd.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
