// -- cmd/apply.go --
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hireloop/autopilot/internal/autofill"
	"github.com/hireloop/autopilot/internal/browser"
	"github.com/hireloop/autopilot/internal/observability"
	"github.com/hireloop/autopilot/internal/profile"
)

var (
	applyProfilePath string
	applyDryRun      bool
	applyJobTitle    string
	applyCompany     string
)

var applyCmd = &cobra.Command{
	Use:   "apply <application-url>",
	Short: "Fill a job application form from the applicant profile.",
	Long: `Loads the application page, discovers its form fields, resolves values
from the applicant profile, and fills everything it can. Fields it cannot
answer are reported as suggestions; fields it refuses to touch are reported
as blocked. Use --dry-run to see the plan without modifying the page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()
		url := args[0]

		profilePath := applyProfilePath
		if profilePath == "" {
			profilePath = appConfig.Profile.Path
		}
		applicant, err := profile.LoadProfile(profilePath)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		engine, err := buildEngine(cmd.Context(), appConfig, logger)
		if err != nil {
			return err
		}

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

		result, err := engine.Run(cmd.Context(), autofill.Request{
			Page:    session,
			Profile: applicant,
			Job:     jobContextFromFlags(url, applyJobTitle, applyCompany),
			DryRun:  applyDryRun,
		})
		if err != nil {
			return err
		}

		if appConfig.Browser.ScreenshotOnDone && !applyDryRun {
			if path, err := session.Screenshot(cmd.Context(), "apply"); err != nil {
				logger.Warn("Screenshot failed.", zap.Error(err))
			} else {
				logger.Info("Screenshot saved.", zap.String("path", path))
			}
		}

		cmd.Print(result.Summary())
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyProfilePath, "profile", "p", "", "applicant profile file (overrides config)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "plan only, do not modify the page")
	applyCmd.Flags().StringVar(&applyJobTitle, "job-title", "", "job title for context-aware answers")
	applyCmd.Flags().StringVar(&applyCompany, "company", "", "company name for context-aware answers")
	rootCmd.AddCommand(applyCmd)
}
