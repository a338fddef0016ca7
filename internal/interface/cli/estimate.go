package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aviniti/blueprint/internal/application/usecase/report"
	"github.com/aviniti/blueprint/internal/application/usecase/wizard"
	"github.com/aviniti/blueprint/internal/domain/model/blueprint"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
	"github.com/aviniti/blueprint/internal/domain/model/session"
)

var platformChoices = []string{"iOS", "Android", "Web"}

func newEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Run the interactive estimate wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := buildContainer(ctx, globalConfig)
			if err != nil {
				return err
			}
			defer c.Close()
			return runEstimate(ctx, c.wizard)
		},
	}
}

func runEstimate(ctx context.Context, w *wizard.Wizard) error {
	resumed, err := w.Resume(ctx)
	if err != nil {
		GetLogger().Warn("could not check for a previous session: %v", err)
	}
	if resumed {
		fmt.Printf("Resuming previous session (step %d: %s)\n\n", w.Session().Step, w.Session().Step)
	}

	for {
		switch w.Session().Step {
		case session.StepUserInfo:
			err = stepUserInfo(ctx, w)
		case session.StepAppDescription:
			err = stepAppDescription(ctx, w)
		case session.StepFeatureSelection:
			err = stepFeatureSelection(ctx, w)
		case session.StepReport:
			return stepReport(ctx, w)
		}
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				fmt.Println("\nProgress saved. Run `blueprint estimate` to continue.")
				return nil
			}
			return err
		}
	}
}

func stepUserInfo(ctx context.Context, w *wizard.Wizard) error {
	fmt.Println("Step 1 of 4: Personal Information")

	for {
		details := session.PersonalDetails{}
		var err error
		if details.FullName, err = promptLine("Full name", w.Session().PersonalDetails.FullName); err != nil {
			return err
		}
		if details.EmailAddress, err = promptLine("Email address", w.Session().PersonalDetails.EmailAddress); err != nil {
			return err
		}
		if details.PhoneNumber, err = promptLine("Phone number (optional)", w.Session().PersonalDetails.PhoneNumber); err != nil {
			return err
		}
		if details.CompanyName, err = promptLine("Company (optional)", w.Session().PersonalDetails.CompanyName); err != nil {
			return err
		}

		res, err := w.SubmitUserInfo(ctx, details)
		if err != nil {
			if ve, ok := wizard.AsValidation(err); ok {
				printValidation(ve)
				continue
			}
			return err
		}
		printWarnings(res.Warnings)
		return nil
	}
}

func stepAppDescription(ctx context.Context, w *wizard.Wizard) error {
	fmt.Println("\nStep 2 of 4: App Description")

	for {
		description, err := promptLine("Describe your app idea", w.Session().AppDescription.Description)
		if err != nil {
			return err
		}
		platforms, err := selectPlatforms(w.Session().AppDescription.Platforms)
		if err != nil {
			return err
		}
		if platforms == nil {
			w.Back(ctx)
			return nil
		}

		fmt.Println("Analyzing your app idea...")
		res, err := w.SubmitAppDescription(ctx, session.AppDescription{
			Description: description,
			Platforms:   platforms,
		})
		if err != nil {
			if ve, ok := wizard.AsValidation(err); ok {
				printValidation(ve)
				continue
			}
			return err
		}
		printWarnings(res.Warnings)
		return nil
	}
}

// selectPlatforms runs a toggle loop over the platform choices. It returns
// nil when the user picks Back.
func selectPlatforms(current []string) ([]string, error) {
	selected := make(map[string]bool, len(current))
	for _, p := range current {
		selected[p] = true
	}

	for {
		items := make([]string, 0, len(platformChoices)+2)
		for _, p := range platformChoices {
			items = append(items, fmt.Sprintf("%s %s", checkbox(selected[p]), p))
		}
		items = append(items, "Done", "Back")

		prompt := promptui.Select{
			Label: "Target platforms (select to toggle)",
			Items: items,
			Size:  len(items),
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		switch {
		case idx < len(platformChoices):
			p := platformChoices[idx]
			selected[p] = !selected[p]
		case items[idx] == "Done":
			var out []string
			for _, p := range platformChoices {
				if selected[p] {
					out = append(out, p)
				}
			}
			if len(out) == 0 {
				fmt.Println("Select at least one platform.")
				continue
			}
			return out, nil
		default:
			return nil, nil
		}
	}
}

func stepFeatureSelection(ctx context.Context, w *wizard.Wizard) error {
	fmt.Println("\nStep 3 of 4: Feature Selection")
	if w.Session().Catalogue != nil && w.Session().Catalogue.AppOverview != "" {
		fmt.Println(w.Session().Catalogue.AppOverview)
	}

	for {
		catalogue := w.Session().Catalogue
		items := make([]string, 0, len(catalogue.Features)+3)
		for _, f := range catalogue.Features {
			items = append(items, fmt.Sprintf("%s %s (%s, %s)", checkbox(f.Selected), f.Name, f.CostEstimate, f.TimeEstimate))
		}
		items = append(items, "Add custom feature", "Continue", "Back")

		prompt := promptui.Select{
			Label: "Features (select to toggle)",
			Items: items,
			Size:  12,
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return err
		}

		switch {
		case idx < len(catalogue.Features):
			if err := toggleFeature(ctx, w, catalogue.Features[idx]); err != nil {
				return err
			}
		case items[idx] == "Add custom feature":
			if err := addCustomFeature(ctx, w); err != nil {
				return err
			}
		case items[idx] == "Continue":
			res, err := w.SubmitFeatureSelection(ctx)
			if err != nil {
				if ve, ok := wizard.AsValidation(err); ok {
					printValidation(ve)
					continue
				}
				return err
			}
			printWarnings(res.Warnings)
			return nil
		default:
			w.Back(ctx)
			return nil
		}
	}
}

func toggleFeature(ctx context.Context, w *wizard.Wizard, f feature.Feature) error {
	res, err := w.ToggleFeature(ctx, f.ID, !f.Selected)
	if err != nil {
		return err
	}
	if res.Notice != nil {
		fmt.Printf("Also selected %q: %s\n", res.Notice.AutoSelected.Name, res.Notice.Message)
	}
	if res.Pending != nil {
		names := make([]string, 0, len(res.Pending.Dependents))
		for _, dep := range res.Pending.Dependents {
			names = append(names, dep.Name)
		}
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("%s is required by %s. Remove them all", f.Name, strings.Join(names, ", ")),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return err
			}
			return nil // declined, selection unchanged
		}
		return w.ConfirmDeselect(ctx, f.ID)
	}
	return nil
}

func addCustomFeature(ctx context.Context, w *wizard.Wizard) error {
	name, err := promptLine("Feature name", "")
	if err != nil {
		return err
	}
	description, err := promptLine("Description (optional)", "")
	if err != nil {
		return err
	}
	cost, err := promptLine("Cost estimate (e.g. $500)", "")
	if err != nil {
		return err
	}
	duration, err := promptLine("Time estimate (e.g. 5 days)", "")
	if err != nil {
		return err
	}
	f, err := w.AddCustomFeature(ctx, name, description, cost, duration)
	if err != nil {
		if ve, ok := wizard.AsValidation(err); ok {
			printValidation(ve)
			return nil
		}
		return err
	}
	fmt.Printf("Added %q to the feature list.\n", f.Name)
	return nil
}

func stepReport(ctx context.Context, w *wizard.Wizard) error {
	fmt.Println("\nStep 4 of 4: Detailed Report")
	printReport(w)

	confirm := promptui.Prompt{
		Label:     "Download the blueprint PDF",
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			fmt.Println("\nProgress saved. Run `blueprint estimate` to continue.")
			return nil
		}
		fmt.Println("Report complete. Run `blueprint estimate` again to download later.")
		return nil
	}

	artifact, err := downloadWithRetry(ctx, w)
	if err != nil {
		return err
	}

	outPath := filepath.Join(".", fmt.Sprintf("blueprint-%s.pdf", artifact.ReportID))
	if err := os.WriteFile(outPath, artifact.Content, 0o644); err != nil {
		return fmt.Errorf("write blueprint file: %w", err)
	}
	fmt.Printf("Blueprint saved to %s\n", outPath)
	if artifact.RemoteURL != "" {
		GetLogger().Info("blueprint uploaded to %s", artifact.RemoteURL)
	}
	return nil
}

// downloadWithRetry waits for the background render rather than starting a
// duplicate one
func downloadWithRetry(ctx context.Context, w *wizard.Wizard) (*blueprint.Artifact, error) {
	for {
		artifact, err := w.Download(ctx)
		if err == nil {
			return artifact, nil
		}
		if !errors.Is(err, report.ErrNotReady) {
			return nil, err
		}
		fmt.Println("Preparing your blueprint...")
		if p := w.Pipeline(); p != nil {
			select {
			case <-p.BackgroundDone():
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		} else {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

func printReport(w *wizard.Wizard) {
	rep := w.Session().Report
	if rep == nil {
		return
	}
	est := rep.Estimate
	fmt.Printf("\nEstimated cost: %s\n", est.CostLabel)
	fmt.Printf("Estimated time: %s\n\n", est.TimeLabel)
	fmt.Println("Selected features:")
	for _, f := range rep.SelectedFeatures {
		fmt.Printf("  - %s (%s, %s)\n", f.Name, f.CostEstimate, f.TimeEstimate)
	}
	fmt.Println("\nProjected timeline:")
	for _, phase := range est.TimelinePhases {
		fmt.Printf("  %s: %s\n", phase.Phase, phase.Duration)
	}
	fmt.Println()
}

func promptLine(label, current string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: current,
	}
	value, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func printValidation(ve *wizard.ValidationError) {
	for _, msg := range ve.Fields {
		fmt.Printf("  ! %s\n", msg)
	}
}

func printWarnings(warnings []string) {
	for _, warning := range warnings {
		GetLogger().Warn("%s", warning)
	}
}

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}
