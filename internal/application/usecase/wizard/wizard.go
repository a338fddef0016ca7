// Package wizard implements the four-step estimate flow: personal details,
// app description, feature selection, and the detailed report. It owns the
// single active session and is the only writer of its state.
package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aviniti/blueprint/internal/application/port/output"
	"github.com/aviniti/blueprint/internal/application/usecase/report"
	"github.com/aviniti/blueprint/internal/domain/model/blueprint"
	"github.com/aviniti/blueprint/internal/domain/model/client"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
	"github.com/aviniti/blueprint/internal/domain/model/session"
	"github.com/aviniti/blueprint/internal/domain/repository"
	"github.com/aviniti/blueprint/internal/domain/service/aggregator"
	"github.com/aviniti/blueprint/internal/domain/service/resolver"
)

// minDescriptionLen is the shortest app description the catalogue provider
// can do anything useful with
const minDescriptionLen = 20

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Deps are the wizard's collaborators. Records may be nil: intake records
// are a side channel and the wizard degrades to warnings without them.
type Deps struct {
	Sessions  repository.SessionRepository
	Records   repository.ClientRecordRepository
	Catalogue output.CatalogueGateway
	Fallback  output.CatalogueGateway
	Renderer  output.ReportRenderer
	Storage   output.StorageGateway
	Rules     []feature.DependencyRule

	// BackgroundDelay overrides the speculative render delay when > 0
	BackgroundDelay time.Duration
}

// StepResult reports the outcome of a step submission. Warnings carry
// degraded-mode notices (failed record writes, fallback catalogue) that do
// not block progress.
type StepResult struct {
	Step     session.Step
	Warnings []string
}

// ToggleResult reports the outcome of a feature toggle
type ToggleResult struct {
	Notice  *resolver.Notice
	Pending *resolver.Confirmation
}

// Wizard runs one estimate session from personal details through report
// delivery
type Wizard struct {
	deps     Deps
	sess     *session.Session
	record   *client.Record
	pipeline *report.Pipeline
}

// New creates a wizard with a fresh session
func New(deps Deps) *Wizard {
	if len(deps.Rules) == 0 {
		deps.Rules = feature.DefaultRules()
	}
	return &Wizard{
		deps: deps,
		sess: session.New(),
	}
}

// Session returns the current session state
func (w *Wizard) Session() *session.Session {
	return w.sess
}

// Resume loads a persisted session if one exists and is fresh. It reports
// whether a previous run was resumed; otherwise the wizard keeps its fresh
// session.
func (w *Wizard) Resume(ctx context.Context) (bool, error) {
	if w.deps.Sessions == nil {
		return false, nil
	}
	stored, err := w.deps.Sessions.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if stored == nil {
		return false, nil
	}
	w.sess = stored
	if w.deps.Records != nil && stored.ClientRecordID != "" {
		if rec, err := w.deps.Records.Find(ctx, stored.ClientRecordID); err == nil {
			w.record = rec
		}
	}
	return true, nil
}

// SubmitUserInfo validates and records the step-1 personal details, creates
// the intake record, and advances to step 2
func (w *Wizard) SubmitUserInfo(ctx context.Context, details session.PersonalDetails) (*StepResult, error) {
	if w.sess.Step != session.StepUserInfo {
		return nil, ErrWrongStep
	}

	fields := make(map[string]string)
	if strings.TrimSpace(details.FullName) == "" {
		fields["fullName"] = "name is required"
	}
	if strings.TrimSpace(details.EmailAddress) == "" {
		fields["emailAddress"] = "email is required"
	} else if !emailPattern.MatchString(details.EmailAddress) {
		fields["emailAddress"] = "email address is not valid"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	w.sess.PersonalDetails = details

	var warnings []string
	if w.deps.Records != nil {
		rec := client.NewRecord(details)
		if err := w.deps.Records.Save(ctx, rec); err != nil {
			warnings = append(warnings, "intake record could not be saved; continuing without it")
		} else {
			w.record = rec
			w.sess.ClientRecordID = rec.ID
		}
	}

	w.sess.Advance()
	warnings = append(warnings, w.persist(ctx)...)
	return &StepResult{Step: w.sess.Step, Warnings: warnings}, nil
}

// SubmitAppDescription validates the step-2 input, obtains the feature
// catalogue from the provider (or the deterministic fallback when the
// provider fails), and advances to step 3
func (w *Wizard) SubmitAppDescription(ctx context.Context, desc session.AppDescription) (*StepResult, error) {
	if w.sess.Step != session.StepAppDescription {
		return nil, ErrWrongStep
	}

	fields := make(map[string]string)
	if len(strings.TrimSpace(desc.Description)) < minDescriptionLen {
		fields["description"] = fmt.Sprintf("describe your app in at least %d characters", minDescriptionLen)
	}
	if len(desc.Platforms) == 0 {
		fields["selectedPlatforms"] = "select at least one platform"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	w.sess.AppDescription = desc

	var warnings []string
	catalogue, usedFallback, err := w.analyze(ctx, desc)
	if err != nil {
		return nil, err
	}
	if usedFallback {
		warnings = append(warnings, "feature analysis is unavailable; a generic catalogue was used instead")
	}
	w.sess.Catalogue = catalogue
	w.sess.FallbackCatalogue = usedFallback

	if w.record != nil {
		w.record.AppDescription = desc.Description
		w.record.Platforms = desc.Platforms
		w.record.Status = client.StatusPendingFeatures
		w.record.UpdatedAt = time.Now().UTC()
		if err := w.deps.Records.Save(ctx, w.record); err != nil {
			warnings = append(warnings, "intake record update failed; continuing")
		}
	}

	w.sess.Advance()
	warnings = append(warnings, w.persist(ctx)...)
	return &StepResult{Step: w.sess.Step, Warnings: warnings}, nil
}

func (w *Wizard) analyze(ctx context.Context, desc session.AppDescription) (*feature.Catalogue, bool, error) {
	req := output.AnalyzeRequest{Description: desc.Description, Platforms: desc.Platforms}
	if w.deps.Catalogue != nil {
		catalogue, err := w.deps.Catalogue.Analyze(ctx, req)
		if err == nil {
			return catalogue, false, nil
		}
	}
	if w.deps.Fallback == nil {
		return nil, false, fmt.Errorf("no feature catalogue available")
	}
	catalogue, err := w.deps.Fallback.Analyze(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("fallback catalogue: %w", err)
	}
	return catalogue, true, nil
}

// ToggleFeature flips the selection state of one feature, resolving
// dependencies. A deselect that would strand dependents returns a pending
// confirmation and leaves the catalogue unchanged.
func (w *Wizard) ToggleFeature(ctx context.Context, id string, wantSelect bool) (*ToggleResult, error) {
	if w.sess.Step != session.StepFeatureSelection {
		return nil, ErrWrongStep
	}
	res, err := resolver.Toggle(w.sess.Catalogue.Features, w.deps.Rules, id, wantSelect)
	if err != nil {
		return nil, err
	}
	if res.Pending != nil {
		return &ToggleResult{Pending: res.Pending}, nil
	}
	w.sess.Catalogue.Features = res.Features
	w.sess.Touch()
	w.persist(ctx)
	return &ToggleResult{Notice: res.Notice}, nil
}

// ConfirmDeselect applies a confirmed deselect cascade: the target feature
// and its stranded dependents are deselected together
func (w *Wizard) ConfirmDeselect(ctx context.Context, id string) error {
	if w.sess.Step != session.StepFeatureSelection {
		return ErrWrongStep
	}
	res, err := resolver.ConfirmDeselect(w.sess.Catalogue.Features, w.deps.Rules, id)
	if err != nil {
		return err
	}
	w.sess.Catalogue.Features = res.Features
	w.sess.Touch()
	w.persist(ctx)
	return nil
}

// AddCustomFeature appends a user-authored feature, selected, to the
// enhancement group
func (w *Wizard) AddCustomFeature(ctx context.Context, name, description, costEstimate, timeEstimate string) (feature.Feature, error) {
	if w.sess.Step != session.StepFeatureSelection {
		return feature.Feature{}, ErrWrongStep
	}
	f, err := feature.NewCustomFeature(name, description, costEstimate, timeEstimate)
	if err != nil {
		return feature.Feature{}, &ValidationError{Fields: map[string]string{"name": err.Error()}}
	}
	w.sess.Catalogue.Append(f)
	w.sess.Touch()
	w.persist(ctx)
	return f, nil
}

// SubmitFeatureSelection finalizes step 3: it checks the selection against
// the dependency rules, computes the estimate, builds the detailed report,
// and kicks off the speculative report render in the background
func (w *Wizard) SubmitFeatureSelection(ctx context.Context) (*StepResult, error) {
	if w.sess.Step != session.StepFeatureSelection {
		return nil, ErrWrongStep
	}
	selected := w.sess.Catalogue.Selected()
	if len(selected) == 0 {
		return nil, &ValidationError{Fields: map[string]string{
			"features": "select at least one feature",
		}}
	}
	if violated := resolver.Unsatisfied(w.sess.Catalogue.Features, w.deps.Rules); len(violated) > 0 {
		return nil, &ValidationError{Fields: map[string]string{
			"features": violated[0].Message,
		}}
	}

	estimate := aggregator.Aggregate(selected)
	w.sess.Report = &blueprint.Report{
		AppOverview:      w.sess.Catalogue.AppOverview,
		SelectedFeatures: selected,
		Estimate:         estimate,
	}

	var warnings []string
	if w.record != nil {
		if snapshot, err := json.Marshal(selected); err == nil {
			w.record.SelectedFeatures = string(snapshot)
		}
		w.record.TotalCost = estimate.CostLabel
		w.record.TotalTime = estimate.TimeLabel
		w.record.Status = client.StatusReportGenerated
		w.record.UpdatedAt = time.Now().UTC()
		if err := w.deps.Records.Save(ctx, w.record); err != nil {
			warnings = append(warnings, "intake record update failed; continuing")
		}
	}

	w.sess.Advance()
	warnings = append(warnings, w.persist(ctx)...)

	w.startPipeline(ctx)
	return &StepResult{Step: w.sess.Step, Warnings: warnings}, nil
}

func (w *Wizard) startPipeline(ctx context.Context) {
	if !w.ensurePipeline() {
		return
	}
	w.pipeline.Start(ctx, w.sess.SessionID, w.renderRequest())
}

func (w *Wizard) ensurePipeline() bool {
	if w.deps.Renderer == nil || w.deps.Storage == nil {
		return false
	}
	if w.pipeline == nil {
		var opts []report.Option
		if w.deps.BackgroundDelay > 0 {
			opts = append(opts, report.WithBackgroundDelay(w.deps.BackgroundDelay))
		}
		w.pipeline = report.NewPipeline(w.deps.Renderer, w.deps.Storage, w.deps.Sessions, opts...)
	}
	return true
}

func (w *Wizard) renderRequest() output.RenderRequest {
	return output.RenderRequest{
		Details:     w.sess.PersonalDetails,
		Description: w.sess.AppDescription,
		Report:      w.sess.Report,
		GeneratedAt: time.Now().UTC(),
	}
}

// Download delivers the blueprint document for the completed report. It
// blocks only for a local render; while the background render is in flight
// it returns report.ErrNotReady.
func (w *Wizard) Download(ctx context.Context) (*blueprint.Artifact, error) {
	if w.sess.Step != session.StepReport {
		return nil, ErrWrongStep
	}
	if w.sess.Report == nil {
		return nil, fmt.Errorf("no report to download")
	}
	if !w.ensurePipeline() {
		return nil, fmt.Errorf("report pipeline is not configured")
	}
	// A resumed session never started the speculative task; prime the
	// pipeline so the download renders on demand
	w.pipeline.Prime(w.sess.SessionID, w.renderRequest())
	artifact, err := w.pipeline.Download(ctx)
	if err != nil {
		return nil, err
	}
	w.sess.ArtifactRef = artifact.ReportID

	if w.record != nil {
		w.record.Status = client.StatusCompleted
		w.record.UpdatedAt = time.Now().UTC()
		_ = w.deps.Records.Save(ctx, w.record)
	}
	return artifact, nil
}

// Pipeline exposes the report pipeline for state inspection. It is nil
// until step 3 has been submitted.
func (w *Wizard) Pipeline() *report.Pipeline {
	return w.pipeline
}

// Back moves the wizard back one step, preserving all entered data. At
// step 1 it is a no-op.
func (w *Wizard) Back(ctx context.Context) session.Step {
	w.sess.Back()
	w.persist(ctx)
	return w.sess.Step
}

// persist writes the session record once the wizard is past step 1. Save
// failures degrade to a warning; wizard state is in memory and progress
// continues.
func (w *Wizard) persist(ctx context.Context) []string {
	if w.deps.Sessions == nil || w.sess.Step <= session.StepUserInfo {
		return nil
	}
	if err := w.deps.Sessions.Save(ctx, w.sess); err != nil {
		return []string{"session could not be saved; progress will not survive a restart"}
	}
	return nil
}
