// Package report drives asynchronous blueprint generation: a speculative
// background render+upload racing a user-triggered fallback, with at most
// one durable upload per session.
package report

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aviniti/blueprint/internal/application/port/output"
	"github.com/aviniti/blueprint/internal/domain/model/blueprint"
	"github.com/aviniti/blueprint/internal/domain/repository"
)

// State identifies where the pipeline is in its lifecycle
type State int

const (
	StateIdle State = iota
	StateBackgroundRendering
	StateBackgroundReady
	StateBackgroundFailed
	StateLocalRendering
	StateUploaded
	StateUploadFailed // delivered locally, upload did not succeed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBackgroundRendering:
		return "background-rendering"
	case StateBackgroundReady:
		return "background-ready"
	case StateBackgroundFailed:
		return "background-failed"
	case StateLocalRendering:
		return "local-rendering"
	case StateUploaded:
		return "uploaded"
	case StateUploadFailed:
		return "upload-failed"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned by Download while the speculative render is still
// in flight; the caller should retry rather than start a duplicate render.
var ErrNotReady = errors.New("blueprint is not ready yet")

// DefaultBackgroundDelay lets the caller's surface settle before the
// speculative render starts
const DefaultBackgroundDelay = 750 * time.Millisecond

// Pipeline renders and uploads one blueprint per session. The mutex
// serializes the background producer and the caller; only the pipeline
// itself ever leaves Idle or BackgroundRendering.
type Pipeline struct {
	renderer output.ReportRenderer
	storage  output.StorageGateway
	sessions repository.SessionRepository
	delay    time.Duration

	mu        sync.Mutex
	state     State
	sessionID string
	req       output.RenderRequest
	artifact  *blueprint.Artifact // cached after first successful delivery
	uploaded  bool
	bgDone    chan struct{}
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithBackgroundDelay overrides the speculative render delay
func WithBackgroundDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.delay = d }
}

// NewPipeline creates an idle pipeline
func NewPipeline(renderer output.ReportRenderer, storage output.StorageGateway, sessions repository.SessionRepository, opts ...Option) *Pipeline {
	p := &Pipeline{
		renderer: renderer,
		storage:  storage,
		sessions: sessions,
		delay:    DefaultBackgroundDelay,
		state:    StateIdle,
		bgDone:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current pipeline state
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// BackgroundDone is closed when the speculative task has finished, whether
// it succeeded or failed. It never closes if Start was not called.
func (p *Pipeline) BackgroundDone() <-chan struct{} {
	return p.bgDone
}

// Start schedules the speculative render+upload for the given session. It
// returns immediately; the task runs after a short delay so the caller's
// surface can settle first. Calling Start more than once is a no-op.
//
// There is no cancellation token: if the wizard is reset before the task
// completes, its result is discarded when it resolves. Uploads are keyed
// per session and idempotent, so this is a resource tradeoff, not a
// correctness problem.
func (p *Pipeline) Start(ctx context.Context, sessionID string, req output.RenderRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateIdle {
		return
	}
	p.state = StateBackgroundRendering
	p.sessionID = sessionID
	p.req = req

	go p.runBackground(ctx)
}

// Prime records the session and render input without starting the
// speculative task. Used when a completed session is resumed and the
// report must be rendered on demand. No-op once the pipeline has left
// Idle.
func (p *Pipeline) Prime(sessionID string, req output.RenderRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateIdle {
		return
	}
	p.sessionID = sessionID
	p.req = req
}

func (p *Pipeline) runBackground(ctx context.Context) {
	defer close(p.bgDone)

	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		p.setState(StateBackgroundFailed)
		return
	}

	content, err := p.renderer.Render(ctx, p.req)
	if err != nil {
		p.setState(StateBackgroundFailed)
		return
	}

	reportID := newReportID()
	loc, err := p.storage.SaveBlueprint(ctx, output.SaveBlueprintRequest{
		SessionID:   p.sessionID,
		ReportID:    reportID,
		Content:     content,
		ContentType: "application/pdf",
	})
	if err != nil {
		p.setState(StateBackgroundFailed)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.artifact = &blueprint.Artifact{
		Content:   content,
		ReportID:  reportID,
		RemoteURL: loc.RemoteURL,
	}
	p.uploaded = true
	p.state = StateBackgroundReady
}

// Download delivers the blueprint to the user.
//
//   - Background ready: the already-uploaded artifact is fetched by its
//     durable reference — no new render, no new upload.
//   - Background in flight: ErrNotReady, and no duplicate render starts.
//   - Idle or background failed: a local synchronous render delivers
//     directly; upload is attempted as a best-effort side channel and
//     never blocks delivery.
//
// Successful delivery clears the session store record.
func (p *Pipeline) Download(ctx context.Context) (*blueprint.Artifact, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateBackgroundRendering:
		return nil, ErrNotReady

	case StateBackgroundReady, StateUploaded:
		content, err := p.storage.LoadBlueprint(ctx, p.sessionID, p.artifact.ReportID)
		if err != nil {
			// The durable copy is unreachable; fall back to the cached bytes
			content = p.artifact.Content
		}
		artifact := &blueprint.Artifact{
			Content:   content,
			ReportID:  p.artifact.ReportID,
			RemoteURL: p.artifact.RemoteURL,
		}
		p.state = StateUploaded
		p.clearSession(ctx)
		return artifact, nil

	case StateUploadFailed:
		// Already delivered once without a durable copy; re-deliver the
		// cached artifact without a second upload attempt
		p.clearSession(ctx)
		return p.artifact, nil

	case StateIdle, StateBackgroundFailed:
		return p.renderLocally(ctx)

	default:
		return p.renderLocally(ctx)
	}
}

// renderLocally performs the on-demand fallback render. Called with p.mu
// held; the background task can no longer transition at this point.
func (p *Pipeline) renderLocally(ctx context.Context) (*blueprint.Artifact, error) {
	prev := p.state
	p.state = StateLocalRendering

	content, err := p.renderer.Render(ctx, p.req)
	if err != nil {
		p.state = prev
		return nil, err
	}

	artifact := &blueprint.Artifact{
		Content:  content,
		ReportID: newReportID(),
	}

	if !p.uploaded {
		loc, err := p.storage.SaveBlueprint(ctx, output.SaveBlueprintRequest{
			SessionID:   p.sessionID,
			ReportID:    artifact.ReportID,
			Content:     content,
			ContentType: "application/pdf",
		})
		if err == nil {
			p.uploaded = true
			artifact.RemoteURL = loc.RemoteURL
		}
	}

	if artifact.RemoteURL != "" {
		p.state = StateUploaded
	} else {
		p.state = StateUploadFailed
	}
	p.artifact = artifact
	p.clearSession(ctx)
	return artifact, nil
}

// clearSession removes the persisted session record after delivery. A
// failure here leaves a stale record that the TTL will reap; it is not
// surfaced to the user.
func (p *Pipeline) clearSession(ctx context.Context) {
	if p.sessions != nil {
		_ = p.sessions.Clear(ctx)
	}
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s
}

func newReportID() string {
	return strings.ToLower(ulid.Make().String())
}
