package planetizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kiesman99/planetize/pkg/texture"
	"golang.org/x/sync/semaphore"
)

// Policy decides what happens when a run is requested while another one
// is still in flight.
type Policy int

const (
	// Reject fails the new run with ErrBusy.
	Reject Policy = iota
	// CancelPrevious cancels the in-flight run and starts once it has
	// released. When several runs queue up, only the newest one proceeds.
	CancelPrevious
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case CancelPrevious:
		return "cancel-previous"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses a policy name as printed by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "reject":
		return Reject, nil
	case "cancel-previous", "cancel":
		return CancelPrevious, nil
	}
	return Reject, fmt.Errorf("unknown run policy %q", s)
}

// ErrBusy is returned under the Reject policy while a run is in flight.
var ErrBusy = errors.New("a planet is already being generated")

// errSuperseded marks a queued run that lost to a newer one.
var errSuperseded = fmt.Errorf("superseded by a newer run: %w", context.Canceled)

// Config contains the coordinator settings
type Config struct {
	Texture texture.Options
	Policy  Policy
	// Delay is waited after the scheduling yield, before synthesis starts.
	Delay time.Duration
}

// Request describes one run
type Request struct {
	// Crop is the square source photo.
	Crop image.Image
	// Options overrides the coordinator's texture options when set.
	Options *texture.Options
	// Bump also derives and encodes the bump map. A zero BumpContrast
	// uses texture.DefaultContrast.
	Bump         bool
	BumpContrast float64
}

// Result contains the output of one run
type Result struct {
	*texture.Result
	Bump       *image.Gray
	TexturePNG []byte
	BumpPNG    []byte
}

// Planetizer runs texture synthesis with at most one run in flight.
type Planetizer struct {
	sem    *semaphore.Weighted
	policy Policy
	delay  time.Duration
	opts   atomic.Pointer[texture.Options]
	busy   atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	ticket uint64
}

// New creates a new planetizer. Invalid texture options fall back to the
// defaults.
func New(cfg Config) *Planetizer {
	p := &Planetizer{
		sem:    semaphore.NewWeighted(1),
		policy: cfg.Policy,
		delay:  cfg.Delay,
	}
	if err := p.SetOptions(cfg.Texture); err != nil {
		Logger().Warn("invalid texture options, using defaults", "error", err)
		p.opts.Store(&texture.Options{})
	}
	return p
}

// SetOptions replaces the texture options used by later runs.
func (p *Planetizer) SetOptions(o texture.Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	p.opts.Store(&o)
	return nil
}

// Options returns the texture options used by runs without an override.
func (p *Planetizer) Options() texture.Options {
	return *p.opts.Load()
}

// Busy reports whether a run currently holds the planetizer.
func (p *Planetizer) Busy() bool {
	return p.busy.Load()
}

// Run synthesizes one texture. It yields once before starting so a caller
// can show progress, then runs the pipeline and encodes the PNGs. A run
// cancelled before or after synthesis returns ctx.Err() and no result.
func (p *Planetizer) Run(ctx context.Context, req Request) (*Result, error) {
	ctx, release, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	log := Logger()
	runtime.Gosched()
	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := p.Options()
	if req.Options != nil {
		opts = *req.Options
	}
	tex, err := texture.Synthesize(req.Crop, opts)
	if err != nil {
		return nil, fmt.Errorf("synthesize texture: %w", err)
	}
	if err := ctx.Err(); err != nil {
		log.Debug("run cancelled after synthesis")
		return nil, err
	}

	res := &Result{Result: tex}
	if res.TexturePNG, err = encodePNG(tex.Texture); err != nil {
		return nil, fmt.Errorf("failed to encode texture: %w", err)
	}
	if req.Bump {
		res.Bump = texture.BumpMap(tex.Texture, req.BumpContrast)
		if res.BumpPNG, err = encodePNG(res.Bump); err != nil {
			return nil, fmt.Errorf("failed to encode bump map: %w", err)
		}
	}

	log.Info("planet texture ready",
		"width", tex.Texture.Rect.Dx(),
		"height", tex.Texture.Rect.Dy(),
		"edge", tex.Edge.Hex(),
		"degenerate", tex.Degenerate,
		"bump", req.Bump,
		"duration", tex.Duration)
	return res, nil
}

// acquire takes the single run slot according to the policy and returns
// the run context with its release func.
func (p *Planetizer) acquire(ctx context.Context) (context.Context, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var ticket uint64
	switch p.policy {
	case CancelPrevious:
		p.mu.Lock()
		p.ticket++
		ticket = p.ticket
		if p.cancel != nil {
			p.cancel()
		}
		p.mu.Unlock()
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return nil, nil, err
		}
	default:
		if !p.sem.TryAcquire(1) {
			return nil, nil, ErrBusy
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	if p.policy == CancelPrevious && ticket != p.ticket {
		p.mu.Unlock()
		cancel()
		p.sem.Release(1)
		return nil, nil, errSuperseded
	}
	p.cancel = cancel
	p.mu.Unlock()
	p.busy.Store(true)

	release := func() {
		cancel()
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
		p.busy.Store(false)
		p.sem.Release(1)
	}
	return runCtx, release, nil
}

// encodePNG encodes img as PNG
func encodePNG(img image.Image) ([]byte, error) {
	var output bytes.Buffer
	if err := png.Encode(&output, img); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}
