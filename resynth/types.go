package resynth

import (
	"errors"
	"log"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/simulate"
	"github.com/katalvlaran/lvlath-sfm/timing"
)

// Sentinel errors. Every one is a caller-input problem, never raised by a
// per-pivot Skip (spec.md §7's Skip/Timeout/No-decomposition/No-match
// taxonomy is reported through Stats, not errors).
var (
	// ErrNilNet indicates Resynthesize was called with a nil network.
	ErrNilNet = errors.New("resynth: network is nil")

	// ErrNilLibrary indicates Resynthesize was called with a nil library.
	ErrNilLibrary = errors.New("resynth: library is nil")

	// ErrBadTimeWin indicates NTimeWin is outside (0, 100].
	ErrBadTimeWin = errors.New("resynth: NTimeWin must be in (0, 100]")
)

// Params bounds one Resynthesize run — spec.md §6's documented parameter
// set, mirroring flow.FlowOptions' plain-struct-plus-Verbose-flag shape.
// The zero value is not meaningful; use DefaultParams.
type Params struct {
	NTfoLevMax   int
	NTfiLevMax   int
	NFanoutMax   int
	NMffcMin     int
	NMffcMax     int
	NVarMax      int
	NBTLimit     int
	NTimeWin     int
	NGrowthLevel int
	NNodesMax    int

	AreaMode    bool
	AreaRevMode bool
	DelayMode   bool
	RewriteOnly bool
	UseAndOr    bool
	ZeroCost    bool
	MoreEffort  bool
	UseSim      bool

	Logger Logger
}

// DefaultParams mirrors spec.md §6's documented defaults.
func DefaultParams() Params {
	return Params{
		NTfoLevMax:   100,
		NTfiLevMax:   100,
		NFanoutMax:   30,
		NMffcMin:     1,
		NMffcMax:     3,
		NVarMax:      6,
		NBTLimit:     0,
		NTimeWin:     1,
		NGrowthLevel: 0,
		NNodesMax:    0,
		AreaMode:     true,
		UseAndOr:     true,
		UseSim:       true,
		Logger:       noopLogger{},
	}
}

// Option configures Params, following dijkstra.Option/builder.BuilderOption
// in shape: a function closing over the field(s) it sets.
type Option func(*Params)

// WithAreaMode selects the forward area-recovery driver loop (the default).
func WithAreaMode() Option { return func(p *Params) { p.AreaMode, p.AreaRevMode, p.DelayMode = true, false, false } }

// WithAreaReverseMode selects the fanin-driven reverse area-recovery loop.
func WithAreaReverseMode() Option {
	return func(p *Params) { p.AreaMode, p.AreaRevMode, p.DelayMode = false, true, false }
}

// WithDelayMode selects the timing-priority driver loop.
func WithDelayMode() Option {
	return func(p *Params) { p.AreaMode, p.AreaRevMode, p.DelayMode = false, false, true }
}

// WithBTLimit sets the SAT conflict budget per call (0 = unlimited).
// Panics on a negative value, matching dijkstra.WithMaxDistance's
// panic-on-invalid-literal convention for option constructors.
func WithBTLimit(n int) Option {
	if n < 0 {
		panic("resynth: WithBTLimit requires a non-negative conflict budget")
	}

	return func(p *Params) { p.NBTLimit = n }
}

// WithTimeWin sets the percentage of interior gates considered per
// delay-priority batch. Panics outside (0, 100].
func WithTimeWin(pct int) Option {
	if pct <= 0 || pct > 100 {
		panic("resynth: WithTimeWin requires a percentage in (0, 100]")
	}

	return func(p *Params) { p.NTimeWin = pct }
}

// WithNodesMax caps the number of gates a driver loop will process (0 =
// unlimited).
func WithNodesMax(n int) Option { return func(p *Params) { p.NNodesMax = n } }

// WithRewriteOnly restricts decomposition to the non-recursive chain
// discovery (decomp.RewriteOnly) instead of the full recursive cofactor
// search.
func WithRewriteOnly() Option { return func(p *Params) { p.RewriteOnly = true } }

// WithMoreEffort enables the fMoreEffort retry: on a failed pivot, retry
// once per InMFFC divisor with that divisor forced as the first cofactor.
func WithMoreEffort() Option { return func(p *Params) { p.MoreEffort = true } }

// WithZeroCost allows accepting an equal-area/equal-delay replacement
// (spec.md §6's fZeroCost).
func WithZeroCost() Option { return func(p *Params) { p.ZeroCost = true } }

// WithUseSim toggles spec.md §6's fUseSim flag: whether a window's
// simulation patterns are refreshed (simulate.Simulator.Setdown) after it
// closes. The simulator itself always seeds every window's PatternSet;
// this only controls whether that seed feeds back into future windows.
func WithUseSim(enabled bool) Option { return func(p *Params) { p.UseSim = enabled } }

// WithLogger installs a custom Logger (default: a no-op).
func WithLogger(l Logger) Option {
	if l == nil {
		panic("resynth: WithLogger requires a non-nil Logger")
	}

	return func(p *Params) { p.Logger = l }
}

// Logger receives verbose per-pivot trace lines, spec.md §6's
// fVerbose/fVeryVerbose flags collapsed into one interface — no logging
// library is in the corpus (the teacher has none), so this follows
// flow.FlowOptions.Verbose's "gate a formatted line on a flag" convention
// instead of inventing a structured-logging dependency.
type Logger interface {
	Logf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Logf(string, ...any) {}

// StdLogger adapts the standard library's *log.Logger to Logger.
type StdLogger struct {
	L *log.Logger
}

// Logf implements Logger.
func (s StdLogger) Logf(format string, args ...any) {
	if s.L == nil {
		return
	}
	s.L.Printf(format, args...)
}

// Stats tallies one Resynthesize run — spec.md §9's Sfm_DecStats,
// returned (not printed) per SPEC_FULL.md's resynth.Stats note.
type Stats struct {
	NodesVisited int
	NodesChanged int

	NodesConst0 int
	NodesConst1 int
	NodesBuf    int
	NodesInv    int
	NodesAndOr  int
	NodesResyn  int

	NTimeOuts int
	NNoDecs   int
	NNoMatch  int

	AreaBefore int64
	AreaAfter  int64

	DelayBefore int64
	DelayAfter  int64
}

// pivotContext bundles the per-run dependencies every pivot attempt needs,
// avoiding a long positional-parameter list threaded through decide.go and
// drivers.go.
type pivotContext struct {
	net    *network.Net
	lib    *cellib.Library
	sim    *simulate.Simulator
	timing *timing.Engine // nil outside delay mode
	params Params
	stats  *Stats
}
