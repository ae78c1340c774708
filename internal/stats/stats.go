// Package stats accumulates the flat run-level counters described in
// §4.I: clause generation/retention counts broken down by phase, and
// the terminating reason of a saturation run, printed either as
// human-readable text or JSON for tooling.
package stats

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase tags which part of the pipeline a counter increment belongs to.
type Phase string

const (
	PhasePreprocessing Phase = "preprocessing"
	PhaseGenerating    Phase = "generating"
	PhaseSimplifying   Phase = "simplifying"
	PhaseSplitting     Phase = "splitting"
	PhaseAnswer        Phase = "answer_extraction"
)

// Reason names why a saturation run stopped, per §4.G/§4.H.
type Reason string

const (
	ReasonRefutationFound Reason = "refutation_found"
	ReasonSaturated       Reason = "saturated"
	ReasonTimeLimit       Reason = "time_limit"
	ReasonClauseLimit     Reason = "clause_limit"
	ReasonMemoryLimit     Reason = "memory_limit"
	ReasonUserRequest     Reason = "user_interrupt"
)

// Counters is the flat set of run-wide totals. Fields are exported so
// tptpout and test code can read them directly; mutation always goes
// through the Collector's Inc methods, which are the only concurrency-
// safe entry points.
type Counters struct {
	ClausesGenerated   int
	ClausesRetained    int
	ClausesDiscarded   int
	ClausesSimplified  int
	ClausesSplit       int
	SplitComponents    int
	SubsumptionHits    int
	TautologiesDropped int
	AnswersFound       int
}

// Collector accumulates Counters plus timing and the final Reason,
// guarded by a mutex since inference generation may eventually be
// parallelised across the active set (not yet exercised, but the
// teacher's own stats layer is built mutex-first for the same reason).
type Collector struct {
	mu       sync.Mutex
	start    time.Time
	counters Counters
	reason   Reason
	byPhase  map[Phase]int
}

// New returns a Collector with its clock started at creation time.
func New() *Collector {
	return &Collector{start: time.Now(), byPhase: make(map[Phase]int)}
}

func (c *Collector) Inc(field *int, delta int, phase Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*field += delta
	c.byPhase[phase] += delta
}

func (c *Collector) IncGenerated(phase Phase) {
	c.mu.Lock()
	c.counters.ClausesGenerated++
	c.byPhase[phase]++
	c.mu.Unlock()
}

func (c *Collector) IncRetained() {
	c.mu.Lock()
	c.counters.ClausesRetained++
	c.mu.Unlock()
}

func (c *Collector) IncDiscarded() {
	c.mu.Lock()
	c.counters.ClausesDiscarded++
	c.mu.Unlock()
}

func (c *Collector) IncSimplified() {
	c.mu.Lock()
	c.counters.ClausesSimplified++
	c.mu.Unlock()
}

func (c *Collector) IncSplit(components int) {
	c.mu.Lock()
	c.counters.ClausesSplit++
	c.counters.SplitComponents += components
	c.mu.Unlock()
}

func (c *Collector) IncSubsumption() {
	c.mu.Lock()
	c.counters.SubsumptionHits++
	c.mu.Unlock()
}

func (c *Collector) IncTautology() {
	c.mu.Lock()
	c.counters.TautologiesDropped++
	c.mu.Unlock()
}

func (c *Collector) IncAnswer() {
	c.mu.Lock()
	c.counters.AnswersFound++
	c.mu.Unlock()
}

// SetReason records the terminating reason; the first call wins, so a
// late "saturated" observation can't overwrite an already-recorded
// refutation.
func (c *Collector) SetReason(r Reason) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reason == "" {
		c.reason = r
	}
}

func (c *Collector) Reason() Reason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.start)
}

func (c *Collector) Snapshot() Counters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters
}

// Text renders a stable, human-readable summary in the spirit of a
// TSTP "% SZS" comment block: one "key : value" pair per line.
func (c *Collector) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "%% Elapsed               : %s\n", time.Since(c.start).Round(time.Millisecond))
	fmt.Fprintf(&b, "%% Reason                : %s\n", c.reason)
	fmt.Fprintf(&b, "%% Clauses generated      : %d\n", c.counters.ClausesGenerated)
	fmt.Fprintf(&b, "%% Clauses retained       : %d\n", c.counters.ClausesRetained)
	fmt.Fprintf(&b, "%% Clauses discarded      : %d\n", c.counters.ClausesDiscarded)
	fmt.Fprintf(&b, "%% Clauses simplified     : %d\n", c.counters.ClausesSimplified)
	fmt.Fprintf(&b, "%% Clauses split          : %d (%d components)\n", c.counters.ClausesSplit, c.counters.SplitComponents)
	fmt.Fprintf(&b, "%% Subsumption hits       : %d\n", c.counters.SubsumptionHits)
	fmt.Fprintf(&b, "%% Tautologies dropped    : %d\n", c.counters.TautologiesDropped)
	fmt.Fprintf(&b, "%% Answers found          : %d\n", c.counters.AnswersFound)
	return b.String()
}

// JSON renders the same data as Text but machine-readable, for the
// --output json CLI mode.
func (c *Collector) JSON() ([]byte, error) {
	c.mu.Lock()
	snapshot := struct {
		Counters
		Reason    Reason `json:"reason"`
		ElapsedMS int64  `json:"elapsed_ms"`
	}{Counters: c.counters, Reason: c.reason, ElapsedMS: time.Since(c.start).Milliseconds()}
	c.mu.Unlock()
	return json.MarshalIndent(snapshot, "", "  ")
}
