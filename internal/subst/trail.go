package subst

import "github.com/fologic/saturn/internal/term"

// mutation is one undoable change recorded while a Trail is recording.
type mutation struct {
	v    *term.Term
	bank uint32
}

// Trail records substitution mutations so a failed unification
// attempt, or a backward step in the saturation loop, can be undone
// without leaving the Substitution half-mutated, per §4.B and the
// Design Notes' "explicit trail value with Checkpoint/Commit/Rollback"
// guidance. Recordings nest as a stack: record/done calls must be
// balanced, mirroring the teacher's level-indexed decision trail.
type Trail struct {
	subst *Substitution
	marks []int       // stack of checkpoint offsets into log
	log   []mutation // chronological mutation log across all nested scopes
}

// NewTrail returns a trail guarding the given substitution.
func NewTrail(s *Substitution) *Trail {
	return &Trail{subst: s}
}

// Substitution returns the substitution this trail guards.
func (t *Trail) Substitution() *Substitution { return t.subst }

// Record starts a new nested recording scope; mutations performed
// after this call (via Bind) can be undone back to this point by the
// matching Backtrack, or kept by the matching Done.
func (t *Trail) Record() {
	t.marks = append(t.marks, len(t.log))
}

// Done ends the innermost recording scope, keeping its mutations but
// popping the checkpoint so an outer Backtrack also undoes them.
func (t *Trail) Done() {
	if len(t.marks) == 0 {
		panic("subst: Done called with no matching Record")
	}
	t.marks = t.marks[:len(t.marks)-1]
}

// Backtrack undoes every mutation recorded since the innermost Record
// and pops that checkpoint.
func (t *Trail) Backtrack() {
	if len(t.marks) == 0 {
		panic("subst: Backtrack called with no matching Record")
	}
	mark := t.marks[len(t.marks)-1]
	t.marks = t.marks[:len(t.marks)-1]
	for i := len(t.log) - 1; i >= mark; i-- {
		m := t.log[i]
		t.subst.unbind(m.v, m.bank)
	}
	t.log = t.log[:mark]
}

// Bind records (v, bank) -> (to, toBank) into the guarded substitution
// so it can be undone by a later Backtrack.
func (t *Trail) Bind(v *term.Term, bank uint32, to *term.Term, toBank uint32) {
	t.subst.bind(v, bank, to, toBank)
	t.log = append(t.log, mutation{v: v, bank: bank})
}

// Depth reports how many nested Record scopes are currently open.
func (t *Trail) Depth() int { return len(t.marks) }
