// Package proverctx bundles the per-run singletons (term store, BDD
// manager, inference store, stats collector) that would otherwise be
// process globals, per the Design Notes' "Context threading instead of
// process globals" decision. A saturn run constructs exactly one
// Context and threads it through every constructor.
package proverctx

import (
	"github.com/fologic/saturn/internal/bdd"
	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/stats"
	"github.com/fologic/saturn/internal/term"
)

// Context is the shared state of a single saturation run.
type Context struct {
	Terms      *term.Store
	BDD        *bdd.Manager
	Inferences *inference.Store
	Stats      *stats.Collector

	clauseIDs uint64
}

// New returns a fresh Context with all sub-stores initialised.
func New() *Context {
	return &Context{
		Terms:      term.NewStore(),
		BDD:        bdd.NewManager(),
		Inferences: inference.NewStore(),
		Stats:      stats.New(),
	}
}

// NextClauseID returns the next clause identifier in the run-wide
// monotonic sequence, shared by clausification, splitting and every
// generating inference so IDs never collide regardless of which
// package minted them.
func (c *Context) NextClauseID() uint64 {
	c.clauseIDs++
	return c.clauseIDs
}

// ClauseIDCounter exposes the address of the counter itself, for
// subsystems (internal/split) that mint IDs through sync/atomic
// instead of through NextClauseID directly.
func (c *Context) ClauseIDCounter() *uint64 {
	return &c.clauseIDs
}
