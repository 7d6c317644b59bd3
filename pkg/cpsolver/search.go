package cpsolver

import (
	"context"
	"sync"
	"time"
)

// Params bound a single solve. A zero TimeLimit means unbounded; Workers
// caps the number of parallel search goroutines.
type Params struct {
	TimeLimit time.Duration
	Workers   int
}

const deadlineCheckInterval = 4096

// Solve runs branch-and-bound over the model and returns the best truth
// assignment found. Results are deterministic for identical models and
// params as long as the time budget is not exceeded: branching follows
// variable-creation order and an incumbent is only replaced by a strictly
// better objective.
func Solve(ctx context.Context, m *Model, p Params) Solution {
	if len(m.errs) > 0 {
		return Solution{Status: StatusModelInvalid}
	}

	var deadline time.Time
	if p.TimeLimit > 0 {
		deadline = time.Now().Add(p.TimeLimit)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}

	if len(m.groups) == 0 {
		return Solution{Status: StatusOptimal, values: make([]bool, len(m.names))}
	}

	pre := precompute(m)

	first := m.groups[0]
	workers := p.Workers
	if workers > len(first) {
		workers = len(first)
	}
	if workers <= 1 {
		s := newSearcher(m, pre, ctx, deadline, -1)
		s.explore(0)
		return s.solution()
	}
	return solveParallel(ctx, m, pre, deadline, workers)
}

func solveParallel(ctx context.Context, m *Model, pre *precomp, deadline time.Time, workers int) Solution {
	type outcome struct {
		found    bool
		best     int64
		firstIdx int
		values   []bool
		timedOut bool
	}

	first := m.groups[0]
	results := make([]outcome, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			agg := outcome{firstIdx: -1}
			for idx := w; idx < len(first); idx += workers {
				s := newSearcher(m, pre, ctx, deadline, idx)
				s.explore(0)
				if s.timedOut {
					agg.timedOut = true
				}
				if s.found && (!agg.found || s.best > agg.best) {
					agg.found = true
					agg.best = s.best
					agg.firstIdx = idx
					agg.values = s.bestValues
				}
			}
			results[w] = agg
		}(w)
	}
	wg.Wait()

	// Merge by objective, breaking ties toward the earliest first-group
	// branch so the parallel split cannot change the reported solution.
	merged := outcome{firstIdx: -1}
	for _, res := range results {
		if res.timedOut {
			merged.timedOut = true
		}
		if !res.found {
			continue
		}
		if !merged.found || res.best > merged.best ||
			(res.best == merged.best && res.firstIdx < merged.firstIdx) {
			merged.found = true
			merged.best = res.best
			merged.firstIdx = res.firstIdx
			merged.values = res.values
		}
	}

	switch {
	case merged.found && !merged.timedOut:
		return Solution{Status: StatusOptimal, Objective: merged.best, values: merged.values}
	case merged.found:
		return Solution{Status: StatusFeasible, Objective: merged.best, values: merged.values}
	case merged.timedOut:
		return Solution{Status: StatusUnknown}
	default:
		return Solution{Status: StatusInfeasible}
	}
}

type precomp struct {
	varCons [][]int
	suffix  []int64
	// indicatorSlack is the admissible optimistic contribution of all
	// indicator variables, counted once in every bound.
	indicatorSlack int64
}

func precompute(m *Model) *precomp {
	pre := &precomp{varCons: make([][]int, len(m.names))}
	for idx, con := range m.atMost {
		for _, v := range con.vars {
			pre.varCons[v] = append(pre.varCons[v], idx)
		}
	}

	pre.suffix = make([]int64, len(m.groups)+1)
	for g := len(m.groups) - 1; g >= 0; g-- {
		maxCoeff := m.objective[m.groups[g][0]]
		for _, v := range m.groups[g][1:] {
			if m.objective[v] > maxCoeff {
				maxCoeff = m.objective[v]
			}
		}
		pre.suffix[g] = pre.suffix[g+1] + maxCoeff
	}

	for _, ind := range m.indicators {
		if coeff := m.objective[ind.v]; coeff > 0 {
			pre.indicatorSlack += coeff
		}
	}
	return pre
}

type searcher struct {
	m        *Model
	pre      *precomp
	ctx      context.Context
	deadline time.Time

	// forcedFirst restricts the root group to a single branch when the
	// search is split across workers. Negative means unrestricted.
	forcedFirst int

	values  []bool
	counts  []int
	current int64
	nodes   int

	found      bool
	best       int64
	bestValues []bool
	timedOut   bool
}

func newSearcher(m *Model, pre *precomp, ctx context.Context, deadline time.Time, forcedFirst int) *searcher {
	return &searcher{
		m:           m,
		pre:         pre,
		ctx:         ctx,
		deadline:    deadline,
		forcedFirst: forcedFirst,
		values:      make([]bool, len(m.names)),
		counts:      make([]int, len(m.atMost)),
	}
}

func (s *searcher) explore(group int) {
	if s.timedOut {
		return
	}
	s.nodes++
	if s.nodes%deadlineCheckInterval == 0 && s.expired() {
		s.timedOut = true
		return
	}

	if group == len(s.m.groups) {
		s.recordLeaf()
		return
	}

	if s.found && s.current+s.pre.suffix[group]+s.pre.indicatorSlack <= s.best {
		return
	}

	vars := s.m.groups[group]
	for idx, v := range vars {
		if group == 0 && s.forcedFirst >= 0 && idx != s.forcedFirst {
			continue
		}
		if !s.admissible(v) {
			continue
		}
		s.set(v)
		s.explore(group + 1)
		s.unset(v)
		if s.timedOut {
			return
		}
	}
}

func (s *searcher) admissible(v Var) bool {
	for _, con := range s.pre.varCons[v] {
		if s.counts[con] >= s.m.atMost[con].cap {
			return false
		}
	}
	return true
}

func (s *searcher) set(v Var) {
	s.values[v] = true
	s.current += s.m.objective[v]
	for _, con := range s.pre.varCons[v] {
		s.counts[con]++
	}
}

func (s *searcher) unset(v Var) {
	s.values[v] = false
	s.current -= s.m.objective[v]
	for _, con := range s.pre.varCons[v] {
		s.counts[con]--
	}
}

func (s *searcher) recordLeaf() {
	objective := s.current
	for _, ind := range s.m.indicators {
		on := false
		for _, op := range ind.operands {
			if s.values[op] {
				on = true
				break
			}
		}
		s.values[ind.v] = on
		if on {
			objective += s.m.objective[ind.v]
		}
	}

	if !s.found || objective > s.best {
		s.found = true
		s.best = objective
		s.bestValues = append(s.bestValues[:0], s.values...)
	}

	for _, ind := range s.m.indicators {
		s.values[ind.v] = false
	}
}

func (s *searcher) expired() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
	}
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

func (s *searcher) solution() Solution {
	switch {
	case s.found && !s.timedOut:
		return Solution{Status: StatusOptimal, Objective: s.best, values: s.bestValues}
	case s.found:
		return Solution{Status: StatusFeasible, Objective: s.best, values: s.bestValues}
	case s.timedOut:
		return Solution{Status: StatusUnknown}
	default:
		return Solution{Status: StatusInfeasible}
	}
}
