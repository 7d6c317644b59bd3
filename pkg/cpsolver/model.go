// Package cpsolver is a small boolean constraint solver for assignment-style
// models: exactly-one selection groups, at-most-k side constraints, or-linked
// indicator variables, and a linear objective to maximize. The search is an
// exhaustive branch-and-bound bounded by a time budget, so a completed search
// proves optimality or infeasibility.
package cpsolver

import "fmt"

// Var identifies a boolean variable within its model.
type Var int

// Status is the outcome of a solve.
type Status int

const (
	// StatusOptimal means the search space was exhausted and the best
	// solution found is provably optimal.
	StatusOptimal Status = iota
	// StatusFeasible means the time budget expired with an incumbent.
	StatusFeasible
	// StatusInfeasible means the search space was exhausted without any
	// solution.
	StatusInfeasible
	// StatusModelInvalid means the model was malformed.
	StatusModelInvalid
	// StatusUnknown means the time budget expired before any solution.
	StatusUnknown
)

// String renders the status for logs.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusModelInvalid:
		return "model_invalid"
	default:
		return "unknown"
	}
}

const (
	groupNone      = -1
	groupIndicator = -2
)

type atMostConstraint struct {
	vars []Var
	cap  int
}

type indicatorLink struct {
	v        Var
	operands []Var
}

// Model collects variables, constraints, and the objective. Construction
// errors are accumulated and surface as StatusModelInvalid at solve time.
type Model struct {
	names      []string
	objective  []int64
	groupOf    []int
	groups     [][]Var
	atMost     []atMostConstraint
	indicators []indicatorLink
	errs       []string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBool declares a decision variable. Every decision variable must later
// join exactly one AddExactlyOne group; ungrouped decision variables are
// fixed false.
func (m *Model) NewBool(name string) Var {
	m.names = append(m.names, name)
	m.objective = append(m.objective, 0)
	m.groupOf = append(m.groupOf, groupNone)
	return Var(len(m.names) - 1)
}

// NewOrIndicator declares a variable that is true iff any operand is true.
// Indicators participate only in the objective.
func (m *Model) NewOrIndicator(name string, operands ...Var) Var {
	if len(operands) == 0 {
		m.fail("indicator %q has no operands", name)
	}
	for _, op := range operands {
		if !m.isDecisionVar(op) {
			m.fail("indicator %q has invalid operand %d", name, op)
		}
	}
	m.names = append(m.names, name)
	m.objective = append(m.objective, 0)
	m.groupOf = append(m.groupOf, groupIndicator)
	v := Var(len(m.names) - 1)
	m.indicators = append(m.indicators, indicatorLink{v: v, operands: operands})
	return v
}

// AddExactlyOne requires exactly one of vars to be true.
func (m *Model) AddExactlyOne(vars ...Var) {
	if len(vars) == 0 {
		m.fail("exactly-one group is empty")
		return
	}
	idx := len(m.groups)
	for _, v := range vars {
		if !m.isDecisionVar(v) {
			m.fail("exactly-one group references invalid variable %d", v)
			return
		}
		if m.groupOf[v] != groupNone {
			m.fail("variable %q already belongs to a group", m.names[v])
			return
		}
		m.groupOf[v] = idx
	}
	m.groups = append(m.groups, append([]Var(nil), vars...))
}

// AddAtMost requires at most cap of vars to be true.
func (m *Model) AddAtMost(cap int, vars ...Var) {
	if cap < 0 {
		m.fail("at-most constraint has negative cap %d", cap)
		return
	}
	for _, v := range vars {
		if !m.isDecisionVar(v) {
			m.fail("at-most constraint references invalid variable %d", v)
			return
		}
	}
	m.atMost = append(m.atMost, atMostConstraint{vars: append([]Var(nil), vars...), cap: cap})
}

// AddObjectiveTerm adds coeff to the objective whenever v is true. The
// objective is maximized.
func (m *Model) AddObjectiveTerm(v Var, coeff int64) {
	if int(v) < 0 || int(v) >= len(m.names) {
		m.fail("objective term references invalid variable %d", v)
		return
	}
	m.objective[v] += coeff
}

func (m *Model) isDecisionVar(v Var) bool {
	return int(v) >= 0 && int(v) < len(m.names) && m.groupOf[v] != groupIndicator
}

func (m *Model) fail(format string, args ...any) {
	m.errs = append(m.errs, fmt.Sprintf(format, args...))
}

// Errs exposes accumulated model construction errors.
func (m *Model) Errs() []string {
	return m.errs
}

// Solution carries the solve outcome and, for optimal/feasible statuses, a
// truth assignment over all variables.
type Solution struct {
	Status    Status
	Objective int64
	values    []bool
}

// Value reports the assigned truth value of v. Always false unless the
// status is optimal or feasible.
func (s Solution) Value(v Var) bool {
	if int(v) < 0 || int(v) >= len(s.values) {
		return false
	}
	return s.values[v]
}
