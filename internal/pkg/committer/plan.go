package committer

import "cloud.google.com/go/spanner"

// Guard is a DML statement that must affect at least one row. When it
// affects none, the commit is abandoned and Err is returned.
type Guard struct {
	Stmt spanner.Statement
	Err  error
}

// Plan collects the guards and mutations of one atomic commit.
type Plan struct {
	guards    []Guard
	mutations []*spanner.Mutation
}

func NewPlan() *Plan {
	return &Plan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

// AddGuard appends a conditional statement. Guards run in insertion order,
// before any buffered mutation.
func (p *Plan) AddGuard(stmt spanner.Statement, err error) {
	p.guards = append(p.guards, Guard{Stmt: stmt, Err: err})
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0 && len(p.guards) == 0
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}

func (p *Plan) Guards() []Guard {
	return p.guards
}
