package committer

import "cloud.google.com/go/spanner"

// Plan collects mutations that must be applied together.
type Plan struct {
	mutations []*spanner.Mutation
}

func NewPlan() *Plan {
	return &Plan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends m to the plan. Nil mutations are ignored so repositories can
// return nil when there is nothing to write.
func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}

// Reset drops every collected mutation.
func (p *Plan) Reset() {
	p.mutations = make([]*spanner.Mutation, 0)
}
