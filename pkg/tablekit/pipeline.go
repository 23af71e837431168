package tablekit

import (
	"context"
	"fmt"

	"github.com/wdm0006/tablekit/pkg/logger"
)

// Transform is one pipeline stage. It must not modify its input table.
type Transform interface {
	Name() string
	Apply(ctx context.Context, t *Table) (*Table, error)
}

// RowLocal marks transforms whose output for a row depends on that row only,
// so they can be applied chunk by chunk.
type RowLocal interface {
	RowLocal() bool
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
	log   *logger.Logger
}

func NewPipeline() *Pipeline { return &Pipeline{log: logger.Default()} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// WithLogger replaces the logger used for per-step debug output.
func (p *Pipeline) WithLogger(l *logger.Logger) *Pipeline {
	p.log = l
	return p
}

func (p *Pipeline) Steps() []Transform { return p.steps }

// Streamable reports whether every step is row-local.
func (p *Pipeline) Streamable() bool {
	for _, t := range p.steps {
		rl, ok := t.(RowLocal)
		if !ok || !rl.RowLocal() {
			return false
		}
	}
	return true
}

func (p *Pipeline) Run(ctx context.Context, t *Table) (*Table, error) {
	cur := t
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := step.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step.Name(), err)
		}
		if out == nil {
			p.log.Debugf("step %s: nothing to do, passing %d rows through", step.Name(), cur.NumRows())
			continue
		}
		p.log.Debugf("step %s: %d rows x %d cols -> %d rows x %d cols",
			step.Name(), cur.NumRows(), cur.NumCols(), out.NumRows(), out.NumCols())
		cur = out
	}
	return cur, nil
}
