package timeline

import (
	"fmt"
	"math"
)

// NotFound is the sentinel ordinal for labels that match no stage. An
// unknown or unset stage is a valid, displayable state, not an error.
const NotFound = -1

// Stage is one named step of the fixed manufacturing pipeline. Aliases are
// alternate labels that resolve to the same ordinal, e.g. "Delivered"
// satisfying the shipping step.
type Stage struct {
	Name    string
	Aliases []string
}

// Pipeline is the immutable, process-wide stage sequence. It is built once
// at startup; every label (canonical or alias) maps to exactly one ordinal.
type Pipeline struct {
	stages  []Stage
	index   map[string]int
	shipped int
}

// New builds a pipeline from the ordered stage list. shippedStage names the
// stage at which delay tracking stops; it must be one of the stage labels.
// Duplicate labels across names and aliases are rejected so alias
// resolution stays deterministic and total.
func New(stages []Stage, shippedStage string) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("pipeline must have at least one stage")
	}

	index := make(map[string]int, len(stages))
	for i, st := range stages {
		if _, dup := index[st.Name]; dup {
			return nil, fmt.Errorf("duplicate stage label %q", st.Name)
		}
		index[st.Name] = i
		for _, alias := range st.Aliases {
			if _, dup := index[alias]; dup {
				return nil, fmt.Errorf("duplicate stage label %q", alias)
			}
			index[alias] = i
		}
	}

	shipped, ok := index[shippedStage]
	if !ok {
		return nil, fmt.Errorf("shipped stage %q is not in the pipeline", shippedStage)
	}

	return &Pipeline{stages: stages, index: index, shipped: shipped}, nil
}

// Default is the garment production pipeline used across the application.
// "Delivered" is an alias of "Shipped": both labels satisfy the logistics
// step of the board.
func Default() *Pipeline {
	p, err := New([]Stage{
		{Name: "Order Confirmed"},
		{Name: "Fabric Purchase"},
		{Name: "Fabric Cutting"},
		{Name: "Embroidery/Printing"},
		{Name: "Stitching"},
		{Name: "Packing"},
		{Name: "Shipped", Aliases: []string{"Delivered"}},
		{Name: "Order Completed"},
	}, "Shipped")
	if err != nil {
		panic(err)
	}
	return p
}

// ResolveStageIndex maps a label to its ordinal, or NotFound when the label
// matches no stage or alias. Matching is exact and case-sensitive.
func (p *Pipeline) ResolveStageIndex(label string) int {
	if ord, ok := p.index[label]; ok {
		return ord
	}
	return NotFound
}

// NumStages returns the pipeline length.
func (p *Pipeline) NumStages() int { return len(p.stages) }

// CanonicalName returns the canonical stage name for an ordinal.
func (p *Pipeline) CanonicalName(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= len(p.stages) {
		return "", false
	}
	return p.stages[ordinal].Name, true
}

// StageNames returns the canonical names in pipeline order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.Name
	}
	return names
}

// TerminalOrdinal is the ordinal of the last stage; reaching it marks the
// order completed.
func (p *Pipeline) TerminalOrdinal() int { return len(p.stages) - 1 }

// ShippedOrdinal is the ordinal at which delay tracking stops.
func (p *Pipeline) ShippedOrdinal() int { return p.shipped }

// ProgressPercent converts an ordinal into the 0..100 completion figure
// shown next to each order: round(((ordinal+1)/N)*100), ties away from
// zero. NotFound and out-of-range ordinals yield 0.
func (p *Pipeline) ProgressPercent(ordinal int) int {
	if ordinal < 0 || ordinal >= len(p.stages) {
		return 0
	}
	return int(math.Round(float64(ordinal+1) / float64(len(p.stages)) * 100))
}
