package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsDuplicateLabels(t *testing.T) {
	_, err := New([]Stage{
		{Name: "Cutting"},
		{Name: "Sewing", Aliases: []string{"Cutting"}},
	}, "Sewing")
	require.Error(t, err)

	_, err = New([]Stage{{Name: "Cutting"}, {Name: "Cutting"}}, "Cutting")
	require.Error(t, err)

	_, err = New(nil, "")
	require.Error(t, err)
}

func TestNew_RejectsUnknownShippedStage(t *testing.T) {
	_, err := New([]Stage{{Name: "Cutting"}}, "Shipped")
	require.Error(t, err)
}

func TestResolveStageIndex(t *testing.T) {
	p := Default()

	// Every canonical name maps to its position.
	for i, name := range p.StageNames() {
		assert.Equal(t, i, p.ResolveStageIndex(name), name)
	}

	// The alias resolves to the same ordinal as its canonical name.
	assert.Equal(t, p.ResolveStageIndex("Shipped"), p.ResolveStageIndex("Delivered"))

	// Unknown labels yield the sentinel, matching is case-sensitive.
	assert.Equal(t, NotFound, p.ResolveStageIndex("Ironing"))
	assert.Equal(t, NotFound, p.ResolveStageIndex("stitching"))
	assert.Equal(t, NotFound, p.ResolveStageIndex(""))
}

func TestProgressPercent(t *testing.T) {
	p := Default()
	require.Equal(t, 8, p.NumStages())

	cases := []struct {
		ordinal int
		want    int
	}{
		{NotFound, 0},
		{0, 13}, // round(1/8*100) = 12.5 -> ties away from zero
		{1, 25},
		{2, 38}, // 37.5
		{3, 50},
		{4, 63}, // 62.5
		{5, 75},
		{6, 88}, // 87.5
		{7, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.ProgressPercent(tc.ordinal), "ordinal %d", tc.ordinal)
	}

	// Monotonically non-decreasing across the pipeline.
	prev := 0
	for i := 0; i < p.NumStages(); i++ {
		got := p.ProgressPercent(i)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 100, p.ProgressPercent(p.TerminalOrdinal()))
}

func TestCanonicalName(t *testing.T) {
	p := Default()

	name, ok := p.CanonicalName(6)
	require.True(t, ok)
	assert.Equal(t, "Shipped", name)

	_, ok = p.CanonicalName(NotFound)
	assert.False(t, ok)
	_, ok = p.CanonicalName(p.NumStages())
	assert.False(t, ok)
}

func TestShippedAndTerminalOrdinals(t *testing.T) {
	p := Default()
	assert.Equal(t, 6, p.ShippedOrdinal())
	assert.Equal(t, 7, p.TerminalOrdinal())
}
