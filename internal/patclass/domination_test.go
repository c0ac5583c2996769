package patclass

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reported struct {
	pos     string
	ordinal int
}

func origins(positions ...string) []Origin[string] {
	out := make([]Origin[string], len(positions))
	for i, p := range positions {
		out[i] = Origin[string]{Index: i, Pos: p}
	}
	return out
}

// unreachable lists the 0-based indices Dominate reports for n clauses.
func unreachable[C Classed](n int, classes []C) []int {
	var out []int
	Dominate(origins(make([]string, n)...), classes, func(_ string, ordinal int) {
		out = append(out, ordinal-1)
	})
	return out
}

func TestDominateAllUseful(t *testing.T) {
	c := newEnum(&enumOracle{})
	rows := rowsOf(
		[]string{"zero", "zero"},
		[]string{"zero", "y"},
		[]string{"x", "zero"},
		[]string{"x", "y"},
	)
	classes := c.ClassifyN(nil, []enumParam{natParam, natParam}, rows, 8)

	var got []reported
	buckets := Dominate(origins("1:1", "2:1", "3:1", "4:1"), classes, func(pos string, ordinal int) {
		got = append(got, reported{pos, ordinal})
	})

	assert.Empty(t, got)
	require.Len(t, buckets[2], 1)
	assert.Equal(t, []string{"suc", "zero"}, buckets[2][0].(*Seq[string]).Terms)
}

func TestDominateReportsShadowedClause(t *testing.T) {
	c := newEnum(&enumOracle{})
	rows := rowsOf([]string{"x", "y"}, []string{"zero", "zero"})
	classes := c.ClassifyN(nil, []enumParam{natParam, natParam}, rows, 8)

	var got []reported
	Dominate(origins("3:5", "4:5"), classes, func(pos string, ordinal int) {
		got = append(got, reported{pos, ordinal})
	})

	assert.Equal(t, []reported{{"4:5", 2}}, got)
}

func TestDominateUsesMinimumNotVisitOrder(t *testing.T) {
	classes := []Class[string]{
		&Seq[string]{Clauses: []int{3, 1}},
		&Seq[string]{Clauses: []int{2, 0}},
	}
	buckets := Dominate(origins("a", "b", "c", "d"), classes, nil)

	assert.Len(t, buckets[1], 1)
	assert.Len(t, buckets[0], 1)
	assert.Empty(t, buckets[3])
	assert.Empty(t, buckets[2])
}

func TestDominateSparseIndices(t *testing.T) {
	clauses := []Origin[string]{{Index: 2, Pos: "x"}, {Index: 5, Pos: "y"}}
	classes := []Class[string]{&Seq[string]{Clauses: []int{5}}}

	var got []reported
	Dominate(clauses, classes, func(pos string, ordinal int) {
		got = append(got, reported{pos, ordinal})
	})

	assert.Equal(t, []reported{{"x", 3}}, got)
}

func TestDominationIgnoresClassOrder(t *testing.T) {
	c := newEnum(&enumOracle{})
	rows := rowsOf(
		[]string{"suc", "x"},
		[]string{"x", "zero"},
		[]string{"suc", "zero"},
		[]string{"zero", "y"},
		[]string{"zero", "suc"},
	)
	classes := c.ClassifyN(nil, []enumParam{natParam, natParam}, rows, 8)
	want := unreachable(5, classes)
	assert.Equal(t, []int{2, 4}, want)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]Class[string](nil), classes...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, unreachable(5, shuffled))
	}
}

func TestDominateOverTreeTerminals(t *testing.T) {
	rows := rowsOf([]string{"x", "zero"}, []string{"y", "zero"}, []string{"z", "suc"})
	tree := Build([]enumParam{natParam, natParam}, rows, enumSplit(newEnum(&enumOracle{})))

	var got []int
	Dominate(origins("a", "b", "c"), Flatten[string](tree), func(_ string, ordinal int) {
		got = append(got, ordinal)
	})
	assert.Equal(t, []int{2}, got)
}
