package sampling

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestSample_ClampsToPopulation(t *testing.T) {
	src := New(1)
	pop := []string{"a", "b", "c"}

	assert.Len(t, Sample(src, pop, 10), 3)
	assert.Empty(t, Sample(src, pop, 0))
	assert.Empty(t, Sample(src, []string{}, 2))
	assert.Empty(t, Sample(src, pop, -1))
}

func TestSample_DoesNotMutatePopulation(t *testing.T) {
	pop := []int{1, 2, 3, 4, 5}
	Sample(New(7), pop, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pop)
}

func TestSample_SeededIsReproducible(t *testing.T) {
	pop := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	a := Sample(New(42), pop, 4)
	b := Sample(New(42), pop, 4)
	assert.Equal(t, a, b)
}

func TestSampleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("sample is distinct and drawn from population", prop.ForAll(
		func(n, k int, seed uint64) bool {
			pop := make([]int, n)
			for i := range pop {
				pop[i] = i
			}
			got := Sample(New(seed+1), pop, k)

			want := min(k, n)
			if len(got) != want {
				return false
			}
			seen := make(map[int]bool)
			for _, v := range got {
				if v < 0 || v >= n || seen[v] {
					return false
				}
				seen[v] = true
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 50),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
