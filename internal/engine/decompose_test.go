package engine

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"aspectgraph/internal/domain"
	"aspectgraph/internal/seed"
)

func TestDecomposePrimitive(t *testing.T) {
	eng, _ := newFixtureEngine(t)

	tree, err := eng.Decompose(context.Background(), domain.Handle("Aer"))
	require.NoError(t, err)
	require.Equal(t, 1, tree.Len())
	require.Equal(t, "Aer", tree.Root().Name())
	require.Equal(t, map[domain.ElementHandle]int{domain.Handle("Aer"): 1}, tree.Leaves())
}

func TestDecomposeCompound(t *testing.T) {
	eng, _ := newFixtureEngine(t)

	tree, err := eng.Decompose(context.Background(), domain.Handle("Lux"))
	require.NoError(t, err)
	require.Equal(t, 3, tree.Len())
	require.Equal(t, map[domain.ElementHandle]int{
		domain.Handle("Aer"):   1,
		domain.Handle("Ignis"): 1,
	}, tree.Leaves())
}

func TestLeafMultisetDeep(t *testing.T) {
	eng, _ := newFixtureEngine(t)

	leaves, err := eng.LeafMultiset(context.Background(), domain.Handle("Telum"))
	require.NoError(t, err)

	want := map[domain.ElementHandle]int{
		domain.Handle("Aer"):      1,
		domain.Handle("Ordo"):     2,
		domain.Handle("Aqua"):     3,
		domain.Handle("Terra"):    3,
		domain.Handle("Ignis"):    2,
		domain.Handle("Perditio"): 1,
	}
	if diff := cmp.Diff(want, leaves); diff != "" {
		t.Fatalf("leaf multiset mismatch (-want +got):\n%s", diff)
	}
}

// Derived base values equal the primitive leaf count, so the two must agree
// for every compound in the default dataset.
func TestLeafCountMatchesDerivedBaseValue(t *testing.T) {
	eng, ms := newFixtureEngine(t)
	ctx := context.Background()

	for _, r := range seed.Default().Recipes {
		h := domain.Handle(r.Product)
		leaves, err := eng.LeafMultiset(ctx, h)
		require.NoError(t, err)
		total := 0
		for _, n := range leaves {
			total += n
		}
		require.Equal(t, ms.base[h], float64(total), "element %s", r.Product)
	}
}

func TestDecomposeCycleHitsDepthGuard(t *testing.T) {
	ms := newMemStore(t, seed.Default())
	// corrupt the store: Aer decomposes into something made from Aer
	ms.recipes[domain.Handle("Aer")] = domain.Decomposition{
		A: domain.Handle("Lux"),
		B: domain.Handle("Ignis"),
	}
	eng, err := New(ms)
	require.NoError(t, err)

	_, err = eng.Decompose(context.Background(), domain.Handle("Lux"))
	require.ErrorIs(t, err, ErrDepthExceeded)
}
