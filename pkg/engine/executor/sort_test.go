package executor

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/grafana/sortorder/pkg/order"
	"github.com/grafana/sortorder/pkg/traversal"
)

func people() []any {
	return []any{
		map[string]any{"name": "marko", "age": 29, "city": "santa fe"},
		map[string]any{"name": "vadas", "age": 27},
		map[string]any{"name": "josh", "age": 32, "city": "santa fe"},
		map[string]any{"name": "peter", "age": 35, "city": "austin"},
		map[string]any{"name": "lop"},
	}
}

func names(t *testing.T, rows []any) []string {
	t.Helper()
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.(map[string]any)["name"].(string))
	}
	return out
}

func TestSort(t *testing.T) {
	tt := []struct {
		name   string
		keys   []SortKey
		expect []string
	}{
		{
			name:   "single key ascending",
			keys:   []SortKey{{Key: Field("age"), Order: order.Asc}},
			expect: []string{"lop", "vadas", "marko", "josh", "peter"},
		},
		{
			name:   "single key descending",
			keys:   []SortKey{{Key: Field("age"), Order: order.Desc}},
			expect: []string{"peter", "josh", "marko", "vadas", "lop"},
		},
		{
			name: "multiple keys",
			keys: []SortKey{
				{Key: Field("city"), Order: order.Desc},
				{Key: Field("name"), Order: order.Asc},
			},
			expect: []string{"josh", "marko", "peter", "lop", "vadas"},
		},
		{
			name: "ties keep input order",
			keys: []SortKey{{Key: Field("city"), Order: order.Asc}},
			// lop and vadas have no city, marko precedes josh in the input.
			expect: []string{"vadas", "lop", "peter", "marko", "josh"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			rows := people()
			err := Sort(context.Background(), rows, tc.keys, nil)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expect, names(t, rows)); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSort_NoKeys(t *testing.T) {
	rows := []any{nil, 5, 2, nil, 8}
	require.NoError(t, Sort(context.Background(), rows, nil, nil))
	require.Equal(t, []any{nil, nil, 2, 5, 8}, rows)
}

func TestSort_Shuffle(t *testing.T) {
	t.Run("only shuffle keys", func(t *testing.T) {
		rows := []any{1, 2, 3, 4, 5, 6, 7, 8}
		keys := []SortKey{{Key: Identity, Order: order.Shuffle}}

		require.NoError(t, Sort(context.Background(), rows, keys, rand.New(rand.NewSource(1))))
		require.ElementsMatch(t, []any{1, 2, 3, 4, 5, 6, 7, 8}, rows)

		// The same seed yields the same permutation.
		again := []any{1, 2, 3, 4, 5, 6, 7, 8}
		require.NoError(t, Sort(context.Background(), again, keys, rand.New(rand.NewSource(1))))
		require.Equal(t, rows, again)
	})

	t.Run("shuffle with deterministic key", func(t *testing.T) {
		keys := []SortKey{
			{Key: Field("city"), Order: order.Asc},
			{Key: Identity, Order: order.Shuffle},
		}
		for seed := int64(0); seed < 10; seed++ {
			rows := people()
			require.NoError(t, Sort(context.Background(), rows, keys, rand.New(rand.NewSource(seed))))

			got := names(t, rows)
			require.ElementsMatch(t, []string{"vadas", "lop"}, got[:2])
			require.Equal(t, "peter", got[2])
			require.ElementsMatch(t, []string{"marko", "josh"}, got[3:])
		}
	})

	t.Run("missing random source", func(t *testing.T) {
		rows := []any{1, 2}
		err := Sort(context.Background(), rows, []SortKey{{Key: Identity, Order: order.Shuffle}}, nil)
		require.ErrorIs(t, err, ErrNoShuffler)
	})
}

func TestSort_Errors(t *testing.T) {
	t.Run("incomparable keys", func(t *testing.T) {
		rows := []any{3, "three", 1}
		err := Sort(context.Background(), rows, nil, nil)
		require.ErrorIs(t, err, order.ErrIncomparableOperands)
		require.Equal(t, []any{3, "three", 1}, rows)
	})

	t.Run("shuffled then incomparable", func(t *testing.T) {
		rows := []any{3, "three", 1, 2}
		keys := []SortKey{
			{Key: Identity, Order: order.Shuffle},
			{Key: Identity, Order: order.Asc},
		}
		err := Sort(context.Background(), rows, keys, rand.New(rand.NewSource(7)))
		require.ErrorIs(t, err, order.ErrIncomparableOperands)
		require.ErrorContains(t, err, "sort key 1:")
		require.Equal(t, []any{3, "three", 1, 2}, rows)
	})

	t.Run("shuffled then key extraction", func(t *testing.T) {
		errBoom := errors.New("boom")
		rows := []any{1, 2, 3}
		keys := []SortKey{
			{Key: Identity, Order: order.Shuffle},
			{Key: Identity, Order: order.Desc},
			{Key: func(any) (any, error) { return nil, errBoom }, Order: order.Asc},
		}
		err := Sort(context.Background(), rows, keys, rand.New(rand.NewSource(7)))
		require.ErrorIs(t, err, errBoom)
		require.ErrorContains(t, err, "extracting sort key 2 of row")
		require.Equal(t, []any{1, 2, 3}, rows)
	})

	t.Run("key extraction", func(t *testing.T) {
		errBoom := errors.New("boom")
		keys := []SortKey{{Key: func(any) (any, error) { return nil, errBoom }}}
		err := Sort(context.Background(), []any{1, 2}, keys, nil)
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("unknown order", func(t *testing.T) {
		err := Sort(context.Background(), []any{1, 2}, []SortKey{{Key: Identity, Order: order.Order(5)}}, nil)
		require.ErrorIs(t, err, order.ErrUnknownOrder)
	})

	t.Run("missing key function", func(t *testing.T) {
		err := Sort(context.Background(), []any{1, 2}, []SortKey{{Order: order.Asc}}, nil)
		require.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Sort(ctx, []any{2, 1}, nil, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestField(t *testing.T) {
	doc := map[any]any{
		traversal.TID:    7,
		traversal.TLabel: "person",
		"properties": map[string]any{
			"name": "marko",
		},
	}

	for _, tc := range []struct {
		path   []string
		expect any
	}{
		{[]string{"id"}, 7},
		{[]string{"label"}, "person"},
		{[]string{"properties", "name"}, "marko"},
		{[]string{"properties", "age"}, nil},
		{[]string{"label", "name"}, nil},
		{nil, doc},
	} {
		v, err := Field(tc.path...)(doc)
		require.NoError(t, err)
		require.Equal(t, tc.expect, v, tc.path)
	}
}
