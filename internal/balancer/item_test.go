package balancer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weight  int
		wantErr error
	}{
		{name: "PositiveWeight", weight: 500},
		{name: "SmallestValidWeight", weight: 1},
		{name: "ZeroWeight", weight: 0, wantErr: ErrInvalidWeight},
		{name: "NegativeWeight", weight: -250, wantErr: ErrInvalidWeight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			item, err := NewItem(tc.weight)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.weight, item.Weight())
		})
	}
}

func TestNewItemsRejectsFirstInvalidWeight(t *testing.T) {
	t.Parallel()

	items, err := NewItems([]int{100, 200, 0, 300})
	require.ErrorIs(t, err, ErrInvalidWeight)
	require.Nil(t, items)
}

func TestNewItemsBuildsWholeBatch(t *testing.T) {
	t.Parallel()

	weights := []int{100, 200, 300}
	items, err := NewItems(weights)
	require.NoError(t, err)
	require.Len(t, items, len(weights))
	for i, item := range items {
		require.Equal(t, weights[i], item.Weight())
	}
}
