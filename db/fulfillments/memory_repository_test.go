package fulfillments

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Claim(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, claimed, err := repo.Claim(ctx, "pay-1", []string{"t-1", "t-2"})
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, []string{"t-1", "t-2"}, first)

	// a later observer with different candidate IDs gets the stored set
	second, claimed, err := repo.Claim(ctx, "pay-1", []string{"t-3", "t-4"})
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, []string{"t-1", "t-2"}, second)
}

func TestMemoryRepository_Claim_concurrent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const observers = 20

	var wg sync.WaitGroup
	results := make([][]string, observers)
	claims := make([]bool, observers)

	for i := 0; i < observers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids := []string{fmt.Sprintf("t-%d-a", i), fmt.Sprintf("t-%d-b", i)}
			got, claimed, err := repo.Claim(ctx, "pay-1", ids)
			assert.NoError(t, err)
			results[i] = got
			claims[i] = claimed
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, claimed := range claims {
		if claimed {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	// every observer sees the same set
	for i := 1; i < observers; i++ {
		assert.Equal(t, results[0], results[i])
	}
}
