package analytics

import (
	"sync"
	"testing"

	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentCounts(t *testing.T) {
	s := New()

	s.Record("price?", "answer", domain.IntentSales, []string{"a::p0::c0"})
	s.Record("hello", "hi", domain.IntentChitchat, nil)
	s.Record("plans?", "answer", domain.IntentSales, nil)

	counts := s.IntentCounts()
	assert.Equal(t, 2, counts[domain.IntentSales])
	assert.Equal(t, 1, counts[domain.IntentChitchat])
	assert.Zero(t, counts[domain.IntentSupport])
}

func TestRecords_AppendOnlyOrder(t *testing.T) {
	s := New()

	s.Record("first", "a1", domain.IntentGeneral, nil)
	s.Record("second", "a2", domain.IntentGeneral, []string{"x", "y"})

	records := s.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Question)
	assert.Equal(t, []string{"x", "y"}, records[1].RetrievedIDs)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestRecord_ConcurrentSessions(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Record("q", "a", domain.IntentGeneral, nil)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Records(), 20)
}
