package findings

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityRoundTrip(t *testing.T) {
	for _, name := range []string{"note", "warning", "error"} {
		severity, ok := ParseSeverity(name)
		require.True(t, ok, name)
		assert.Equal(t, name, severity.String())
	}

	severity, ok := ParseSeverity(" WARN ")
	assert.True(t, ok)
	assert.Equal(t, SeverityWarning, severity)

	_, ok = ParseSeverity("critical")
	assert.False(t, ok)
}

func TestResultOrdering(t *testing.T) {
	agg := NewAggregator()
	agg.Append(
		New("B002", SeverityNote, "R/b.R", 4, 0, "late note"),
		New("A001", SeverityError, "R/b.R", 4, 0, "error at same spot"),
		New("C003", SeverityWarning, "R/a.R", 9, 0, "other file"),
	)

	result, counts := agg.Result()
	require.Len(t, result, 3)

	// Files first, then lines, then errors before notes.
	assert.Equal(t, "C003", result[0].RuleID)
	assert.Equal(t, "A001", result[1].RuleID)
	assert.Equal(t, "B002", result[2].RuleID)

	assert.Equal(t, Counts{Total: 3, Errors: 1, Warnings: 1, Notes: 1}, counts)
}

func TestResultDeduplicates(t *testing.T) {
	agg := NewAggregator()
	agg.Append(
		New("A001", SeverityWarning, "R/a.R", 3, 10, "first"),
		New("A001", SeverityWarning, "R/a.R", 3, 25, "same rule, same line"),
		New("A001", SeverityWarning, "R/a.R", 4, 0, "next line survives"),
	)

	result, counts := agg.Result()
	require.Len(t, result, 2)
	assert.Equal(t, 3, result[0].Line)
	assert.Equal(t, 4, result[1].Line)
	assert.Equal(t, 2, counts.Total)
}

func TestAppendIsConcurrencySafe(t *testing.T) {
	agg := NewAggregator()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				agg.Append(New("A001", SeverityNote, "R/a.R", n*50+j+1, 0, "x"))
			}
		}(i)
	}
	wg.Wait()

	_, counts := agg.Result()
	assert.Equal(t, 400, counts.Total)
}

func TestFilterKeepsOrder(t *testing.T) {
	fs := []Finding{
		New("A", SeverityError, "f", 1, 0, "e"),
		New("B", SeverityNote, "f", 2, 0, "n"),
		New("C", SeverityWarning, "f", 3, 0, "w"),
	}

	kept := Filter(fs, SeverityWarning)
	require.Len(t, kept, 2)
	assert.Equal(t, "A", kept[0].RuleID)
	assert.Equal(t, "C", kept[1].RuleID)

	assert.Equal(t, Counts{Total: 2, Errors: 1, Warnings: 1}, Tally(kept))
	assert.Equal(t, 1, AtOrAbove(fs, SeverityError))
}
