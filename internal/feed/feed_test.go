package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		requested  string
		count      int64
		wantNumber int
		wantTotal  int
	}{
		{"empty defaults to first", "", 25, 1, 3},
		{"explicit first", "1", 25, 1, 3},
		{"middle page", "2", 25, 2, 3},
		{"last page", "3", 25, 3, 3},
		{"past the end clamps to last", "99", 25, 3, 3},
		{"zero clamps to last", "0", 25, 3, 3},
		{"negative clamps to last", "-5", 25, 3, 3},
		{"non-numeric falls back to first", "abc", 25, 1, 3},
		{"empty feed has one page", "", 0, 1, 1},
		{"out of range on empty feed", "7", 0, 1, 1},
		{"exact multiple of page size", "3", 30, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(tt.requested, tt.count, PerPage)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantTotal, page.TotalPages)
			assert.Equal(t, tt.count, page.Count)
		})
	}
}

func TestPageNavigation(t *testing.T) {
	page := Paginate("2", 25, PerPage)

	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)
	assert.Equal(t, 3, page.NextNumber())
	assert.Equal(t, 1, page.PreviousNumber())
	assert.Equal(t, 10, page.Offset())

	first := Paginate("", 25, PerPage)
	assert.False(t, first.HasPrevious)
	assert.True(t, first.HasNext)
	assert.Zero(t, first.Offset())

	last := Paginate("3", 25, PerPage)
	assert.True(t, last.HasPrevious)
	assert.False(t, last.HasNext)
}

func TestPaginateBadPerPage(t *testing.T) {
	page := Paginate("", 5, 0)
	assert.Equal(t, PerPage, page.PerPage)
}
