package types

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty", 1, 10, 0, 0, false, false},
		{"single partial page", 1, 10, 3, 1, false, false},
		{"exact fit", 1, 10, 10, 1, false, false},
		{"first of many", 1, 10, 25, 3, true, false},
		{"middle", 2, 10, 25, 3, true, true},
		{"last", 3, 10, 25, 3, false, true},
		{"past the end", 5, 10, 25, 3, false, true},
		{"limit one", 4, 1, 7, 7, true, true},
		{"max limit", 1, 100, 101, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
		})
	}
}

func TestNewPagination_MatchesCeil(t *testing.T) {
	for total := int64(0); total <= 250; total += 7 {
		for _, limit := range []int{1, 3, 10, 33, 100} {
			p := NewPagination(1, limit, total)
			want := int(math.Ceil(float64(total) / float64(limit)))
			assert.Equal(t, want, p.TotalPages, "total=%d limit=%d", total, limit)
			for page := 1; page <= want+1; page++ {
				p = NewPagination(page, limit, total)
				assert.Equal(t, page < want, p.HasNext)
				assert.Equal(t, page > 1, p.HasPrev)
			}
		}
	}
}

func TestListParams_Offset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, ListParams{Page: 3, Limit: 10}.Offset())
}

func TestKindOf(t *testing.T) {
	err := NewNotFoundError("Artist")
	assert.Equal(t, "Artist not found", err.Error())

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	wrapped := fmt.Errorf("lookup: %w", NewConflictError("Artist with this name already exists"))
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(wrapped, KindNotFound))

	_, ok = KindOf(errors.New("boom"))
	assert.False(t, ok)
}
