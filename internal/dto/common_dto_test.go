package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFilterNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        PageFilter
		wantPage  int
		wantLimit int
	}{
		{"zero values", PageFilter{}, 1, 10},
		{"negative page", PageFilter{Page: -3, Limit: 20}, 1, 20},
		{"limit capped", PageFilter{Page: 2, Limit: 500}, 2, 100},
		{"already sane", PageFilter{Page: 3, Limit: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantLimit, tt.in.Limit)
		})
	}
}

func TestPageFilterOffset(t *testing.T) {
	f := PageFilter{Page: 3, Limit: 10}
	assert.Equal(t, 20, f.Offset())
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(PageFilter{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.TotalItems)

	meta = BuildMeta(PageFilter{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
