package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.Equal(t, Config{Page: 1, PerPage: 25}, New(25))
	assert.Equal(t, Config{Page: 1, PerPage: DefaultPerPage}, New(0))
	assert.Equal(t, Config{Page: 1, PerPage: DefaultPerPage}, New(-3))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{name: "valid", cfg: Config{Page: 2, PerPage: 10}},
		{name: "zero per page", cfg: Config{Page: 1, PerPage: 0}, wantErr: true, errMsg: "rows per page"},
		{name: "zero page", cfg: Config{Page: 0, PerPage: 10}, wantErr: true, errMsg: "page must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
	assert.ErrorIs(t, Config{Page: 1}.Validate(), ErrInvalidPerPage)
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{26, 5, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{Page: 1, PerPage: tt.perPage}.PageCount(tt.total), "total=%d perPage=%d", tt.total, tt.perPage)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Config{Page: 9, PerPage: 10}.Clamp(23).Page)
	assert.Equal(t, 1, Config{Page: 0, PerPage: 10}.Clamp(23).Page)
	assert.Equal(t, 1, Config{Page: 4, PerPage: 10}.Clamp(0).Page)
	assert.Equal(t, 2, Config{Page: 2, PerPage: 10}.Clamp(23).Page)
}

func TestWithPerPageResetsPage(t *testing.T) {
	c := Config{Page: 3, PerPage: 10}
	assert.Equal(t, Config{Page: 1, PerPage: 25}, c.WithPerPage(25))
	assert.Equal(t, c, c.WithPerPage(10), "same size keeps the page")
	assert.Equal(t, c, c.WithPerPage(0), "invalid size is ignored")
	assert.Equal(t, Config{Page: 1, PerPage: 5}, Config{Page: 1, PerPage: 10}.WithPerPage(5))
}

func TestBoundsAndWindow(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	tests := []struct {
		name string
		cfg  Config
		want []int
	}{
		{name: "first page", cfg: Config{Page: 1, PerPage: 3}, want: []int{0, 1, 2}},
		{name: "middle page", cfg: Config{Page: 2, PerPage: 3}, want: []int{3, 4, 5}},
		{name: "last partial page", cfg: Config{Page: 3, PerPage: 3}, want: []int{6}},
		{name: "past the end", cfg: Config{Page: 5, PerPage: 3}, want: []int{}},
		{name: "page larger than set", cfg: Config{Page: 1, PerPage: 50}, want: items},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.cfg, items))
		})
	}

	start, end := Config{Page: 1, PerPage: 3}.Bounds(0)
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestWindowCopies(t *testing.T) {
	items := []string{"a", "b", "c"}
	w := Window(Config{Page: 1, PerPage: 2}, items)
	w[0] = "z"
	assert.Equal(t, "a", items[0])
}

func TestLastPageSize(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for perPage := 1; perPage <= 12; perPage++ {
			c := Config{PerPage: perPage}
			c.Page = c.PageCount(total)
			start, end := c.Bounds(total)
			want := total % perPage
			if want == 0 {
				want = perPage
			}
			require.Equal(t, want, end-start, "total=%d perPage=%d", total, perPage)
		}
	}
}
