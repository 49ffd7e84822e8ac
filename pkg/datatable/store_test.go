package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore(people(), nil, Options{})
	opts := s.Options()
	assert.Equal(t, 10, opts.RowsPerPage)
	assert.Equal(t, DefaultRowsPerPageOptions, opts.RowsPerPageOptions)
	assert.Equal(t, DefaultNoMatch, opts.TextLabels.Body.NoMatch)
	assert.Equal(t, DefaultToolTip, opts.TextLabels.Body.ToolTip)
	assert.Equal(t, DefaultNextLabel, opts.TextLabels.Pagination.Next)
	assert.Equal(t, DefaultResponsiveMinWidth, opts.ResponsiveMinWidth)
	require.Len(t, s.Columns(), 4, "columns are inferred when nil")
	assert.Equal(t, "id", s.Columns()[0].Field)
}

func TestStoreKeepsCallerOptions(t *testing.T) {
	opts := Options{RowsPerPage: 3, TextLabels: TextLabels{Body: BodyLabels{NoMatch: "nothing"}}}
	s := NewStore(nil, peopleColumns(), opts)
	assert.Equal(t, 3, s.Options().RowsPerPage)
	assert.Equal(t, "nothing", s.Options().TextLabels.Body.NoMatch)
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	s := NewStore(people(), peopleColumns(), Options{})
	var got []Change
	unsubscribe := s.Subscribe(func(c Change) { got = append(got, c) })

	s.SetRowData(nil)
	s.SetCountSelectedRows(2)
	s.SetShowMenuSubItems(MenuSubItems{Search: true})
	s.SetColumnDisplay("active", true)
	s.SetColumnDisplay("unknown", true)

	assert.Equal(t, []Change{ChangeRows, ChangeSelection, ChangeMenu, ChangeColumns}, got)

	unsubscribe()
	s.SetRowData(people())
	assert.Len(t, got, 4)
}

func TestStoreSubscribersRunInOrder(t *testing.T) {
	s := NewStore(nil, nil, Options{})
	var order []string
	s.Subscribe(func(Change) { order = append(order, "first") })
	s.Subscribe(func(Change) { order = append(order, "second") })
	s.SetRowData(nil)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStoreSetters(t *testing.T) {
	s := NewStore(people(), peopleColumns(), Options{})

	s.SetCountSelectedRows(-4)
	assert.Zero(t, s.CountSelectedRows())

	s.SetShowMenuSubItems(MenuSubItems{Filter: true})
	assert.True(t, s.MenuSubItems().Any())
	assert.True(t, s.MenuSubItems().Filter)

	require.Len(t, s.VisibleColumns(), 3)
	s.SetColumnDisplay("active", true)
	assert.Len(t, s.VisibleColumns(), 4)

	col, ok := s.Column("age")
	require.True(t, ok)
	assert.Equal(t, "Age", col.Label)
	_, ok = s.Column("nope")
	assert.False(t, ok)
}

func TestChangeString(t *testing.T) {
	assert.Equal(t, "rows", ChangeRows.String())
	assert.Equal(t, "columns", ChangeColumns.String())
	assert.Equal(t, "unknown", Change(99).String())
}
