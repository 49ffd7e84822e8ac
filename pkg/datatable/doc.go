// Package datatable holds the state of a sortable, paginated, selectable data
// table independent of how it is drawn.
//
// A Store is the shared context: the row set, the column descriptors, the
// display options, the selected-row count and the overlay menu flags. A Table
// reads the Store, derives sorted and paged views of it, and reports selection
// and row clicks back through it.
//
//	store := datatable.NewStore(rows, nil, datatable.Options{Pagination: true})
//	tbl := datatable.NewTable(store)
//	tbl.SortBy("name")
//	for _, row := range tbl.CurrentRows() {
//		fmt.Println(row.ID())
//	}
package datatable
