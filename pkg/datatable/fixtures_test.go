package datatable

import (
	"fmt"
)

func people() []Row {
	return []Row{
		{"id": "1", "name": "carol", "age": 41, "active": true},
		{"id": "2", "name": "Alice", "age": 30, "active": false},
		{"id": "3", "name": "bob", "age": 25, "active": true},
		{"id": "4", "name": "Dave", "age": 35, "active": false},
	}
}

func peopleColumns() []Column {
	return []Column{
		{Field: "id", Label: "ID"},
		{Field: "name", Label: "Name", Options: ColumnOptions{Sort: true}},
		{Field: "age", Label: "Age", Options: ColumnOptions{Sort: true}},
		{Field: "active", Label: "Active", Options: ColumnOptions{Sort: true, Display: Bool(false)}},
	}
}

func numberedRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{"id": fmt.Sprintf("r%02d", i), "n": i}
	}
	return rows
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID()
	}
	return out
}
