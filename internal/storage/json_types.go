package storage

import "github.com/leengari/mini-datagrid/internal/domain/record"

// GridMeta is the on-disk shape of a grid dataset file: the column
// descriptors and the records they describe, in one self-contained
// JSON document.
type GridMeta struct {
	Name    string          `json:"name"`
	Version int             `json:"version,omitempty"`
	Columns []ColumnMeta    `json:"columns"`
	Records []record.Record `json:"records"`
}

type ColumnMeta struct {
	Key        string `json:"key"`
	Label      string `json:"label,omitempty"`
	Sortable   bool   `json:"sortable,omitempty"`
	Filterable bool   `json:"filterable,omitempty"`
}
