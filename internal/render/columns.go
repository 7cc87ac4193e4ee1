package render

import (
	"strconv"

	"github.com/mithrel/answerview/pkg/api"
)

// DeriveColumns picks the column names for rows. Explicit columns win;
// otherwise the first row decides: object keys in order, col_N for
// positional rows, or a single "value" column for scalars.
func DeriveColumns(res api.ExecutionResult, rows []api.Value) []string {
	if len(res.Columns) > 0 {
		cols := make([]string, len(res.Columns))
		for i, c := range res.Columns {
			cols[i] = Stringify(c)
		}
		return cols
	}
	if len(rows) == 0 {
		return []string{}
	}
	first := rows[0]
	switch {
	case first.IsObject():
		return first.Keys()
	case first.IsArray():
		cols := make([]string, len(first.Elems()))
		for i := range cols {
			cols[i] = "col_" + strconv.Itoa(i+1)
		}
		return cols
	default:
		return []string{"value"}
	}
}
