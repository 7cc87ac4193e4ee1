package render

import (
	"strings"

	"github.com/mithrel/answerview/pkg/api"
)

// PlanColumns is the fixed column order of a flattened query plan.
var PlanColumns = []string{"node_type", "sort_key", "plan_rows", "startup_cost", "total_cost"}

// PlanTable is a flattened EXPLAIN plan. Nodes counts every flattened node,
// which may exceed the rows the table displays.
type PlanTable struct {
	Table *Table
	Nodes int
}

// FlattenPlan turns the plan carried in the first row's "plan" field into a
// table with one row per plan node, parents before children. It returns nil
// when rows do not hold a usable plan; callers then render rows as usual.
func FlattenPlan(rows []api.Value) *PlanTable {
	if len(rows) == 0 || !rows[0].IsObject() {
		return nil
	}
	raw, ok := rows[0].Get("plan")
	if !ok {
		return nil
	}
	root, ok := planRoot(raw)
	if !ok {
		return nil
	}
	var records []api.Value
	walkPlan(root, &records)
	if len(records) == 0 {
		return nil
	}
	table := RenderTable(PlanColumns, records)
	if table == nil {
		return nil
	}
	return &PlanTable{Table: table, Nodes: len(records)}
}

// planRoot resolves the root node from a plan value: JSON text is parsed,
// a single-element array is unwrapped, then a {"Plan": ...} envelope.
func planRoot(raw api.Value) (api.Value, bool) {
	parsed := raw
	if raw.Kind() == api.KindString {
		v, err := api.ParseValue([]byte(raw.AsString()))
		if err != nil {
			return api.Value{}, false
		}
		parsed = v
	}
	node := parsed
	if elems := parsed.Elems(); parsed.IsArray() && len(elems) == 1 {
		node = elems[0]
	}
	if inner, ok := node.Get("Plan"); ok {
		node = inner
	}
	if !node.IsObject() {
		return api.Value{}, false
	}
	return node, true
}

func walkPlan(node api.Value, out *[]api.Value) {
	*out = append(*out, api.Object(
		api.M("node_type", node.Field("Node Type")),
		api.M("sort_key", sortKey(node.Field("Sort Key"))),
		api.M("plan_rows", node.Field("Plan Rows")),
		api.M("startup_cost", node.Field("Startup Cost")),
		api.M("total_cost", node.Field("Total Cost")),
	))
	for _, child := range node.Field("Plans").Elems() {
		if child.IsObject() {
			walkPlan(child, out)
		}
	}
}

func sortKey(v api.Value) api.Value {
	if !v.IsArray() {
		return v
	}
	parts := make([]string, len(v.Elems()))
	for i, e := range v.Elems() {
		parts[i] = Coerce(e)
	}
	return api.String(strings.Join(parts, ", "))
}
