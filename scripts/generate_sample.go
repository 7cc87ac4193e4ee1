//go:build ignore

// Writes sample response payloads as NDJSON, for `answerview render --ndjson`.
package main

import (
	"bufio"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/mithrel/answerview/pkg/api"
)

const checklist = "Plan:\n- Outline the proposed schema or data changes.\n\n" +
	"Staging:\n- Describe how to stage the changes safely before production.\n\n" +
	"Validation:\n- Explain validation and QA steps to verify correctness.\n\n" +
	"Rollback:\n- Provide a rollback or remediation strategy if issues arise."

var kinds = []string{"SELECT", "SELECT", "SELECT", "EXPLAIN", "INSERT", "UPDATE"}

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	const total = 50
	for i := 0; i < total; i++ {
		kind := kinds[mr.Intn(len(kinds))]
		payload := api.Object(
			api.M("response", api.String(fmt.Sprintf("Answer %03d for a %s query.\n\n%s\n\n## Notes\nGenerated sample.", i+1, kind, checklist))),
			api.M("execution", execution(mr, kind, base.Add(time.Duration(i)*time.Hour))),
			api.M("breadcrumbs", api.Object(
				api.M("deterministic", api.Bool(mr.Float64() < 0.5)),
				api.M("rule", api.String("sample")),
				api.M("llm_ms", api.Number(float64(mr.Intn(2000)))),
			)),
		)
		b, err := payload.MarshalJSON()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		_, _ = w.Write(append(b, '\n'))
	}
}

func execution(mr *mrand.Rand, kind string, at time.Time) api.Value {
	meta := api.Object(
		api.M("exec_ms", api.Number(float64(1+mr.Intn(200)))),
		api.M("engine_ms", api.Number(float64(mr.Intn(50)))),
	)
	switch kind {
	case "INSERT", "UPDATE":
		return api.Object(api.M("stmt_kind", api.String(kind)), api.M("write", api.Bool(true)), api.M("meta", meta))
	case "EXPLAIN":
		plan := api.Object(api.M("Plan", api.Object(
			api.M("Node Type", api.String("Limit")),
			api.M("Plan Rows", api.Number(10)),
			api.M("Plans", api.Array(api.Object(
				api.M("Node Type", api.String("Seq Scan")),
				api.M("Plan Rows", api.Number(float64(mr.Intn(10000)))),
				api.M("Total Cost", api.Number(float64(mr.Intn(5000))/100)),
			))),
		)))
		return api.Object(
			api.M("stmt_kind", api.String(kind)),
			api.M("rows", api.Array(api.Object(api.M("plan", api.Array(plan))))),
			api.M("row_count", api.Number(1)),
			api.M("meta", meta),
		)
	}
	n := mr.Intn(30)
	rows := make([]api.Value, 0, n)
	for r := 0; r < n; r++ {
		rows = append(rows, api.Array(
			api.Number(float64(r+1)),
			api.String(fmt.Sprintf("https://example.com/items/%d", mr.Intn(1000))),
			api.Time(at.Add(time.Duration(r)*time.Minute)),
		))
	}
	return api.Object(
		api.M("stmt_kind", api.String(kind)),
		api.M("columns", api.Array(api.String("id"), api.String("url"), api.String("captured_at"))),
		api.M("rows", api.Array(rows...)),
		api.M("row_count", api.Number(float64(n))),
		api.M("meta", meta),
	)
}
