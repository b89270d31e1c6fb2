package dao

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pagegrid/pagegrid/internal/model1"
)

// DefaultDemoRows is the size of the demo dataset.
const DefaultDemoRows = 137

var (
	demoNames   = []string{"ada", "bob", "cyd", "dee", "eve", "fay", "gus", "hal", "ivy", "jon", "kim"}
	demoStatus  = []string{"running", "pending", "stopped", "failed"}
	demoRegions = []string{"us-east-1", "us-west-2", "eu-west-1", "ap-south-1"}
)

// NewDemoSource returns a source over a deterministic generated dataset.
// The url may carry a rows parameter, ie demo://?rows=500.
func NewDemoSource(spec SourceSpec) (*Records, error) {
	n := DefaultDemoRows
	if u, err := url.Parse(spec.URL); err == nil {
		if v := u.Query().Get("rows"); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil || i < 0 {
				return nil, fmt.Errorf("invalid demo rows %q", v)
			}
			n = i
		}
	}

	return NewRecords("demo", spec, func(context.Context) (model1.Rows, error) {
		return DemoRows(n), nil
	}), nil
}

// DemoRows generates n rows with id, name, status, region, cpu, age fields.
func DemoRows(n int) model1.Rows {
	rows := make(model1.Rows, 0, n)
	for i := range n {
		id := fmt.Sprintf("res-%04d", i+1)
		row := model1.NewRow(id, 6)
		row.Set("id", id)
		row.Set("name", fmt.Sprintf("%s-%d", demoNames[i%len(demoNames)], i/len(demoNames)))
		row.Set("status", demoStatus[(i*7)%len(demoStatus)])
		row.Set("region", demoRegions[(i*3)%len(demoRegions)])
		row.Set("cpu", strconv.Itoa((i*37)%100))
		row.Set("age", (time.Duration((i*113)%720) * time.Hour).String())
		rows = append(rows, row)
	}

	return rows
}
