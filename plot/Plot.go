// Package plot draws learning curves from experiment logs
package plot

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/sflearn/experiment/tracker"
)

// Curve is the value of a metric over the episodes of a single run.
// Episodes without a value are omitted from Values.
type Curve struct {
	Name   string
	Values map[int]float64
}

// ReadLog reads the records of the log at path
func ReadLog(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("readLog: %w", err)
	}
	defer f.Close()

	rows, err := tracker.Read(f)
	if err != nil {
		return nil, fmt.Errorf("readLog: %w", err)
	}
	return rows, nil
}

// runFields returns the fields which identify a run, those logged
// before episode_idx
func runFields() []string {
	var fields []string
	for _, f := range tracker.Fields {
		if f.Name == "episode_idx" {
			break
		}
		fields = append(fields, f.Name)
	}
	return fields
}

// Curves groups rows by run and returns the curve of metric for each
// run, in order of first appearance. Runs are named by the fields in
// which they differ from the other runs.
func Curves(rows []map[string]string, metric string) ([]Curve, error) {
	if _, ok := tracker.KindOf(metric); !ok {
		return nil, fmt.Errorf("curves: unknown metric %q", metric)
	}

	fields := runFields()
	var keys []string
	runs := make(map[string]map[string]string)
	curves := make(map[string]Curve)

	for i, row := range rows {
		ep, err := strconv.Atoi(row["episode_idx"])
		if err != nil {
			return nil, fmt.Errorf("curves: row %d: invalid episode_idx: %w",
				i, err)
		}

		key := runKey(row, fields)
		c, ok := curves[key]
		if !ok {
			keys = append(keys, key)
			runs[key] = row
			c = Curve{Values: make(map[int]float64)}
		}

		value := row[metric]
		if value != "" && value != tracker.None {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("curves: row %d: invalid %v: %w", i,
					metric, err)
			}
			c.Values[ep] = v
		}
		curves[key] = c
	}

	varying := varyingFields(keys, runs, fields)
	out := make([]Curve, len(keys))
	for i, key := range keys {
		c := curves[key]
		c.Name = runName(runs[key], varying, i)
		out[i] = c
	}
	return out, nil
}

func runKey(row map[string]string, fields []string) string {
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = row[f]
	}
	return strings.Join(values, tracker.Separator)
}

func varyingFields(keys []string, runs map[string]map[string]string,
	fields []string) []string {
	var varying []string
	for _, f := range fields {
		for _, key := range keys[min(1, len(keys)):] {
			if runs[key][f] != runs[keys[0]][f] {
				varying = append(varying, f)
				break
			}
		}
	}
	return varying
}

func runName(row map[string]string, varying []string, i int) string {
	if len(varying) == 0 {
		return fmt.Sprintf("run %d", i)
	}
	parts := make([]string, len(varying))
	for j, f := range varying {
		parts[j] = f + "=" + row[f]
	}
	return strings.Join(parts, " ")
}

// Render writes an HTML page with a line chart of curves to w
func Render(w io.Writer, metric string, curves []Curve) error {
	last := -1
	for _, c := range curves {
		for ep := range c.Values {
			if ep > last {
				last = ep
			}
		}
	}

	episodes := make([]int, last+1)
	for i := range episodes {
		episodes[i] = i
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: metric}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: metric}),
	)
	line.SetXAxis(episodes)

	for _, c := range curves {
		items := make([]opts.LineData, len(episodes))
		for _, ep := range episodes {
			if v, ok := c.Values[ep]; ok {
				items[ep] = opts.LineData{Value: v}
			} else {
				items[ep] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(c.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Episodes returns the sorted episodes at which c has values
func (c Curve) Episodes() []int {
	eps := make([]int, 0, len(c.Values))
	for ep := range c.Values {
		eps = append(eps, ep)
	}
	sort.Ints(eps)
	return eps
}
