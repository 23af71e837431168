package config

import (
	"encoding/json"
	"fmt"

	"github.com/wdm0006/tablekit/pkg/logger"
	"github.com/wdm0006/tablekit/pkg/tablekit"
	"github.com/wdm0006/tablekit/pkg/transform/aggregate"
	"github.com/wdm0006/tablekit/pkg/transform/filter"
	"github.com/wdm0006/tablekit/pkg/transform/impute"
	"github.com/wdm0006/tablekit/pkg/transform/order"
	"github.com/wdm0006/tablekit/pkg/transform/outliers"
	"github.com/wdm0006/tablekit/pkg/transform/pivot"
	"github.com/wdm0006/tablekit/pkg/transform/standardize"
)

// Build turns the step list into a pipeline. Each step is an object with a
// single key naming the step. Unknown step names are logged and skipped.
// The returned pivot spec is the last pivot step's, or nil.
func (c *Config) Build(log *logger.Logger) (*tablekit.Pipeline, *pivot.Spec, error) {
	p := tablekit.NewPipeline().WithLogger(log)
	var last *pivot.Spec
	for i, raw := range c.Steps {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, nil, fmt.Errorf("step %d: %w", i, err)
		}
		if len(probe) != 1 {
			return nil, nil, fmt.Errorf("step %d: expected exactly one key, got %d", i, len(probe))
		}
		for name, body := range probe {
			step, err := decodeStep(name, body)
			if err != nil {
				return nil, nil, fmt.Errorf("step %d (%s): %w", i, name, err)
			}
			if step == nil {
				log.Warningf("unknown step %q ignored", name)
				continue
			}
			if pv, ok := step.(*pivot.Pivot); ok {
				spec := pv.Spec
				last = &spec
			}
			p.Add(step)
		}
	}
	return p, last, nil
}

func decodeStep(name string, body json.RawMessage) (tablekit.Transform, error) {
	var step tablekit.Transform
	switch name {
	case "filter":
		step = &filter.Filter{}
	case "sort":
		step = &order.Sort{}
	case "aggregate":
		step = &aggregate.Aggregate{}
	case "pivot":
		pv := &pivot.Pivot{}
		if err := json.Unmarshal(body, &pv.Spec); err != nil {
			return nil, err
		}
		return pv, nil
	case "trim":
		step = &standardize.Trim{}
	case "lower":
		step = &standardize.Lower{}
	case "map_values":
		step = &standardize.MapValues{}
	case "regex_replace":
		step = &standardize.RegexReplace{}
	case "impute_constant":
		step = &impute.Constant{}
	case "impute_mean":
		step = &impute.Mean{}
	case "impute_median":
		step = &impute.Median{}
	case "impute_mode":
		step = &impute.Mode{}
	case "cap_range":
		step = &outliers.Cap{}
	default:
		return nil, nil
	}
	if err := json.Unmarshal(body, step); err != nil {
		return nil, err
	}
	return step, nil
}
