// Package golearn converts tablekit tables to and from
// github.com/sjwhitworth/golearn/base DenseInstances, so aggregated or pivoted
// output can feed golearn models.
package golearn

import (
	"fmt"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// ToDenseInstances converts t into DenseInstances. Number columns become
// float attributes (unparseable cells read as 0); every other column is
// categorical. classColumn names the class attribute by id or name; when
// empty the last column is used.
func ToDenseInstances(t *tablekit.Table, classColumn string) (*base.DenseInstances, error) {
	if t.NumCols() == 0 {
		return nil, fmt.Errorf("golearn: table has no columns")
	}
	class := t.NumCols() - 1
	if classColumn != "" {
		i, ok := t.Index().Resolve(classColumn)
		if !ok {
			return nil, fmt.Errorf("golearn: unknown class column %q", classColumn)
		}
		class = i
	}

	attrs := make([]base.Attribute, t.NumCols())
	for i, h := range t.Headers {
		if h.IsNumber() {
			attrs[i] = base.NewFloatAttribute(h.Name)
			continue
		}
		ca := new(base.CategoricalAttribute)
		ca.SetName(h.Name)
		attrs[i] = ca
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(t.NumRows()); err != nil {
		return nil, err
	}
	for r, row := range t.Rows {
		for c, a := range attrs {
			v := tablekit.Cell(row, c)
			if _, ok := a.(*base.FloatAttribute); ok {
				inst.Set(specs[c], r, base.PackFloatToBytes(parse.Number(v)))
				continue
			}
			inst.Set(specs[c], r, a.GetSysValFromString(v))
		}
	}
	if err := inst.AddClassAttribute(attrs[class]); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromDenseInstances converts DenseInstances back into a Table. Float
// attributes become number columns.
func FromDenseInstances(inst *base.DenseInstances) (*tablekit.Table, error) {
	attrs := inst.AllAttributes()
	headers := make([]tablekit.Header, len(attrs))
	specs := make([]base.AttributeSpec, len(attrs))
	float := make([]bool, len(attrs))
	for i, a := range attrs {
		_, float[i] = a.(*base.FloatAttribute)
		typ := tablekit.TypeText
		if float[i] {
			typ = tablekit.TypeNumber
		}
		headers[i] = tablekit.Header{ID: a.GetName(), Name: a.GetName(), Type: typ}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	_, nrows := inst.Size()
	rows := make([][]string, nrows)
	for r := range rows {
		row := make([]string, len(attrs))
		for c, spec := range specs {
			raw := inst.Get(spec, r)
			if float[c] {
				row[c] = parse.FormatNumber(base.UnpackBytesToFloat(raw))
			} else {
				row[c] = spec.GetAttribute().GetStringFromSysVal(raw)
			}
		}
		rows[r] = row
	}
	return tablekit.NewTable(headers, rows), nil
}
