package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// polynomial accepts "x^4 + x + 1", "0x13" or a bare number.
type polynomial uint32

func (p *polynomial) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	v, err := core.ParsePolynomial(s)
	if err != nil {
		return err
	}
	*p = polynomial(v)
	return nil
}

// functionDoc is one function in an input document. Either Values or
// Univariate is set; Univariate needs Dimension.
type functionDoc struct {
	Name       string      `json:"name"`
	Dimension  uint        `json:"dimension,omitempty"`
	Polynomial polynomial  `json:"polynomial,omitempty"`
	Values     []uint32    `json:"values,omitempty"`
	Univariate [][2]uint32 `json:"univariate,omitempty"`
}

// batchDoc is the document read by the batch command.
type batchDoc struct {
	Functions []functionDoc `json:"functions"`
}

func (d *functionDoc) function(poly uint32) (*vbf.Function, error) {
	if d.Polynomial != 0 {
		poly = uint32(d.Polynomial)
	}
	switch {
	case len(d.Values) > 0 && len(d.Univariate) > 0:
		return nil, fmt.Errorf("function %q: both values and univariate given", d.Name)
	case len(d.Univariate) > 0:
		if d.Dimension == 0 {
			return nil, fmt.Errorf("function %q: univariate form needs a dimension", d.Name)
		}
		gf, err := newField(d.Dimension, poly)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", d.Name, err)
		}
		u := make(core.Univariate, len(d.Univariate))
		for i, t := range d.Univariate {
			u[i] = core.Term{Coeff: t[0], Exp: t[1]}
		}
		return vbf.FromUnivariate(gf, u), nil
	default:
		f, err := vbf.New(d.Values, poly)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", d.Name, err)
		}
		if d.Dimension != 0 && d.Dimension != f.Dimension() {
			return nil, fmt.Errorf("function %q: %w: declared %d, table has %d",
				d.Name, core.ErrDimensionMismatch, d.Dimension, f.Dimension())
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("function %q: %w", d.Name, err)
		}
		if poly != 0 {
			if _, err := core.NewField(f.Dimension(), poly); err != nil {
				return nil, fmt.Errorf("function %q: %w", d.Name, err)
			}
		}
		return f, nil
	}
}

func newField(n uint, poly uint32) (*core.Field, error) {
	if poly == 0 {
		return core.NewDefaultField(n)
	}
	return core.NewField(n, poly)
}

// parsePoly parses the --poly flag; empty means none.
func parsePoly(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	return core.ParsePolynomial(s)
}

// parseTable reads an inline truth table: "0,1,8,15" or "[0, 1, 8, 15]" or
// space separated.
func parseTable(s string) ([]uint32, error) {
	fields := strings.FieldsFunc(strings.Trim(strings.TrimSpace(s), "[]"), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty truth table")
	}
	values := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("truth table entry %d: %w", i, err)
		}
		values[i] = uint32(v)
	}
	return values, nil
}

// readDocument decodes a YAML or JSON file into v.
func readDocument(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadFunction resolves a FUNCTION argument: a document holding one function
// if arg names a file, an inline table otherwise.
func loadFunction(arg, polyFlag string) (string, *vbf.Function, error) {
	poly, err := parsePoly(polyFlag)
	if err != nil {
		return "", nil, err
	}
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		var doc functionDoc
		if err := readDocument(arg, &doc); err != nil {
			return "", nil, err
		}
		if doc.Name == "" {
			doc.Name = arg
		}
		f, err := doc.function(poly)
		return doc.Name, f, err
	}
	values, err := parseTable(arg)
	if err != nil {
		return "", nil, err
	}
	doc := functionDoc{Name: "inline", Values: values}
	f, err := doc.function(poly)
	return doc.Name, f, err
}

// loadBatch reads a batch document.
func loadBatch(path, polyFlag string) ([]string, []*vbf.Function, error) {
	poly, err := parsePoly(polyFlag)
	if err != nil {
		return nil, nil, err
	}
	var doc batchDoc
	if err := readDocument(path, &doc); err != nil {
		return nil, nil, err
	}
	names := make([]string, len(doc.Functions))
	funcs := make([]*vbf.Function, len(doc.Functions))
	for i := range doc.Functions {
		d := &doc.Functions[i]
		if d.Name == "" {
			d.Name = fmt.Sprintf("%s#%d", path, i)
		}
		f, err := d.function(poly)
		if err != nil {
			return nil, nil, err
		}
		names[i] = d.Name
		funcs[i] = f
	}
	return names, funcs, nil
}
