package datafactory

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
)

// Column describes one output column of a data-flow preview. A nested column has
// Children instead of a scalar Type.
type Column struct {
	Name     string
	Type     string
	IsArray  bool
	Children []Column
}

// Preview is the parsed result of a data-flow preview query: the output schema and
// the row data, which stays in the decoded JSON types (string, float64, bool, nil).
type Preview struct {
	Columns []Column
	Rows    [][]any
}

// ParsePreview parses the raw response of a preview command. The response is a JSON
// envelope whose "schema" field holds the output schema in Data Factory's schema
// notation, e.g.
//
//	output(id as string, amount as double, customer as (name as string), tags as string[])
//
// and whose "data" field holds the rows as positional arrays. Nested columns carry
// their values as positional sub-arrays.
func ParsePreview(raw string) (*Preview, error) {
	var envelope struct {
		Schema string  `json:"schema"`
		Data   [][]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("preview response is not valid JSON: %w", err)
	}

	columns, err := parseSchema(envelope.Schema)
	if err != nil {
		return nil, err
	}
	return &Preview{Columns: columns, Rows: envelope.Data}, nil
}

// JSON renders the preview as an array of objects, one per row. Nested columns
// become nested objects, an array of nested columns becomes one object per element,
// scalar array columns stay arrays, and numeric and boolean values keep their types.
func (p *Preview) JSON() ([]byte, error) {
	objects := make([]map[string]any, 0, len(p.Rows))
	for i, row := range p.Rows {
		obj, err := buildObject(p.Columns, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		objects = append(objects, obj)
	}
	return json.Marshal(objects)
}

// CSV renders the preview as a header line plus one line per row. Nested columns are
// flattened into dotted names (customer.name); array values, including arrays of
// nested objects, are JSON-encoded into their single cell.
func (p *Preview) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(flattenHeader(p.Columns, "")); err != nil {
		return nil, err
	}
	for i, row := range p.Rows {
		record, err := flattenRow(p.Columns, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildObject(columns []Column, row []any) (map[string]any, error) {
	if len(row) != len(columns) {
		return nil, fmt.Errorf("expected %d values, got %d", len(columns), len(row))
	}
	obj := make(map[string]any, len(columns))
	for i, col := range columns {
		value, err := buildValue(col, row[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		obj[col.Name] = value
	}
	return obj, nil
}

// buildValue shapes one row value per its column: scalars pass through, a nested
// column's positional sub-array becomes an object, and a nested array column
// becomes one object per element.
func buildValue(col Column, value any) (any, error) {
	if len(col.Children) == 0 || value == nil {
		return value, nil
	}
	sub, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("nested value is not an array")
	}
	if !col.IsArray {
		return buildObject(col.Children, sub)
	}
	elements := make([]any, 0, len(sub))
	for j, elem := range sub {
		positional, ok := elem.([]any)
		if !ok {
			return nil, fmt.Errorf("element %d is not an array", j)
		}
		obj, err := buildObject(col.Children, positional)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", j, err)
		}
		elements = append(elements, obj)
	}
	return elements, nil
}

func flattenHeader(columns []Column, prefix string) []string {
	var header []string
	for _, col := range columns {
		name := col.Name
		if prefix != "" {
			name = prefix + "." + name
		}
		// an array of nested objects occupies a single JSON-encoded cell
		if len(col.Children) == 0 || col.IsArray {
			header = append(header, name)
			continue
		}
		header = append(header, flattenHeader(col.Children, name)...)
	}
	return header
}

func flattenRow(columns []Column, row []any) ([]string, error) {
	if len(row) != len(columns) {
		return nil, fmt.Errorf("expected %d values, got %d", len(columns), len(row))
	}
	var record []string
	for i, col := range columns {
		if len(col.Children) == 0 || col.IsArray {
			value, err := buildValue(col, row[i])
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", col.Name, err)
			}
			cell, err := formatCell(value)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", col.Name, err)
			}
			record = append(record, cell)
			continue
		}
		sub, ok := row[i].([]any)
		if !ok {
			return nil, fmt.Errorf("column %q: nested value is not an array", col.Name)
		}
		nested, err := flattenRow(col.Children, sub)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		record = append(record, nested...)
	}
	return record, nil
}

func formatCell(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}

// schemaParser is a recursive-descent parser for the preview schema notation.
type schemaParser struct {
	input string
	pos   int
}

// parseSchema parses "output(...)" into the column list.
func parseSchema(schema string) ([]Column, error) {
	p := &schemaParser{input: schema}
	p.skipSpaces()
	if !p.consumeKeyword("output") {
		return nil, p.errorf("expected schema to start with 'output'")
	}
	p.skipSpaces()
	if !p.consume("(") {
		return nil, p.errorf("expected '(' after 'output'")
	}
	columns, err := p.parseColumns()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing input")
	}
	return columns, nil
}

// parseColumns parses a comma-separated column list up to and including the closing
// parenthesis.
func (p *schemaParser) parseColumns() ([]Column, error) {
	var columns []Column
	for {
		p.skipSpaces()
		name := p.identifier()
		if name == "" {
			return nil, p.errorf("expected a column name")
		}
		p.skipSpaces()
		if !p.consumeKeyword("as") {
			return nil, p.errorf("expected 'as' after column %q", name)
		}
		p.skipSpaces()

		col := Column{Name: name}
		if p.peek() == '(' {
			p.pos++
			children, err := p.parseColumns()
			if err != nil {
				return nil, err
			}
			col.Children = children
		} else {
			typeName := p.identifier()
			if typeName == "" {
				return nil, p.errorf("expected a type for column %q", name)
			}
			col.Type = typeName
		}
		if p.consume("[]") {
			col.IsArray = true
		}
		columns = append(columns, col)

		p.skipSpaces()
		switch {
		case p.consume(","):
			continue
		case p.consume(")"):
			return columns, nil
		default:
			return nil, p.errorf("expected ',' or ')' after column %q", name)
		}
	}
}

func (p *schemaParser) errorf(format string, args ...any) error {
	return fmt.Errorf("invalid preview schema at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *schemaParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *schemaParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// consumeKeyword consumes s only when it is not the prefix of a longer identifier.
func (p *schemaParser) consumeKeyword(s string) bool {
	end := p.pos + len(s)
	if end < len(p.input) && isIdentifierByte(p.input[end]) {
		return false
	}
	return p.consume(s)
}

func (p *schemaParser) consume(s string) bool {
	if len(p.input)-p.pos < len(s) || p.input[p.pos:p.pos+len(s)] != s {
		return false
	}
	p.pos += len(s)
	return true
}

func (p *schemaParser) identifier() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentifierByte(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isIdentifierByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}
