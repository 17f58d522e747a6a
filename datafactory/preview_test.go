package datafactory

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PreviewTestSuite struct {
	suite.Suite
}

func (s *PreviewTestSuite) TestParseFlatSchema() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, amount as double, active as boolean)",
		"data": [["a-1", 12.5, true], ["a-2", 3, false]]
	}`)
	s.Require().NoError(err)

	s.Require().Len(p.Columns, 3)
	s.Equal(Column{Name: "id", Type: "string"}, p.Columns[0])
	s.Equal(Column{Name: "amount", Type: "double"}, p.Columns[1])
	s.Equal(Column{Name: "active", Type: "boolean"}, p.Columns[2])
	s.Len(p.Rows, 2)
}

func (s *PreviewTestSuite) TestParseNestedSchema() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, customer as (name as string, tier as integer))",
		"data": [["a-1", ["ACME", 2]]]
	}`)
	s.Require().NoError(err)

	s.Require().Len(p.Columns, 2)
	s.Equal("customer", p.Columns[1].Name)
	s.Require().Len(p.Columns[1].Children, 2)
	s.Equal(Column{Name: "name", Type: "string"}, p.Columns[1].Children[0])
	s.Equal(Column{Name: "tier", Type: "integer"}, p.Columns[1].Children[1])
}

func (s *PreviewTestSuite) TestParseArrayColumns() {
	p, err := ParsePreview(`{
		"schema": "output(tags as string[], matrix as (x as double)[])",
		"data": []
	}`)
	s.Require().NoError(err)

	s.Require().Len(p.Columns, 2)
	s.True(p.Columns[0].IsArray)
	s.Equal("string", p.Columns[0].Type)
	s.True(p.Columns[1].IsArray)
	s.Len(p.Columns[1].Children, 1)
}

func (s *PreviewTestSuite) TestParseRejectsInvalidJSON() {
	_, err := ParsePreview(`not json`)
	s.ErrorContains(err, "not valid JSON")
}

func (s *PreviewTestSuite) TestParseRejectsMissingOutput() {
	_, err := ParsePreview(`{"schema": "columns(id as string)", "data": []}`)
	s.ErrorContains(err, "offset 0")
	s.ErrorContains(err, "output")
}

func (s *PreviewTestSuite) TestParseRejectsMissingAs() {
	_, err := ParsePreview(`{"schema": "output(id string)", "data": []}`)
	s.ErrorContains(err, "expected 'as'")
	s.ErrorContains(err, "offset")
}

func (s *PreviewTestSuite) TestParseRejectsUnterminatedParens() {
	_, err := ParsePreview(`{"schema": "output(id as string", "data": []}`)
	s.ErrorContains(err, "expected ',' or ')'")
}

func (s *PreviewTestSuite) TestParseRejectsTrailingInput() {
	_, err := ParsePreview(`{"schema": "output(id as string) extra", "data": []}`)
	s.ErrorContains(err, "trailing")
}

func (s *PreviewTestSuite) TestJSONPreservesTypes() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, amount as double, active as boolean, note as string)",
		"data": [["a-1", 12.5, true, null]]
	}`)
	s.Require().NoError(err)

	out, err := p.JSON()
	s.Require().NoError(err)
	s.JSONEq(`[{"id": "a-1", "amount": 12.5, "active": true, "note": null}]`, string(out))
}

func (s *PreviewTestSuite) TestJSONNestsObjects() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, customer as (name as string, address as (city as string)))",
		"data": [["a-1", ["ACME", ["Leawood"]]]]
	}`)
	s.Require().NoError(err)

	out, err := p.JSON()
	s.Require().NoError(err)
	s.JSONEq(`[{"id": "a-1", "customer": {"name": "ACME", "address": {"city": "Leawood"}}}]`, string(out))
}

func (s *PreviewTestSuite) TestJSONKeepsArrays() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, tags as string[])",
		"data": [["a-1", ["red", "blue"]]]
	}`)
	s.Require().NoError(err)

	out, err := p.JSON()
	s.Require().NoError(err)
	s.JSONEq(`[{"id": "a-1", "tags": ["red", "blue"]}]`, string(out))
}

func (s *PreviewTestSuite) TestJSONBuildsObjectArrays() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, points as (x as double, y as double)[])",
		"data": [["a-1", [[1.5, 2.0], [2.5, 3.0]]]]
	}`)
	s.Require().NoError(err)

	out, err := p.JSON()
	s.Require().NoError(err)
	s.JSONEq(`[{"id": "a-1", "points": [{"x": 1.5, "y": 2.0}, {"x": 2.5, "y": 3.0}]}]`, string(out))
}

func (s *PreviewTestSuite) TestJSONSingleElementObjectArray() {
	p, err := ParsePreview(`{
		"schema": "output(points as (x as double)[])",
		"data": [[[[1.5]]]]
	}`)
	s.Require().NoError(err)

	out, err := p.JSON()
	s.Require().NoError(err)
	s.JSONEq(`[{"points": [{"x": 1.5}]}]`, string(out))
}

func (s *PreviewTestSuite) TestJSONRejectsShortRow() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, amount as double)",
		"data": [["a-1"]]
	}`)
	s.Require().NoError(err)

	_, err = p.JSON()
	s.ErrorContains(err, "row 0")
}

func (s *PreviewTestSuite) TestCSVFlattensDottedNames() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, customer as (name as string, tier as integer))",
		"data": [["a-1", ["ACME", 2]], ["a-2", ["Initech", 1]]]
	}`)
	s.Require().NoError(err)

	out, err := p.CSV()
	s.Require().NoError(err)
	s.Equal("id,customer.name,customer.tier\na-1,ACME,2\na-2,Initech,1\n", string(out))
}

func (s *PreviewTestSuite) TestCSVEncodesArrayCells() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, tags as string[])",
		"data": [["a-1", ["red", "blue"]]]
	}`)
	s.Require().NoError(err)

	out, err := p.CSV()
	s.Require().NoError(err)
	s.Equal("id,tags\na-1,\"[\"\"red\"\",\"\"blue\"\"]\"\n", string(out))
}

func (s *PreviewTestSuite) TestCSVEncodesObjectArrayCells() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, points as (x as double)[])",
		"data": [["a-1", [[1.5], [2.5]]]]
	}`)
	s.Require().NoError(err)

	out, err := p.CSV()
	s.Require().NoError(err)
	s.Equal("id,points\na-1,\"[{\"\"x\"\":1.5},{\"\"x\"\":2.5}]\"\n", string(out))
}

func (s *PreviewTestSuite) TestCSVEmptyCellForNull() {
	p, err := ParsePreview(`{
		"schema": "output(id as string, note as string)",
		"data": [["a-1", null]]
	}`)
	s.Require().NoError(err)

	out, err := p.CSV()
	s.Require().NoError(err)
	s.Equal("id,note\na-1,\n", string(out))
}

func TestPreview(t *testing.T) {
	suite.Run(t, new(PreviewTestSuite))
}
