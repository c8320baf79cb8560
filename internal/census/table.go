package census

import (
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
)

// Record is one county row from the API.
type Record struct {
	Name       string
	FIPS       string
	Population int
}

// PopulationTable indexes county population by the 5-character FIPS
// code (state + county). Duplicate codes keep the last-seen row,
// matching plain table re-indexing semantics.
type PopulationTable struct {
	records []Record
	byFIPS  map[string]int
}

// ParseTable decodes the Census "table as array of arrays" JSON shape:
// the first row is a header of field names, every following row is a
// record positioned against that header.
func ParseTable(data []byte) (*PopulationTable, error) {
	var raw [][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "census: decode response")
	}
	if len(raw) == 0 {
		return nil, eris.New("census: empty response table")
	}

	header := raw[0]
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[col] = i
	}
	for _, col := range []string{"NAME", popVariable, "state", "county"} {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("census: response missing %s column", col)
		}
	}

	t := &PopulationTable{byFIPS: make(map[string]int, len(raw)-1)}
	for _, row := range raw[1:] {
		pop, err := strconv.Atoi(column(row, colIdx, popVariable))
		if err != nil {
			return nil, eris.Wrapf(err, "census: non-numeric population for %q", column(row, colIdx, "NAME"))
		}

		rec := Record{
			Name:       column(row, colIdx, "NAME"),
			FIPS:       column(row, colIdx, "state") + column(row, colIdx, "county"),
			Population: pop,
		}
		t.records = append(t.records, rec)
		t.byFIPS[rec.FIPS] = rec.Population
	}

	return t, nil
}

// Population reports the population for a FIPS code. An absent code is
// not an error; callers treat it as zero.
func (t *PopulationTable) Population(fips string) (int, bool) {
	pop, ok := t.byFIPS[fips]
	return pop, ok
}

// Len returns the number of county records parsed.
func (t *PopulationTable) Len() int { return len(t.records) }

// Records returns the parsed rows in response order.
func (t *PopulationTable) Records() []Record { return t.records }

// column gets a value from a row by header name.
func column(row []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
