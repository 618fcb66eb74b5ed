package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// DefaultDateLayout matches the sale date format of the King County house
// sales export, e.g. 20141013T000000.
const DefaultDateLayout = "20060102T150405"

var (
	ErrNoSchema        = errors.New("no schema provided")
	ErrNoHeader        = errors.New("missing header row")
	ErrMissingColumn   = errors.New("schema column missing from header")
	ErrBadNumericValue = errors.New("non-numeric value in numeric column")
	ErrBadDateValue    = errors.New("unparseable value in date column")
)

// Schema declares which CSV columns to load. Numeric columns are cast to
// float64 failing fast on any value that does not parse. An optional date
// column is parsed with the provided layout.
type Schema struct {
	NumericColumns []string `json:"numeric_columns"`
	DateColumn     string   `json:"date_column"`
	DateLayout     string   `json:"date_layout"`
}

// Validate runs basic validation on the schema filling in the default date
// layout.
func (s *Schema) Validate() (*Schema, error) {
	if s == nil {
		return nil, ErrNoSchema
	}
	if len(s.NumericColumns) == 0 {
		return nil, ErrNoColumns
	}
	if s.DateLayout == "" {
		s.DateLayout = DefaultDateLayout
	}
	return s, nil
}

// Open loads a CSV file into a Dataset. Files ending in .gz are decompressed
// transparently.
func Open(path string, schema *Schema) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("unable to open gzip stream, %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return FromCSV(r, schema)
}

// FromCSV reads a header-prefixed CSV stream into a Dataset keeping only the
// schema columns.
func FromCSV(r io.Reader, schema *Schema) (*Dataset, error) {
	schema, err := schema.Validate()
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	numericIdx := make([]int, 0, len(schema.NumericColumns))
	for _, name := range schema.NumericColumns {
		idx, exists := colIdx[name]
		if !exists {
			return nil, fmt.Errorf("%s, %w", name, ErrMissingColumn)
		}
		numericIdx = append(numericIdx, idx)
	}

	dateIdx := -1
	if schema.DateColumn != "" {
		idx, exists := colIdx[schema.DateColumn]
		if !exists {
			return nil, fmt.Errorf("%s, %w", schema.DateColumn, ErrMissingColumn)
		}
		dateIdx = idx
	}

	columns := make(map[string][]float64, len(schema.NumericColumns))
	for _, name := range schema.NumericColumns {
		columns[name] = nil
	}
	var dates []time.Time

	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		for i, name := range schema.NumericColumns {
			val, err := strconv.ParseFloat(strings.TrimSpace(record[numericIdx[i]]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %v, %w", row, name, err, ErrBadNumericValue)
			}
			columns[name] = append(columns[name], val)
		}

		if dateIdx >= 0 {
			d, err := time.Parse(schema.DateLayout, strings.Trim(strings.TrimSpace(record[dateIdx]), `"`))
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %v, %w", row, schema.DateColumn, err, ErrBadDateValue)
			}
			dates = append(dates, d)
		}
	}

	if dateIdx >= 0 {
		return NewWithDates(columns, dates)
	}
	return New(columns)
}
