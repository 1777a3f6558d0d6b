// Package diagnosis holds the record set produced by one recognition run
// and its CSV form.
package diagnosis

import (
	"github.com/ironsheep/diagnosis-ocr/internal/writer"
)

// Column is the header of the single CSV column.
const Column = "Diagnoses"

// FileName is the default name of the output file.
const FileName = "diagnosis.csv"

// Record is one row of the record set.
type Record struct {
	Diagnosis string
}

// RecordSet is an ordered list of records.
type RecordSet []Record

// Collect returns one record per text, in order.
func Collect(texts ...string) RecordSet {
	set := make(RecordSet, 0, len(texts))
	for _, text := range texts {
		set = append(set, Record{Diagnosis: text})
	}
	return set
}

// Header returns the CSV header row.
func Header() []string {
	return []string{Column}
}

// Row returns the CSV row for r.
func Row(r Record) []string {
	return []string{r.Diagnosis}
}

// NewWriter returns a CSV writer for records.
func NewWriter() *writer.CSVWriter[Record] {
	return writer.NewCSVWriter(Row, Header)
}

// Save writes set to path as CSV, replacing any existing file, and returns
// the absolute path written.
func Save(path string, set RecordSet) (string, error) {
	return NewWriter().WriteFile(path, set)
}
