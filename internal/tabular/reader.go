// Package tabular reads delimited data tables into string rows. It is the
// shared loading primitive for the scenario and geo packages, which layer
// their own semantics (column selection, filtering) on top.
package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// ReadOption configures a single read pass.
type ReadOption func(*readConfig)

type readConfig struct {
	comma     rune
	skipRows  int
	minFields int
	trim      bool
}

// WithComma sets the field delimiter. Defaults to ';'.
func WithComma(comma rune) ReadOption {
	return func(cfg *readConfig) {
		cfg.comma = comma
	}
}

// WithSkipRows discards the first n rows before any other processing.
func WithSkipRows(n int) ReadOption {
	return func(cfg *readConfig) {
		if n > 0 {
			cfg.skipRows = n
		}
	}
}

// WithMinFields drops rows carrying fewer than n fields. Short rows are
// skipped silently; callers that care about them must validate upstream.
func WithMinFields(n int) ReadOption {
	return func(cfg *readConfig) {
		cfg.minFields = n
	}
}

// WithTrimSpace strips surrounding whitespace from every field.
func WithTrimSpace() ReadOption {
	return func(cfg *readConfig) {
		cfg.trim = true
	}
}

func applyReadOptions(opts []ReadOption) readConfig {
	cfg := readConfig{comma: ';'}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ReadRows loads every row of the file at path. A missing file surfaces the
// underlying fs error so callers can translate it into their own sentinel.
func ReadRows(path string, opts ...ReadOption) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseRows(file, applyReadOptions(opts))
}

func parseRows(r io.Reader, cfg readConfig) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = cfg.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	seen := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		seen++
		if seen <= cfg.skipRows {
			continue
		}
		if cfg.trim {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
		}
		if len(record) < cfg.minFields {
			continue
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
