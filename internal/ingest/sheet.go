package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row maps a trimmed column label to the raw cell text of one sheet
// row. A missing key or empty string means the cell is absent.
type Row map[string]string

// parseSheet reads the first worksheet of an uploaded workbook into
// label-keyed rows. Column labels are trimmed once here; everything
// downstream matches them exactly. A workbook that cannot be opened or
// holds no usable header is a structural failure: the whole upload is
// rejected before any row is persisted.
func parseSheet(content []byte) ([]string, []Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}

	var labels []string
	var rows []Row
	for _, record := range records {
		if emptyRecord(record) {
			continue
		}
		if labels == nil {
			labels = trimLabels(record)
			continue
		}
		rows = append(rows, recordToRow(labels, record))
	}
	if labels == nil {
		return nil, nil, errors.New("no header row found")
	}
	return labels, rows, nil
}

func trimLabels(record []string) []string {
	labels := make([]string, len(record))
	for i, label := range record {
		labels[i] = strings.TrimSpace(label)
	}
	return labels
}

func recordToRow(labels, record []string) Row {
	row := make(Row, len(labels))
	for i, label := range labels {
		if label == "" {
			continue
		}
		if i < len(record) {
			row[label] = record[i]
		}
	}
	return row
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
