package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"todo/internal/task"
)

// Encode serializes records in the persisted layout:
// compact JSON, HTML characters unescaped, "[]" for an empty list.
func Encode(records []task.Record) ([]byte, error) {
	if records == nil {
		records = []task.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	// Encoder terminates each value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses the persisted layout. A JSON null decodes as an empty list.
func Decode(data []byte) ([]task.Record, error) {
	var records []task.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if records == nil {
		records = []task.Record{}
	}
	return records, nil
}
