// Package export writes the task list in portable formats.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/jung-kurt/gofpdf"

	"todo/internal/storage"
	"todo/internal/task"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
	FormatPDF  = "pdf"
)

// Formats lists the supported format names.
var Formats = []string{FormatJSON, FormatCBOR, FormatPDF}

// encMode uses Core Deterministic Encoding: the same records always
// produce identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

// Write encodes records in the named format to w.
func Write(w io.Writer, format string, records []task.Record) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case FormatJSON:
		data, err = storage.Encode(records)
	case FormatCBOR:
		data, err = CBOR(records)
	case FormatPDF:
		data, err = PDF(records)
	default:
		return fmt.Errorf("unknown export format: %s (want %s)", format, strings.Join(Formats, ", "))
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// CBOR encodes records as a deterministic CBOR array of maps with the
// same field names as the persisted JSON.
func CBOR(records []task.Record) ([]byte, error) {
	if records == nil {
		records = []task.Record{}
	}
	return encMode.Marshal(records)
}

// Decode parses CBOR produced by CBOR.
func Decode(data []byte) ([]task.Record, error) {
	var records []task.Record
	if err := cbor.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// PDF renders records as a printable A4 checklist.
func PDF(records []task.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Todo list", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Todo list")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if len(records) == 0 {
		pdf.Cell(40, 8, "no tasks")
	}

	// Core fonts are cp1252; map UTF-8 text so accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	done := 0
	for _, r := range records {
		box := "[ ]"
		if r.Completed {
			box = "[x]"
			done++
		}
		pdf.MultiCell(0, 7, tr(box+"  "+r.Text), "0", "L", false)
	}
	if len(records) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(40, 6, fmt.Sprintf("%d of %d completed", done, len(records)))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
