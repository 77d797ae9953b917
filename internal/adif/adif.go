// Package adif encodes contacts in the ADIF text format.
package adif

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/wsjtx-adif/internal/model"
)

// Header is written once, before any record.
const Header = "wsjtx fox ADIF Export<eoh>\n"

// EOR terminates every record.
const EOR = " <eor>\n"

// KV is one ADIF field.
type KV struct {
	Key   string
	Value string
}

// Date formats t as YYYYMMDD in UTC.
func Date(t time.Time) string {
	return t.UTC().Format("20060102")
}

// Time formats t as HHMMSS in UTC.
func Time(t time.Time) string {
	return t.UTC().Format("150405")
}

// DB formats a signal report with an explicit sign and at least two digits.
func DB(v int) string {
	if v >= 0 {
		return fmt.Sprintf("+%02d", v)
	}
	return fmt.Sprintf("-%02d", -v)
}

// ParseDB parses a signed integer report such as "-17" or "+01" and returns
// it in ADIF form.
func ParseDB(s string) (string, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return "", fmt.Errorf("invalid dB report %q: %w", s, err)
	}
	return DB(v), nil
}

// Field encodes a single key-length-value field. The length is in bytes.
func Field(key, value string) string {
	return "<" + key + ":" + strconv.Itoa(len(value)) + ">" + value
}

// Row encodes fields as one record, terminated with <eor> and a newline.
func Row(fields []KV) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = Field(f.Key, f.Value)
	}
	return strings.Join(parts, " ") + EOR
}

// Fields returns the fields of q in export order. Optional fields are
// omitted when absent.
func Fields(q model.QSO) []KV {
	fields := []KV{
		{"call", q.Call},
		{"mode", q.Mode},
		{"rst_sent", q.RSTSent},
		{"rst_rcvd", q.RSTRcvd},
		{"qso_date", Date(q.On)},
		{"time_on", Time(q.On)},
		{"qso_date_off", Date(q.Off)},
		{"time_off", Time(q.Off)},
	}
	if q.Band != "" {
		fields = append(fields, KV{"band", q.Band})
	}
	fields = append(fields,
		KV{"freq", strconv.FormatFloat(q.FreqMHz, 'f', 3, 64)},
		KV{"station_callsign", q.StationCallsign},
	)
	if q.GridSquare != "" {
		fields = append(fields, KV{"gridsquare", q.GridSquare})
	}
	if q.TxPower != nil {
		fields = append(fields, KV{"tx_pwr", strconv.Itoa(*q.TxPower)})
	}
	return fields
}

// Writer writes an ADIF stream. The header goes out before the first record,
// or on Flush if there were no records. Each record is flushed as soon as it
// is written.
type Writer struct {
	w             *bufio.Writer
	headerWritten bool
	records       int
}

// NewWriter returns a Writer buffering output to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header if it has not been written yet.
func (aw *Writer) WriteHeader() error {
	if aw.headerWritten {
		return nil
	}
	if _, err := aw.w.WriteString(Header); err != nil {
		return fmt.Errorf("writing ADIF header: %w", err)
	}
	aw.headerWritten = true
	return nil
}

// WriteRecord encodes q as a single record.
func (aw *Writer) WriteRecord(q model.QSO) error {
	if err := aw.WriteHeader(); err != nil {
		return err
	}
	if _, err := aw.w.WriteString(Row(Fields(q))); err != nil {
		return fmt.Errorf("writing ADIF record for %s: %w", q.Call, err)
	}
	aw.records++
	if err := aw.w.Flush(); err != nil {
		return fmt.Errorf("flushing ADIF record for %s: %w", q.Call, err)
	}
	return nil
}

// Records returns the number of records written so far.
func (aw *Writer) Records() int {
	return aw.records
}

// Flush makes sure the header is out and flushes buffered data.
func (aw *Writer) Flush() error {
	if err := aw.WriteHeader(); err != nil {
		return err
	}
	if err := aw.w.Flush(); err != nil {
		return fmt.Errorf("flushing ADIF output: %w", err)
	}
	return nil
}
