// Package convert drives a single pass over a WSJT-X log, writing every
// confirmed contact to an ADIF stream as soon as it is seen.
package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/Tiliavir/wsjtx-adif/internal/adif"
	"github.com/Tiliavir/wsjtx-adif/internal/qso"
	"github.com/Tiliavir/wsjtx-adif/internal/wsjtx"
)

const maxLineBytes = 1024 * 1024

// Options configures a conversion run.
type Options struct {
	MyCall string
	// Location is the zone of the log timestamps; nil means UTC.
	Location *time.Location
	// TxPower in watts; nil leaves tx_pwr out.
	TxPower *int
}

// Stats summarises a run.
type Stats struct {
	Lines       int
	Matched     int
	Records     int
	Skipped     int
	Unconfirmed int
}

// Run reads r line by line and writes the ADIF header and records to w.
// Malformed lines are logged and skipped; only I/O errors and context
// cancellation end the run early.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options, logger *log.Logger) (Stats, error) {
	var st Stats
	if opts.MyCall == "" {
		return st, errors.New("own callsign is required")
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	out := adif.NewWriter(w)
	if err := out.WriteHeader(); err != nil {
		return st, err
	}
	tracker := qso.NewTracker(qso.Options{MyCall: opts.MyCall, TxPower: opts.TxPower})

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			out.Flush()
			return st, err
		}
		line, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Flush()
			return st, fmt.Errorf("reading input: %w", err)
		}
		st.Lines++
		if tooLong {
			logger.Warn("skipping overlong line", "line", st.Lines, "limit", humanize.IBytes(maxLineBytes))
			continue
		}

		ev, err := wsjtx.Parse(line, loc)
		if err != nil {
			st.Skipped++
			logger.Warn("skipping line", "line", st.Lines, "err", err)
			continue
		}
		if ev == nil {
			continue
		}
		st.Matched++

		q, err := tracker.Handle(ev)
		if err != nil {
			st.Skipped++
			logger.Warn("skipping line", "line", st.Lines, "err", err)
			continue
		}
		if q == nil {
			continue
		}
		if err := out.WriteRecord(*q); err != nil {
			return st, err
		}
		st.Records++
		logger.Debug("logged", "call", q.Call, "band", q.Band, "rst_sent", q.RSTSent, "rst_rcvd", q.RSTRcvd)
	}
	if err := out.Flush(); err != nil {
		return st, err
	}

	for _, p := range tracker.Pending() {
		logger.Info("never confirmed", "call", p.Call, "freq", p.FreqMHz)
	}
	st.Unconfirmed = tracker.Len()

	logger.Info("conversion done",
		"lines", humanize.Comma(int64(st.Lines)),
		"records", humanize.Comma(int64(st.Records)),
		"skipped", humanize.Comma(int64(st.Skipped)),
		"unconfirmed", humanize.Comma(int64(st.Unconfirmed)))
	return st, nil
}

// readLine returns the next line without its terminator. Lines longer than
// maxLineBytes are consumed to the end and reported as too long. io.EOF is
// returned only when no further bytes remain.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && (len(buf) > 0 || tooLong) {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			if tooLong {
				return "", true, nil
			}
			return string(buf), false, nil
		}
	}
}
