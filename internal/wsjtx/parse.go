// Package wsjtx parses the per-line trace that WSJT-X writes in fox mode.
//
// Sample lines:
//
//	2019-11-22 05:25:37  21.091  1  0  0 Sel:  JM1LSQ      -17 QM05
//	2019-11-22 05:26:00  21.091  0  1  1 Tx1:  JM1LSQ XZ2D -17
//	2019-11-22 05:26:29  21.091  0  1  1 Rx:   052615  -8 -0.0  300 ~  XZ2D JM1LSQ R+01
//	2019-11-22 05:26:30  21.091  0  1  1 Log:  JM1LSQ QM05 -17 +01 15m
package wsjtx

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	lineRe    = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) (\d{2}:\d{2}:\d{2})\s+(\d+\.\d+)\s+\d+\s+\d+\s+\d+\s+(\w+:)\s+(.*)`)
	locatorRe = regexp.MustCompile(`^[A-Z][A-Z][0-9][0-9]$`)
)

// Header holds the fields common to every line.
type Header struct {
	// At is the line timestamp in the log's time zone.
	At time.Time
	// FreqMHz is the dial frequency exactly as logged.
	FreqMHz string
}

// Event is one recognised log line. It is one of Selection, Receive,
// Transmit or Logged.
type Event interface {
	Head() Header
	event()
}

// Selection is a station picked by the operator for working.
type Selection struct {
	Header
	Call string
	// Report is the signal report we send, as logged ("-17").
	Report string
	// Locator is the grid candidate; it may be malformed.
	Locator string
}

// Receive is a decoded message.
type Receive struct {
	Header
	Slot   string
	SNR    string
	DT     string
	Offset string
	MyCall string
	Call   string
	Report string
}

// Transmit is one of the fox's Tx1..Tx5 lines.
type Transmit struct {
	Header
	Slot    string
	Payload string
}

// Logged is WSJT-X's own logging decision.
type Logged struct {
	Header
	Payload string
}

func (h Header) Head() Header { return h }

func (Selection) event() {}
func (Receive) event()   {}
func (Transmit) event()  {}
func (Logged) event()    {}

// IsConfirmation reports whether the report token is an R-report, meaning
// the remote station has received our report.
func (r Receive) IsConfirmation() bool {
	return strings.HasPrefix(r.Report, "R")
}

// ParseError is a line that has the outer log shape but a malformed payload.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Line)
}

// IsGridLocator reports whether s is a four character grid square.
func IsGridLocator(s string) bool {
	return locatorRe.MatchString(s)
}

// Parse parses a single log line. Lines that do not look like protocol
// trace lines, and lines with unknown tags, return a nil Event and a nil
// error. Timestamps are interpreted in loc.
func Parse(line string, loc *time.Location) (Event, error) {
	line = strings.TrimRight(line, "\r\n")
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, nil
	}
	date, clock, freq, tag, payload := m[1], m[2], m[3], m[4], m[5]

	if !isKnownTag(tag) {
		return nil, nil
	}

	at, err := time.ParseInLocation(timestampLayout, date+" "+clock, loc)
	if err != nil {
		return nil, &ParseError{Line: line, Reason: "invalid timestamp"}
	}
	h := Header{At: at, FreqMHz: freq}
	fields := strings.Fields(payload)

	switch {
	case tag == "Sel:":
		if len(fields) != 3 {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("sel: expected 3 fields, got %d", len(fields))}
		}
		return Selection{Header: h, Call: fields[0], Report: fields[1], Locator: fields[2]}, nil

	case tag == "Rx:":
		if len(fields) < 8 {
			return nil, &ParseError{Line: line, Reason: "rx: not enough fields"}
		}
		return Receive{
			Header: h,
			Slot:   fields[0],
			SNR:    fields[1],
			DT:     fields[2],
			Offset: fields[3],
			MyCall: fields[5],
			Call:   stripBrackets(fields[6]),
			Report: fields[7],
		}, nil

	case tag == "Log:":
		return Logged{Header: h, Payload: payload}, nil

	default:
		return Transmit{Header: h, Slot: strings.TrimSuffix(tag, ":"), Payload: payload}, nil
	}
}

func isKnownTag(tag string) bool {
	switch tag {
	case "Sel:", "Rx:", "Log:":
		return true
	}
	return strings.HasPrefix(tag, "Tx")
}

// stripBrackets turns a hashed compound call like <OH0/OH7LZB> into OH0/OH7LZB.
func stripBrackets(call string) string {
	if len(call) >= 2 && strings.HasPrefix(call, "<") && strings.HasSuffix(call, ">") {
		return call[1 : len(call)-1]
	}
	return call
}
