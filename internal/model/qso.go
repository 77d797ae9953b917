// Package model holds the contact records passed between parser, tracker and encoder.
package model

import "time"

// QSO is a completed contact ready for export.
type QSO struct {
	Call    string
	Mode    string
	RSTSent string
	RSTRcvd string
	// On and Off are the same instant: the log only timestamps the reply.
	On  time.Time
	Off time.Time
	// Band is empty when the frequency is outside every known band.
	Band            string
	FreqMHz         float64
	StationCallsign string
	// GridSquare is empty when the station sent no usable locator.
	GridSquare string
	// TxPower is in watts; nil means not configured.
	TxPower *int
}

// Pending is a station selected for working that has not confirmed our report yet.
type Pending struct {
	Call       string
	FreqMHz    string
	Locator    string
	SentReport string
}
