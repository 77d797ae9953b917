// Package qso reconstructs completed contacts from parsed log events.
package qso

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Tiliavir/wsjtx-adif/internal/adif"
	"github.com/Tiliavir/wsjtx-adif/internal/band"
	"github.com/Tiliavir/wsjtx-adif/internal/model"
	"github.com/Tiliavir/wsjtx-adif/internal/wsjtx"
)

// DefaultMode is the only mode a fox log can contain.
const DefaultMode = "FT8"

// Options configures a Tracker.
type Options struct {
	// MyCall is written as station_callsign.
	MyCall string
	// Mode defaults to DefaultMode.
	Mode string
	// TxPower in watts; nil leaves tx_pwr out of the records.
	TxPower *int
}

// Tracker keeps the stations selected for working and turns a confirmed
// reply into a QSO. A callsign is pending at most once; a new selection
// replaces the previous one.
type Tracker struct {
	opts    Options
	pending map[string]model.Pending
}

// NewTracker returns an empty Tracker.
func NewTracker(opts Options) *Tracker {
	if opts.Mode == "" {
		opts.Mode = DefaultMode
	}
	return &Tracker{opts: opts, pending: make(map[string]model.Pending)}
}

// Handle applies one event. It returns a QSO when the event completes a
// contact, and an error when a confirming report cannot be parsed; state is
// left untouched in that case.
func (t *Tracker) Handle(ev wsjtx.Event) (*model.QSO, error) {
	switch e := ev.(type) {
	case wsjtx.Selection:
		t.pending[e.Call] = model.Pending{
			Call:       e.Call,
			FreqMHz:    e.FreqMHz,
			Locator:    e.Locator,
			SentReport: e.Report,
		}
		return nil, nil
	case wsjtx.Receive:
		return t.receive(e)
	default:
		// Tx and Log lines carry nothing we act on.
		return nil, nil
	}
}

func (t *Tracker) receive(e wsjtx.Receive) (*model.QSO, error) {
	p, ok := t.pending[e.Call]
	if !ok || !e.IsConfirmation() {
		return nil, nil
	}

	rcvd, err := adif.ParseDB(e.Report[1:])
	if err != nil {
		return nil, fmt.Errorf("rx from %s: %w", e.Call, err)
	}
	sent, err := adif.ParseDB(p.SentReport)
	if err != nil {
		return nil, fmt.Errorf("sel of %s: %w", e.Call, err)
	}
	freq, err := strconv.ParseFloat(p.FreqMHz, 64)
	if err != nil {
		return nil, fmt.Errorf("sel of %s: invalid frequency %q: %w", e.Call, p.FreqMHz, err)
	}

	at := e.At.UTC()
	q := &model.QSO{
		Call:            e.Call,
		Mode:            t.opts.Mode,
		RSTSent:         sent,
		RSTRcvd:         rcvd,
		On:              at,
		Off:             at,
		FreqMHz:         freq,
		StationCallsign: t.opts.MyCall,
		TxPower:         t.opts.TxPower,
	}
	if name, ok := band.FromMHz(freq); ok {
		q.Band = name
	}
	// Compound calls do not send a locator.
	if wsjtx.IsGridLocator(p.Locator) {
		q.GridSquare = p.Locator
	}

	delete(t.pending, e.Call)
	return q, nil
}

// Len returns the number of pending stations.
func (t *Tracker) Len() int {
	return len(t.pending)
}

// Pending returns the stations still waiting for a confirmation, sorted by call.
func (t *Tracker) Pending() []model.Pending {
	out := make([]model.Pending, 0, len(t.pending))
	for _, p := range t.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Call < out[j].Call })
	return out
}
