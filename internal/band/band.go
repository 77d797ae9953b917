// Package band maps frequencies to ADIF band names.
package band

// Band describes an amateur band by its ADIF name and inclusive edges in kHz.
type Band struct {
	Name    string
	LowKHz  float64
	HighKHz float64
}

// Contains reports whether khz lies within the band edges, inclusive.
func (b Band) Contains(khz float64) bool {
	return khz >= b.LowKHz && khz <= b.HighKHz
}

// Rough band edges. Order is the lookup priority: the first match wins.
var table = []Band{
	{Name: "160m", LowKHz: 1800, HighKHz: 2000},
	{Name: "80m", LowKHz: 3500, HighKHz: 3800},
	{Name: "60m", LowKHz: 5300, HighKHz: 5400},
	{Name: "40m", LowKHz: 7000, HighKHz: 7200},
	{Name: "30m", LowKHz: 10100, HighKHz: 10150},
	{Name: "20m", LowKHz: 14000, HighKHz: 14250},
	{Name: "17m", LowKHz: 18068, HighKHz: 18168},
	{Name: "15m", LowKHz: 21000, HighKHz: 21450},
	{Name: "12m", LowKHz: 24890, HighKHz: 24990},
	{Name: "10m", LowKHz: 28000, HighKHz: 29690},
	{Name: "6m", LowKHz: 50000, HighKHz: 52000},
	{Name: "2m", LowKHz: 140000, HighKHz: 150000},
	{Name: "70cm", LowKHz: 430000, HighKHz: 440000},
}

// Resolve returns the name of the first band containing khz.
// The boolean is false when no band matches.
func Resolve(khz float64) (string, bool) {
	for _, b := range table {
		if b.Contains(khz) {
			return b.Name, true
		}
	}
	return "", false
}

// FromMHz is Resolve for a frequency given in MHz.
func FromMHz(mhz float64) (string, bool) {
	return Resolve(mhz * 1000.0)
}

// Table returns a copy of the band table in lookup order.
func Table() []Band {
	out := make([]Band, len(table))
	copy(out, table)
	return out
}
