package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Tiliavir/wsjtx-adif/internal/band"
)

func TestFormatKHz(t *testing.T) {
	tests := []struct {
		khz  float64
		want string
	}{
		{1800, "1800"},
		{18068, "18068"},
		{135.7, "135.7"},
		{440000, "440000"},
	}
	for _, tt := range tests {
		got := formatKHz(tt.khz)
		if got != tt.want {
			t.Errorf("formatKHz(%v) = %q, want %q", tt.khz, got, tt.want)
		}
	}
}

func TestPrintBandsCSV(t *testing.T) {
	var buf bytes.Buffer
	printBandsCSV(&buf, band.Table())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 14 {
		t.Fatalf("got %d lines, want 14", len(lines))
	}
	if lines[0] != "band,low_khz,high_khz" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "160m,1800,2000" {
		t.Errorf("first row = %q", lines[1])
	}
	if lines[13] != "70cm,430000,440000" {
		t.Errorf("last row = %q", lines[13])
	}
}
