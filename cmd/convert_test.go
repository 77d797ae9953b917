package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/wsjtx-adif/internal/config"
)

const sampleLog = `2019-11-22 05:25:37  21.091  1  0  0 Sel:  JM1LSQ      -17 QM05
2019-11-22 05:26:29  21.091  0  1  1 Rx:   052615  -8 -0.0  300 ~  XZ2D JM1LSQ R+01
`

func resetConvertFlags() {
	convertMyCall = ""
	convertTZ = ""
	convertIn = ""
	convertOut = ""
	convertPower = 0
	convertConfig = ""
	convertMetricsFile = ""
	convertVerbose = false
}

// flagCmd returns a command carrying the convert flags, parsed from args.
func flagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	resetConvertFlags()
	c := &cobra.Command{}
	c.Flags().StringVar(&convertMyCall, "mycall", "", "")
	c.Flags().StringVar(&convertTZ, "tz", "", "")
	c.Flags().IntVar(&convertPower, "power", 0, "")
	c.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "")
	if err := c.Flags().Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return c
}

func defaults() config.Config {
	return config.Config{Timezone: config.DefaultTimezone, LogLevel: config.DefaultLogLevel}
}

func TestResolveSettingsFlagsWin(t *testing.T) {
	cfg := defaults()
	cfg.MyCall = "OH7LZB"
	cfg.Power = 50

	c := flagCmd(t, "--mycall", " n0call ", "--power", "100", "-v")
	s, err := resolveSettings(c, cfg)
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.myCall != "n0call" {
		t.Errorf("myCall = %q, want %q", s.myCall, "n0call")
	}
	if s.power == nil || *s.power != 100 {
		t.Errorf("power = %v, want 100", s.power)
	}
	if s.location.String() != "UTC" {
		t.Errorf("location = %v, want UTC", s.location)
	}
	if s.logLevel != log.DebugLevel {
		t.Errorf("logLevel = %v, want debug", s.logLevel)
	}
}

func TestResolveSettingsFromConfig(t *testing.T) {
	cfg := defaults()
	cfg.MyCall = "OH7LZB"

	s, err := resolveSettings(flagCmd(t), cfg)
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.myCall != "OH7LZB" {
		t.Errorf("myCall = %q, want %q", s.myCall, "OH7LZB")
	}
	if s.power != nil {
		t.Errorf("power = %v, want nil", *s.power)
	}
	if s.logLevel != log.InfoLevel {
		t.Errorf("logLevel = %v, want info", s.logLevel)
	}
}

func TestResolveSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing mycall", nil, "--mycall"},
		{"unknown zone", []string{"--mycall", "N0CALL", "--tz", "Nowhere/Town"}, "time zone"},
		{"zero power", []string{"--mycall", "N0CALL", "--power", "0"}, "--power"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveSettings(flagCmd(t, tt.args...), defaults())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestConvertCommand(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	in := filepath.Join(dir, "ALL.TXT")
	out := filepath.Join(dir, "fox.adi")
	prom := filepath.Join(dir, "wsjtx_adif.prom")
	if err := os.WriteFile(in, []byte(sampleLog), 0o600); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{
		"convert",
		"--config", filepath.Join(dir, "config.yaml"),
		"--mycall", "N0CALL",
		"--in", in,
		"--out", out,
		"--power", "100",
		"--metrics-file", prom,
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetErr(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "wsjtx fox ADIF Export<eoh>\n") {
		t.Errorf("output missing header: %q", got)
	}
	for _, want := range []string{"<call:6>JM1LSQ", "<band:3>15m", "<station_callsign:6>N0CALL", "<tx_pwr:3>100 <eor>\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
	if _, err := os.Stat(prom); err != nil {
		t.Errorf("metrics file not written: %v", err)
	}
	if !strings.Contains(stderr.String(), "conversion done") {
		t.Errorf("stderr missing summary: %q", stderr.String())
	}
}
