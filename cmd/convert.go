package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/wsjtx-adif/internal/config"
	"github.com/Tiliavir/wsjtx-adif/internal/convert"
	"github.com/Tiliavir/wsjtx-adif/internal/metrics"
	"github.com/Tiliavir/wsjtx-adif/internal/stream"
)

var (
	convertMyCall      string
	convertTZ          string
	convertIn          string
	convertOut         string
	convertPower       int
	convertConfig      string
	convertMetricsFile string
	convertVerbose     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a WSJT-X fox mode log to ADIF",
	Example: `  wsjtx-adif convert --mycall N0CALL --in ALL.TXT --out fox.adi
  wsjtx-adif convert --mycall N0CALL --tz Europe/Helsinki --power 100 < ALL.TXT > fox.adi`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertMyCall, "mycall", "", "My callsign (required unless set in the config file)")
	convertCmd.Flags().StringVar(&convertTZ, "tz", "", "Time zone of the log timestamps, e.g. Europe/Helsinki (default UTC)")
	convertCmd.Flags().StringVar(&convertIn, "in", "", "Input WSJT-X log file, .gz and .zst are decompressed (default stdin)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Output ADIF file, .gz and .zst are compressed (default stdout)")
	convertCmd.Flags().IntVar(&convertPower, "power", 0, "My transmitter power in watts, for log rows")
	convertCmd.Flags().StringVar(&convertConfig, "config", "", "Config file (default ~/.wsjtx-adif/config.yaml)")
	convertCmd.Flags().StringVar(&convertMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	convertCmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "Log every contact to stderr")
}

// settings is the merged result of config file and flags.
type settings struct {
	myCall   string
	location *time.Location
	power    *int
	logLevel log.Level
}

func loadConfig() (config.Config, error) {
	path := convertConfig
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return config.Config{Timezone: config.DefaultTimezone, LogLevel: config.DefaultLogLevel}, nil
		}
		path = p
	}
	return config.Load(path)
}

// resolveSettings merges cfg with the command line; flags win.
func resolveSettings(cmd *cobra.Command, cfg config.Config) (settings, error) {
	var s settings

	s.myCall = cfg.MyCall
	if cmd.Flags().Changed("mycall") {
		s.myCall = strings.TrimSpace(convertMyCall)
	}
	if s.myCall == "" {
		return s, errors.New("--mycall is required")
	}

	tz := cfg.Timezone
	if cmd.Flags().Changed("tz") {
		tz = convertTZ
	}
	loc, err := config.LoadLocation(tz)
	if err != nil {
		return s, err
	}
	s.location = loc

	power := cfg.Power
	if cmd.Flags().Changed("power") {
		if convertPower <= 0 {
			return s, fmt.Errorf("--power must be a positive number of watts, got %d", convertPower)
		}
		power = convertPower
	}
	if power > 0 {
		s.power = &power
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return s, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	if convertVerbose {
		level = log.DebugLevel
	}
	s.logLevel = level
	return s, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd, cfg)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  s.logLevel,
		Prefix: "wsjtx-adif",
	})

	// Open the input first so a bad path does not truncate the output.
	in, err := stream.OpenInput(convertIn)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := stream.CreateOutput(convertOut)
	if err != nil {
		return err
	}

	opts := convert.Options{
		MyCall:   s.myCall,
		Location: s.location,
		TxPower:  s.power,
	}
	st, runErr := convert.Run(context.Background(), in, out, opts, logger)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("closing output: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	if convertMetricsFile != "" {
		run := metrics.NewRun()
		run.Observe(st.Lines, st.Records, st.Skipped, st.Unconfirmed, time.Now())
		if err := run.WriteFile(convertMetricsFile); err != nil {
			logger.Warn("metrics not written", "err", err)
		}
	}
	return nil
}
