package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/gobabygo/internal/checklist"
	"github.com/dshills/gobabygo/internal/logger"
	"github.com/dshills/gobabygo/internal/planner"
	"github.com/dshills/gobabygo/internal/refdata"
	"github.com/dshills/gobabygo/internal/render"
	"github.com/dshills/gobabygo/internal/report"
	"github.com/dshills/gobabygo/internal/schema"
	"github.com/dshills/gobabygo/internal/scoring"
	"github.com/dshills/gobabygo/internal/trip"
)

type scoreFlags struct {
	strategy          string
	format            string
	out               string
	checklistOut      string
	dataPath          string
	failBelow         int
	severityThreshold string
	logLevel          string
	verbose           bool
	noColor           bool

	stdout io.Writer
	stderr io.Writer
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score <trip-file>",
		Short: "Score a trip and produce a report with a packing list and hotel links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.stdout = cmd.OutOrStdout()
			f.stderr = cmd.ErrOrStderr()
			return runScore(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.strategy, "strategy", scoring.NameComfort, "Scoring strategy: comfort or stress")
	flags.StringVar(&f.format, "format", "json", "Output format: json, md, or pdf")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout; required for pdf)")
	flags.StringVar(&f.checklistOut, "checklist-out", "", "Write a printable packing checklist")
	flags.StringVar(&f.dataPath, "data", "", "Reference data override file (YAML)")
	flags.IntVar(&f.failBelow, "fail-below", 0, "Exit 2 if the comfort score is below this value")
	flags.StringVar(&f.severityThreshold, "severity-threshold", "info", "Minimum recommendation severity: info, warn, or critical")
	flags.StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runScore(tripPath string, f *scoreFlags) error {
	if f.stdout == nil {
		f.stdout = os.Stdout
	}
	if f.stderr == nil {
		f.stderr = os.Stderr
	}
	if f.noColor {
		color.NoColor = true
	}

	switch f.format {
	case "json", "md", "pdf":
	default:
		return exitError(3, "unknown format: %s", f.format)
	}
	if f.format == "pdf" && f.out == "" {
		return exitError(3, "pdf output requires --out")
	}

	log, err := logger.NewCLI(f.logLevel, f.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// 1. Load trip
	log.Debug("loading trip", zap.String("path", tripPath))
	tf, err := trip.Load(tripPath)
	if err != nil {
		return exitError(3, "failed to load trip: %v", err)
	}

	// 2. Load reference data
	data, err := loadData(f.dataPath)
	if err != nil {
		return exitError(3, "failed to load reference data: %v", err)
	}
	log.Debug("reference data loaded", zap.Int("locations", len(data.Locations)), zap.String("hash", data.Hash))

	// 3. Analyze
	svc := planner.New(data, log)
	rep, err := svc.Analyze(context.Background(), &tf.Request, planner.Options{
		Strategy: f.strategy,
		TripFile: filepath.Base(tripPath),
		TripHash: tf.Hash,
	})
	if err != nil {
		var verrs schema.Errors
		if errors.As(err, &verrs) {
			fmt.Fprintln(f.stderr, "Trip validation errors:")
			for _, e := range verrs {
				fmt.Fprintf(f.stderr, "  %s\n", e)
			}
			return exitError(3, "invalid trip: %s", filepath.Base(tripPath))
		}
		return err
	}

	rep.Recommendations = filterBySeverity(rep.Recommendations, f.severityThreshold)

	// 4. Output
	var output []byte
	switch f.format {
	case "json":
		b, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = append(b, '\n')
	case "md":
		output = []byte(render.Markdown(rep))
	case "pdf":
		output, err = render.PDF(rep)
		if err != nil {
			return err
		}
	}

	if f.out != "" {
		log.Debug("writing output", zap.String("path", f.out))
		if err := os.WriteFile(f.out, output, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printBanner(f.stderr, rep)
	} else if _, err := f.stdout.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// 5. Checklist
	if f.checklistOut != "" {
		log.Debug("writing checklist", zap.String("path", f.checklistOut))
		title := "Packing checklist: " + rep.Trip.Destination.Display
		if err := checklist.WriteChecklistFile(title, rep.Packing.Items, rep.BookingChecklist, f.checklistOut); err != nil {
			return fmt.Errorf("failed to write checklist: %w", err)
		}
	}

	// 6. Exit code based on --fail-below
	if f.failBelow > 0 {
		if comfort := comfortScore(rep); comfort < f.failBelow {
			return exitError(2, "comfort score %d is below threshold %d", comfort, f.failBelow)
		}
	}
	return nil
}

func loadData(path string) (*refdata.Data, error) {
	if path == "" {
		return refdata.LoadBuiltin()
	}
	return refdata.LoadFile(path)
}

func comfortScore(rep *report.Report) int {
	return scoring.Result{Strategy: rep.Input.Strategy, Score: rep.Summary.Score}.ComfortEquivalent()
}

// printBanner writes a one-line colored score summary.
func printBanner(w io.Writer, rep *report.Report) {
	c := color.New(color.FgRed, color.Bold)
	switch comfort := comfortScore(rep); {
	case comfort >= 7:
		c = color.New(color.FgGreen, color.Bold)
	case comfort >= 4:
		c = color.New(color.FgYellow, color.Bold)
	}
	c.Fprintf(w, "%s: %d/%d %s", rep.Trip.Destination.Display, rep.Summary.Score, rep.Summary.MaxScore, rep.Summary.Level)
	fmt.Fprintf(w, " (%d items to pack, %d recommendations)\n", len(rep.Packing.Items), len(rep.Recommendations))
}

func filterBySeverity(recs []report.Recommendation, threshold string) []report.Recommendation {
	minOrder := severityThresholdOrder(threshold)
	result := []report.Recommendation{}
	for _, r := range recs {
		if !r.Severity.Valid() || r.Severity.Order() <= minOrder {
			result = append(result, r)
		}
	}
	return result
}

func severityThresholdOrder(threshold string) int {
	switch strings.ToLower(threshold) {
	case "critical":
		return 0
	case "warn":
		return 1
	default:
		return 2 // info shows everything
	}
}
