// Command crosscal derives a calibration curve that maps the values of a
// measured profile (film, EPID, diode array) onto a reference profile
// (ion chamber), and optionally applies it.
//
// Usage:
//
//	crosscal -reference chamber.txt -measured film.txt [flags]
//
// Examples:
//
//	crosscal -reference chamber.txt -measured film.txt
//	crosscal -reference chamber.txt -measured film.txt -align phase -budget 10s
//	crosscal -reference chamber.txt -measured film.txt -apply film2.txt -out dose2.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-profile/internal/logging"
	"github.com/cwbudde/algo-profile/internal/tabular"
	"github.com/cwbudde/algo-profile/measure/crosscal"
	"github.com/cwbudde/algo-profile/profile"
)

func main() {
	refPath := flag.String("reference", "", "reference profile file (required)")
	measPath := flag.String("measured", "", "measured profile file (required)")
	budget := flag.Duration("budget", crosscal.DefaultBudget, "time budget for the piecewise search")
	segments := flag.Int("segments", crosscal.DefaultMaxSegments, "largest number of linear segments to try")
	align := flag.String("align", profile.AlignEdges.String(), "alignment: edges, correlation or phase")
	applyPath := flag.String("apply", "", "profile file to convert with the fitted curve")
	outPath := flag.String("out", "", "output file for -apply (default stdout)")
	level := flag.String("log", "info", "log level: debug, info, warn, error")
	jsonLog := flag.Bool("json", false, "log as JSON instead of console text")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: crosscal -reference FILE -measured FILE [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Fits a monotonic curve mapping measured values to reference values.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	var log zerolog.Logger
	if *jsonLog {
		log = logging.New(os.Stderr, lvl)
	} else {
		log = logging.NewConsole(os.Stderr, lvl)
	}

	if *refPath == "" || *measPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	mode, err := profile.ParseAlignMode(*align)
	if err != nil {
		log.Error().Err(err).Msg("invalid -align")
		os.Exit(2)
	}

	ref, err := readFile(*refPath)
	if err != nil {
		log.Error().Err(err).Str("file", *refPath).Msg("read reference")
		os.Exit(1)
	}
	meas, err := readFile(*measPath)
	if err != nil {
		log.Error().Err(err).Str("file", *measPath).Msg("read measured")
		os.Exit(1)
	}

	res, err := crosscal.Calibrate(ref, meas,
		crosscal.WithBudget(*budget),
		crosscal.WithMaxSegments(*segments),
		crosscal.WithAlignMode(mode),
		crosscal.WithLogger(log),
	)
	if err != nil {
		log.Error().Err(err).Msg("calibration failed")
		os.Exit(1)
	}

	fmt.Printf("alignment:  %s (scale %.4g, offset %.4g)\n", res.Alignment.Mode, res.Alignment.Scale, res.Alignment.Offset)
	fmt.Printf("pairs:      %d\n", len(res.Pairs))
	fmt.Printf("affine:     %s\n", res.Affine)
	fmt.Printf("segments:   %d (stopped: %s, %s)\n", res.Segments, res.Stop, res.Elapsed.Round(time.Millisecond))
	fmt.Printf("curve:      %v\n", res.Curve)
	fmt.Printf("residuals:  rms %.4g, max |r| %.4g\n", res.Residuals.RMS, max(res.Residuals.Max, -res.Residuals.Min))
	if res.TimedOut {
		fmt.Printf("note:       search hit the %s budget; curve is the best found before that\n", *budget)
	}

	if *applyPath == "" {
		return
	}
	raw, err := readFile(*applyPath)
	if err != nil {
		log.Error().Err(err).Str("file", *applyPath).Msg("read -apply input")
		os.Exit(1)
	}
	dose, err := crosscal.Apply(res.Curve, raw)
	if err != nil {
		log.Error().Err(err).Msg("apply calibration")
		os.Exit(1)
	}
	if err := writeProfile(*outPath, dose); err != nil {
		log.Error().Err(err).Msg("write output")
		os.Exit(1)
	}
}

func writeProfile(path string, p *profile.Profile) error {
	if path == "" {
		return tabular.Write(os.Stdout, p)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tabular.Write(f, p); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readFile(path string) (*profile.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tabular.Read(f)
}
