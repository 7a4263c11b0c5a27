// Command profinfo prints the geometric properties of a dose profile.
//
// Usage:
//
//	profinfo [flags] [file ...]
//
// Each file holds one profile in the tabular format ("key: value"
// metadata lines, then "position value" rows). Without files it analyses a
// synthetic pulse built from the -center, -width, -start, -end and -inc
// flags.
//
// Examples:
//
//	profinfo chamber.txt film.txt
//	profinfo -regions chamber.txt
//	profinfo -width 10 -inc 0.1
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-profile/internal/logging"
	"github.com/cwbudde/algo-profile/internal/tabular"
	"github.com/cwbudde/algo-profile/profile"
	"github.com/cwbudde/algo-profile/stats/summary"
)

type namedProfile struct {
	name string
	p    *profile.Profile
}

func main() {
	center := flag.Float64("center", 0, "synthetic pulse center")
	width := flag.Float64("width", 10, "synthetic pulse width")
	start := flag.Float64("start", -20, "synthetic pulse first position")
	end := flag.Float64("end", 20, "synthetic pulse last position")
	inc := flag.Float64("inc", 0.5, "synthetic pulse increment")
	regions := flag.Bool("regions", false, "also print the region bounds")
	level := flag.String("log", "warn", "log level: debug, info, warn, error")
	jsonLog := flag.Bool("json", false, "log as JSON instead of console text")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: profinfo [flags] [file ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints edges, flatness and symmetry of dose profiles.\n")
		fmt.Fprintf(os.Stderr, "Without files, analyses a synthetic unit pulse.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  profinfo chamber.txt film.txt\n")
		fmt.Fprintf(os.Stderr, "  profinfo -regions chamber.txt\n")
		fmt.Fprintf(os.Stderr, "  profinfo -width 10 -inc 0.1\n")
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

	var profiles []namedProfile
	if flag.NArg() == 0 {
		p, err := profile.Pulse(profile.PulseConfig{
			Center: *center, Width: *width, Start: *start, End: *end, Increment: *inc,
		})
		if err != nil {
			log.Error().Err(err).Msg("build synthetic pulse")
			os.Exit(2)
		}
		log.Debug().Int("samples", p.Len()).Msg("synthetic pulse")
		profiles = append(profiles, namedProfile{"pulse", p})
	}
	profiles = append(profiles, loadProfiles(log, flag.Args())...)
	if len(profiles) == 0 {
		log.Error().Msg("no readable profiles")
		os.Exit(1)
	}

	if err := printSummary(os.Stdout, profiles); err != nil {
		log.Error().Err(err).Msg("print summary")
		os.Exit(1)
	}
	if *regions {
		if err := printRegions(os.Stdout, profiles); err != nil {
			log.Error().Err(err).Msg("print regions")
			os.Exit(1)
		}
	}
}

// loadProfiles reads every path, logging and skipping unreadable files.
func loadProfiles(log zerolog.Logger, paths []string) []namedProfile {
	var out []namedProfile
	for _, path := range paths {
		p, err := readFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping profile")
			continue
		}
		log.Debug().Str("file", path).Int("samples", p.Len()).Msg("read profile")
		out = append(out, namedProfile{path, p})
	}
	return out
}

func readFile(path string) (*profile.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tabular.Read(f)
}

func printSummary(w io.Writer, profiles []namedProfile) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Profile\tSamples\tIncrement\tLeft\tRight\tCenter\tWidth\tFlatness [%%]\tSymmetry [%%]\tUmbra mean\tUmbra CV [%%]\n")
	fmt.Fprintf(tw, "-------\t-------\t---------\t----\t-----\t------\t-----\t------------\t------------\t----------\t------------\n")
	for _, np := range profiles {
		p := np.p
		left, right, err := p.Edges()
		if err != nil {
			fmt.Fprintf(tw, "%s\t%d\t%.4g\t%s\n", np.name, p.Len(), p.Increment(), err)
			continue
		}
		flat := percent(p.Flatness())
		sym := percent(p.Symmetry())
		mean, cv := "n/a", "n/a"
		if umbra, err := p.Umbra(); err == nil {
			s := summary.Profile(umbra)
			mean = fmt.Sprintf("%.4g", s.Mean)
			cv = fmt.Sprintf("%.2f", 100*s.CV)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.4g\t%.3f\t%.3f\t%.3f\t%.3f\t%s\t%s\t%s\t%s\n",
			np.name, p.Len(), p.Increment(),
			left, right, (left+right)/2, right-left, flat, sym, mean, cv)
	}
	return tw.Flush()
}

func percent(v float64, err error) string {
	if err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", 100*v)
}

func printRegions(w io.Writer, profiles []namedProfile) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nProfile\tRegion\tFrom\tTo\tSamples\n")
	fmt.Fprintf(tw, "-------\t------\t----\t--\t-------\n")
	for _, np := range profiles {
		part, err := np.p.Partition(profile.DefaultRegionConfig())
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\n", np.name, err)
			continue
		}
		names := []string{
			"left tail", "left shoulder", "left penumbra", "umbra",
			"right penumbra", "right shoulder", "right tail",
		}
		for i, piece := range part.Profiles() {
			lo, hi := piece.Domain()
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%d\n", np.name, names[i], lo, hi, piece.Len())
		}
	}
	return tw.Flush()
}
