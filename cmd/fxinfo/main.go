// Command fxinfo prints the static layout of a correlator setup: the
// channeliser window properties and the canonical baseline enumeration.
//
// Usage:
//
//	fxinfo [flags]
//
// Examples:
//
//	fxinfo -ants 4 -channels 256
//	fxinfo -window blackman -channels 1024
//	fxinfo -baselines-only -ants 8
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-fx/fx/window"
	"github.com/cwbudde/algo-fx/fx/xengine"
)

func main() {
	ants := flag.Int("ants", 4, "antenna count")
	channels := flag.Int("channels", 256, "channel count (FFT size)")
	windowName := flag.String("window", "hanning", "window type (rectangular, hanning, hamming, blackman)")
	baselinesOnly := flag.Bool("baselines-only", false, "print only the baseline table")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fxinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints window properties and the canonical baseline layout.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*baselinesOnly {
		if err := printWindow(*windowName, *channels); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
	}

	printBaselines(*ants)
}

func printWindow(name string, size int) error {
	typ, err := window.Parse(name)
	if err != nil {
		return err
	}

	coeffs := window.Generate(typ, size)

	enbw, err := window.EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return err
	}

	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\n")
	fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\n", typ, size, gain, enbw)

	return tw.Flush()
}

func printBaselines(ants int) {
	table := xengine.BaselineTable(ants)

	fmt.Printf("%d antennas, %d baselines\n\n", ants, len(table))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tAnt1\tAnt2\tAuto\n")
	fmt.Fprintf(tw, "--\t----\t----\t----\n")

	for _, info := range table {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%v\n", info.ID, info.Ant1, info.Ant2, info.Auto)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
