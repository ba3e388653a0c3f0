package main

import (
	"flag"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/edp1096/touchstone/pkg/convert"
	"github.com/edp1096/touchstone/pkg/frequency"
	"github.com/edp1096/touchstone/pkg/touchstone"
	"github.com/edp1096/touchstone/pkg/util"
)

var snpSuffix = regexp.MustCompile(`(?i)\.s(\d+)p$`)

// PortsFromFilename derives the port count from the .sNp filename
// convention. The codec itself never looks at filenames.
func PortsFromFilename(name string) (int, error) {
	m := snpSuffix.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("no .sNp suffix in %q", name)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid port count in %q", name)
	}
	return n, nil
}

func printSummary(nw *touchstone.Network) {
	for _, comment := range nw.Comments {
		fmt.Printf("! %s\n", comment)
	}

	fmt.Println("Frequency      Parameters (Magnitude/Phase)")
	fmt.Println("-----------------------------------------------------------------------------")
	freqs := nw.Freq.ValuesIn(frequency.Hz)
	for k, f := range freqs {
		fmt.Printf("%-13s", util.FormatFrequency(f))
		for i := range nw.Ports {
			for j := range nw.Ports {
				v := nw.Matrix[i][j][k]
				name := fmt.Sprintf("%s%d%d", nw.Parameter, i+1, j+1)
				fmt.Printf("%s  ", util.FormatMagnitudePhase(name, cmplx.Abs(v), cmplx.Phase(v)*180/math.Pi))
			}
		}
		fmt.Println()
	}
}

func main() {
	formatFlag := flag.String("format", "", "rewrite with numeric format (RI, MA, DB)")
	unitFlag := flag.String("unit", "", "rewrite with frequency unit (Hz, kHz, MHz, GHz)")
	paramFlag := flag.String("param", "", "convert parameter set (S, Y, Z)")
	outFlag := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 1 {
		logger.Fatal().Msg("usage: snptool [-format RI|MA|DB] [-unit Hz|kHz|MHz|GHz] [-param S|Y|Z] [-o file] <file.sNp>")
	}
	path := flag.Arg(0)

	ports, err := PortsFromFilename(path)
	if err != nil {
		logger.Fatal().Err(err).Msg("deriving port count")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal().Err(err).Str("file", path).Msg("reading file")
	}

	nw := touchstone.New()
	if err := nw.Read(string(content), ports); err != nil {
		logger.Fatal().Err(err).Str("file", path).Msg("parsing touchstone file")
	}
	logger.Info().
		Int("ports", nw.Ports).
		Int("points", nw.Freq.Len()).
		Str("parameter", string(nw.Parameter)).
		Str("format", string(nw.Format)).
		Str("unit", nw.Freq.Unit().String()).
		Floats64("impedance", nw.Impedance).
		Msg("file loaded")

	rewrite := *formatFlag != "" || *unitFlag != "" || *paramFlag != "" || *outFlag != ""

	if *paramFlag != "" {
		target, err := touchstone.ParseParameter(*paramFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("parsing -param")
		}
		if err := convert.Convert(nw, target); err != nil {
			logger.Fatal().Err(err).Msg("converting parameter set")
		}
	}
	if *formatFlag != "" {
		format, err := touchstone.ParseFormat(*formatFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("parsing -format")
		}
		nw.Format = format
	}
	if *unitFlag != "" {
		unit, err := frequency.ParseUnit(*unitFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("parsing -unit")
		}
		if err := nw.Freq.SetUnit(unit); err != nil {
			logger.Fatal().Err(err).Msg("changing frequency unit")
		}
	}

	if !rewrite {
		printSummary(nw)
		return
	}

	text, err := nw.Write()
	if err != nil {
		logger.Fatal().Err(err).Msg("serializing network")
	}

	if *outFlag == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(*outFlag, []byte(text), 0o644); err != nil {
		logger.Fatal().Err(err).Str("file", *outFlag).Msg("writing file")
	}
	logger.Info().Str("file", *outFlag).Msg("file written")
}
