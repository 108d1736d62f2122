// Command fieldview-probe renders a single field map frame without a window
// and reports what was painted and which regions sit under a point.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chosenoffset.com/fieldview/internal/core/geom"
	"chosenoffset.com/fieldview/internal/field"
	"chosenoffset.com/fieldview/internal/field/layout"
	"chosenoffset.com/fieldview/internal/fieldmap"
	"chosenoffset.com/fieldview/internal/render/headless"
)

type probeParams struct {
	width, height int
	pointerX      float64
	pointerY      float64
	alliance      string
	stylized      bool
	debug         bool
	fieldFile     string
}

func main() {
	var p probeParams

	flag.IntVar(&p.width, "width", 1280, "surface width in pixels")
	flag.IntVar(&p.height, "height", 720, "surface height in pixels")
	flag.Float64Var(&p.pointerX, "x", -1, "pointer x in pixels, negative for no pointer")
	flag.Float64Var(&p.pointerY, "y", -1, "pointer y in pixels, negative for no pointer")
	flag.StringVar(&p.alliance, "alliance", "blue", "alliance to draw for (red, blue or empty)")
	flag.BoolVar(&p.stylized, "stylized", true, "draw the stylized variant")
	flag.BoolVar(&p.debug, "debug", false, "draw region boundaries")
	flag.StringVar(&p.fieldFile, "field", "", "field descriptor file, empty for the built-in field")
	flag.Parse()

	if err := report(p, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func report(p probeParams, w io.Writer) error {
	if p.width <= 0 || p.height <= 0 {
		return fmt.Errorf("surface must have positive size, got %dx%d", p.width, p.height)
	}

	alliance := field.AllianceUnknown
	if p.alliance != "" {
		a, ok := field.ParseAlliance(p.alliance)
		if !ok {
			return fmt.Errorf("unsupported alliance %q (supported: red, blue)", p.alliance)
		}
		alliance = a
	}

	f := layout.Reefscape()
	if p.fieldFile != "" {
		loaded, err := layout.Load(p.fieldFile)
		if err != nil {
			return err
		}
		f = loaded
	}

	var clicked []string
	levels, branches := fieldmap.DefaultRegions(f,
		func(level int) { clicked = append(clicked, fmt.Sprintf("level %d", level)) },
		func(id string) { clicked = append(clicked, "branch "+id) },
	)

	opts := fieldmap.DefaultOptions()
	opts.Stylized = p.stylized
	opts.DebugBoundaries = p.debug
	m := fieldmap.New(f, opts, levels, branches, nil)

	snap := field.Snapshot{Alliance: alliance}
	var in fieldmap.Input
	if p.pointerX >= 0 && p.pointerY >= 0 {
		pt := geom.Pt(p.pointerX, p.pointerY)
		in.Pointer = &pt
	}

	rec := headless.NewRecorder(p.width, p.height)
	if err := m.Frame(rec, snap, in, 0); err != nil {
		return err
	}

	fmt.Fprintf(w, "=== Field Map Probe ===\n")
	fmt.Fprintf(w, "surface:  %dx%d\n", p.width, p.height)
	fmt.Fprintf(w, "alliance: %s\n", allianceName(alliance))
	fmt.Fprintf(w, "stylized: %t\n", p.stylized)
	fmt.Fprintf(w, "\n--- Paint ops ---\n")
	for _, kind := range []headless.OpKind{headless.OpFill, headless.OpStroke, headless.OpStrokeText, headless.OpFillText} {
		fmt.Fprintf(w, "%-10s %d\n", kind, len(rec.OpsOfKind(kind)))
	}
	fmt.Fprintf(w, "labels:    %s\n", strings.Join(rec.Texts(), " "))
	if rec.SawNaN() {
		fmt.Fprintf(w, "WARNING: non-finite coordinates were painted\n")
	}

	if in.Pointer == nil {
		return nil
	}

	if _, err := m.PointerDown(p.width, p.height, snap, *in.Pointer); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n--- Pointer (%.0f, %.0f) ---\n", p.pointerX, p.pointerY)
	if len(clicked) == 0 {
		fmt.Fprintf(w, "no region\n")
		return nil
	}
	for _, c := range clicked {
		fmt.Fprintf(w, "%s\n", c)
	}
	return nil
}

func allianceName(a field.Alliance) string {
	if !a.Known() {
		return "unknown"
	}
	return string(a)
}
