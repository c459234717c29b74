package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/heis/internal/calculation"
	"github.com/rgehrsitz/heis/internal/config"
	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/output"
	"github.com/rgehrsitz/heis/internal/transform"
)

const (
	defaultIntervention = "klotho"
	defaultSegment      = "total_us"
)

var formatExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"detailed-csv": "csv",
	"json":         "json",
	"markdown":     "md",
	"html":         "html",
}

// addInputFlags registers the flags that select and adjust the inputs.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("intervention", "i", defaultIntervention, "Intervention key")
	cmd.Flags().StringP("segment", "s", defaultSegment, "Population segment key")
	cmd.Flags().StringArray("set", nil, "Override an effect (name=value); repeatable")
}

// addReportFlags registers output selection flags.
func addReportFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringP("format", "f", defaultFormat,
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
}

// session holds everything a command needs after flag parsing.
type session struct {
	config *domain.Configuration
	source string
	inputs domain.CalculationInputs
	engine *calculation.CalculationEngine
}

func newSession(cmd *cobra.Command, args []string) (*session, error) {
	cfg, source, err := loadConfiguration(args)
	if err != nil {
		return nil, err
	}

	interventionKey, _ := cmd.Flags().GetString("intervention")
	segmentKey, _ := cmd.Flags().GetString("segment")
	assignments, _ := cmd.Flags().GetStringArray("set")

	in, err := config.BuildInputs(cfg, interventionKey, segmentKey, assignments)
	if err != nil {
		return nil, err
	}

	return &session{
		config: cfg,
		source: source,
		inputs: in,
		engine: newEngine(cmd, cfg),
	}, nil
}

func newEngine(cmd *cobra.Command, cfg *domain.Configuration) *calculation.CalculationEngine {
	debugMode, _ := cmd.Flags().GetBool("debug")
	engine := calculation.NewCalculationEngineWithConfig(cfg)
	engine.SetLogger(newZerologLogger(cmd.ErrOrStderr(), debugMode))
	engine.Debug = debugMode
	return engine
}

// emitReport renders the report in the selected format to stdout or a file.
func emitReport(cmd *cobra.Command, report *output.Report) error {
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}

	if save {
		filename, err := output.WriteFormatted(f, report, formatExtensions[f.Name()])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// writeCatalog lists interventions with their modeled effects and segments.
func writeCatalog(w io.Writer, cfg *domain.Configuration) error {
	fmt.Fprintln(w, "INTERVENTIONS")
	for _, key := range cfg.InterventionKeys() {
		intervention, err := cfg.Intervention(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-14s %s\n", key, intervention.Name)
		if intervention.Description != "" {
			fmt.Fprintf(w, "  %-14s %s\n", "", intervention.Description)
		}
		var effects []string
		for _, name := range transform.EffectNames() {
			v, err := transform.EffectValue(intervention.Parameters, name)
			if err != nil || v.IsZero() {
				continue
			}
			effects = append(effects, fmt.Sprintf("%s=%s", name, v))
		}
		if len(effects) > 0 {
			fmt.Fprintf(w, "  %-14s %s\n", "", strings.Join(effects, " "))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "POPULATION SEGMENTS")
	for _, key := range cfg.SegmentKeys() {
		seg, err := cfg.Segment(key)
		if err != nil {
			return err
		}
		medicare := ""
		if seg.Segment.MedicareEligible {
			medicare = " (Medicare eligible)"
		}
		fmt.Fprintf(w, "  %-14s target %d of %d%s\n", key, seg.TargetPopulation, seg.TotalPopulation, medicare)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "EFFECTS")
	names := transform.EffectNames()
	sort.Strings(names)
	for _, name := range names {
		e, _ := transform.LookupEffect(name)
		lo, hi, _ := domain.EffectRange(name)
		fmt.Fprintf(w, "  %-28s %-10s [%s, %s] %s\n", name, e.Pathway, lo, hi, e.Unit)
	}
	return nil
}
