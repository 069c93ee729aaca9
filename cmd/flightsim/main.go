package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/flightsim/internal/analysis"
	"github.com/san-kum/flightsim/internal/automation"
	"github.com/san-kum/flightsim/internal/config"
	"github.com/san-kum/flightsim/internal/experiment"
	"github.com/san-kum/flightsim/internal/export"
	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
	"github.com/san-kum/flightsim/internal/logging"
	"github.com/san-kum/flightsim/internal/optim"
	"github.com/san-kum/flightsim/internal/pilot"
	"github.com/san-kum/flightsim/internal/storage"
	"github.com/san-kum/flightsim/internal/viz"
)

const defaultPreset = "takeoff"

var (
	dataDir    string
	configFile string
	saveConfig string
	dt         float64
	maxDt      float64
	duration   float64
	fixedStep  float64
	jitter     float64
	seed       int64
	pilotName  string
	manual     bool
	runs       int
	plotVar    string
	rate       float64
	xAxis      string
	yAxis      string
	crossAxis  string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepAxis  string
	tuneRanges []string
	tuneMetric string
	maximize   bool
	trials     int
	spreadAlt  float64
	spreadSpd  float64
	spreadHdg  float64
	svgView    string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "flightsim",
		Short:        "real-time flight dynamics sandbox",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flightsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "fly a scenario headless and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides the preset")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved scenario to this file")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame time")
	runCmd.Flags().Float64Var(&maxDt, "max-dt", flight.DefaultMaxDt, "largest tick allowed")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	runCmd.Flags().Float64Var(&fixedStep, "fixed-step", 0, "fixed physics tick, 0 steps once per frame")
	runCmd.Flags().Float64Var(&jitter, "jitter", 0, "random frame time jitter fraction")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "jitter seed")
	runCmd.Flags().StringVar(&pilotName, "pilot", config.DefaultPilot, fmt.Sprintf("pilot %v", pilot.Names()))

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "fly a scenario in the terminal cockpit",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	liveCmd.Flags().BoolVar(&manual, "manual", false, "fly with the keyboard")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a state column over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotVar, "var", "y", fmt.Sprintf("column %v", flight.VectorLabels))

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "phugoid spectrum, phase portrait and poincare section",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&rate, "rate", 4, "resample rate in Hz")
	analyzeCmd.Flags().StringVar(&xAxis, "x-axis", "speed", fmt.Sprintf("phase x axis %v", analysis.AxisNames()))
	analyzeCmd.Flags().StringVar(&yAxis, "y-axis", "y", "phase y axis")
	analyzeCmd.Flags().StringVar(&crossAxis, "cross", "vertical_speed", "poincare crossing axis")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export metadata and trajectory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "time a scenario across frame rates and an ensemble",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&runs, "runs", 8, "ensemble size")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep an aircraft parameter and plot the settled values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "max_throttle_force", fmt.Sprintf("parameter %v", analysis.TunableParams()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 2000, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 8000, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of values")
	sweepCmd.Flags().StringVar(&sweepAxis, "axis", "y", "measured axis")

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity [preset]",
		Short: "estimate how fast nearby flights diverge",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sensitivityScenario,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search autopilot gains or aircraft parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneScenario,
	}
	tuneCmd.Flags().StringArrayVar(&tuneRanges, "param", []string{"kp=0.5:4:4", "kd=0:1:3"}, "name=min:max:n, repeatable")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "stability", "metric to optimize")
	tuneCmd.Flags().BoolVar(&maximize, "maximize", true, "prefer larger metric values")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run and store every step of a batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "fly a scenario from randomly perturbed starts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 1, "perturbation seed")
	monteCarloCmd.Flags().Float64Var(&spreadAlt, "altitude", 20, "start altitude half-width (m)")
	monteCarloCmd.Flags().Float64Var(&spreadSpd, "speed", 5, "start speed half-width (m/s)")
	monteCarloCmd.Flags().Float64Var(&spreadHdg, "heading", 0.2, "start heading half-width (rad)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run's ground track or altitude profile",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgView, "view", "track", "track or profile")
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd,
		exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd, sweepCmd, sensitivityCmd,
		tuneCmd, batchCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return logging.NewWithLevel(os.Stderr, logging.LevelFromEnv())
}

// loadScenario resolves the preset named in args, then a config file,
// then any flags the user set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (string, *config.Config, error) {
	name := defaultPreset
	if len(args) > 0 {
		name = args[0]
	}

	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) == 0 {
			name = configFile
		}
	} else {
		cfg, err = config.GetPreset(name)
		if err != nil {
			return "", nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Lookup("dt") != nil {
		if flags.Changed("dt") {
			cfg.Run.Dt = dt
		}
		if flags.Changed("max-dt") {
			cfg.Run.MaxDt = maxDt
		}
		if flags.Changed("time") {
			cfg.Run.Duration = duration
		}
		if flags.Changed("fixed-step") {
			cfg.Run.FixedStep = fixedStep
		}
		if flags.Changed("jitter") {
			cfg.Run.Jitter = jitter
		}
		if flags.Changed("seed") {
			cfg.Run.Seed = seed
		}
		if flags.Changed("pilot") {
			cfg.Scenario.Pilot = pilotName
		}
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}
	return name, cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScenario(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
	}

	log := newLogger()
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(name, cfg)
	exp.SetLogger(log)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Scenario:  name,
		Pilot:     cfg.Scenario.Pilot,
		Seed:      cfg.Run.Seed,
		Dt:        cfg.Run.Dt,
		MaxDt:     cfg.Run.MaxDt,
		FixedStep: cfg.Run.FixedStep,
		Duration:  cfg.Run.Duration,
		Elapsed:   elapsed,
		Params:    cfg.Physics,
	}
	id, err := st.Save(meta, exp.Field(), result)
	if err != nil {
		return err
	}
	logging.FromContext(logging.WithRunID(ctx, id), log).Info("run stored",
		"dir", dataDir, "steps", result.StepsTaken, "elapsed", elapsed)

	final := result.Final()
	fmt.Printf("run: %s\n", id)
	fmt.Printf("scenario: %s  pilot: %s  obstacles: %d\n", name, cfg.Scenario.Pilot, len(exp.Field()))
	fmt.Printf("ticks: %d  resets: %d  hits: %d  elapsed: %v\n", result.StepsTaken, result.Resets, result.Hits, elapsed)
	fmt.Printf("final: altitude %.1f m  speed %.1f m/s  throttle %.2f\n\n",
		final.Altitude(cfg.Physics), final.Speed(), final.Throttle)

	names := make([]string, 0, len(result.Metrics))
	for k := range result.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", k, result.Metrics[k])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if manual {
		cfg.Scenario.Pilot = "manual"
	}
	return viz.RunCockpit(name, cfg)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tPILOT\tTIME\tDURATION\tDT\tTICKS\tHITS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1fs\t%.4fs\t%d\t%d\n",
			run.ID[:8],
			run.Scenario,
			run.Pilot,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Hits,
		)
	}
	return w.Flush()
}

func resolveRun(st *storage.Store, prefix string) (*storage.RunMetadata, error) {
	id, err := st.Resolve(prefix)
	if err != nil {
		return nil, err
	}
	return st.Load(id)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args[0])
	if err != nil {
		return err
	}
	col := slices.Index(flight.VectorLabels, plotVar)
	if col < 0 {
		return fmt.Errorf("unknown column %q (available: %v)", plotVar, flight.VectorLabels)
	}

	traj, err := st.LoadTrajectory(meta.ID)
	if err != nil {
		return err
	}
	if len(traj.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	data := make([]float64, len(traj.States))
	for i, v := range traj.States {
		data[i] = v[col]
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(data))
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s over %.0fs", plotVar, meta.Duration)),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(meta.ID)
	if err != nil {
		return err
	}
	states, err := traj.FlightStates()
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s (%s)\n\n", meta.ID, meta.Scenario)

	alts := make([]float64, len(states))
	for i, s := range states {
		alts[i] = s.Altitude(meta.Params)
	}
	ph, err := analysis.DetectPhugoid(traj.Times, alts, rate)
	if err != nil {
		fmt.Printf("phugoid: %v\n\n", err)
	} else {
		x := analysis.Resample(traj.Times, alts, rate)
		analysis.Detrend(x)
		spectrum := analysis.PowerSpectrum(x, rate)
		if n := len(spectrum.Power) / 4; n > 2 {
			fmt.Println(asciigraph.Plot(spectrum.Power[1:n],
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("altitude power spectrum"),
			))
			fmt.Println()
		}
		fmt.Printf("phugoid: %.4f Hz  period %.1f s  amplitude %.1f m  (%d samples)\n\n",
			ph.Frequency, ph.Period, ph.Amplitude, ph.Samples)
	}

	portrait, err := analysis.GeneratePhasePortrait(states, xAxis, yAxis)
	if err != nil {
		return err
	}
	fmt.Printf("phase portrait: %s vs %s\n", yAxis, xAxis)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))

	section, err := analysis.GeneratePoincareSection(states, traj.Times, crossAxis, 0, xAxis, yAxis)
	if err != nil {
		return err
	}
	fmt.Printf("poincare section: %s rising through 0, %d crossings\n", crossAxis, len(section.Points))
	fmt.Println(analysis.PoincareSectionToASCII(section, 70, 20))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	id, err := st.Resolve(args[0])
	if err != nil {
		return err
	}
	return st.ExportJSON(os.Stdout, id)
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %s (%.0fs simulated)\n\n", name, cfg.Run.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUNS\tDT\tTICKS\tTIME\tTICKS/SEC")

	for _, frameDt := range []float64{1.0 / 30, 1.0 / 60, 1.0 / 120} {
		c := *cfg
		c.Run.Dt = frameDt
		exp := experiment.New(name, &c)
		if err := exp.Setup(); err != nil {
			return err
		}
		start := time.Now()
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "1\t%.4fs\t%d\t%v\t%.0f\n",
			frameDt, result.StepsTaken, elapsed, float64(result.StepsTaken)/elapsed.Seconds())
	}

	exp := experiment.New(name, cfg)
	if err := exp.Setup(); err != nil {
		return err
	}
	start := time.Now()
	results, err := exp.Ensemble(ctx, runs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	ticks := 0
	for _, r := range results {
		ticks += r.StepsTaken
	}
	fmt.Fprintf(w, "%d\t%.4fs\t%d\t%v\t%.0f\n",
		runs, cfg.Run.Dt, ticks, elapsed, float64(ticks)/elapsed.Seconds())
	return w.Flush()
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	exp := experiment.New(name, cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	newPilot := func() pilot.Pilot {
		pl, err := cfg.NewPilot()
		if err != nil {
			return pilot.None{}
		}
		return pl
	}
	points, err := analysis.Sweep(cfg.Physics, exp.Field(), newPilot, cfg.InitialState(), analysis.SweepConfig{
		Param:     sweepParam,
		Min:       sweepMin,
		Max:       sweepMax,
		Steps:     sweepSteps,
		Axis:      sweepAxis,
		Dt:        cfg.Run.Dt,
		Transient: cfg.Run.Duration / 2,
		Record:    cfg.Run.Duration / 2,
		Quantum:   0.5,
	})
	if err != nil {
		return err
	}
	fmt.Printf("sweep: %s over [%g, %g], %s after %.0fs\n", sweepParam, sweepMin, sweepMax, sweepAxis, cfg.Run.Duration/2)
	fmt.Println(analysis.SweepToASCII(points, 70, 20))
	return nil
}

func sensitivityScenario(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	exp := experiment.New(name, cfg)
	if err := exp.Setup(); err != nil {
		return err
	}
	pl, err := cfg.NewPilot()
	if err != nil {
		return err
	}
	growth := analysis.Sensitivity(cfg.Physics, exp.Field(), pl, cfg.InitialState(),
		geom.V(1e-6, 0, 0), cfg.Run.Dt, cfg.Run.Duration)
	fmt.Printf("%s: separation growth %.4f 1/s\n", name, growth)
	return nil
}

func tuneScenario(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(tuneRanges))
	ranges := make([][]float64, 0, len(tuneRanges))
	for _, r := range tuneRanges {
		n, values, err := optim.ParseRange(r)
		if err != nil {
			return err
		}
		names = append(names, n)
		ranges = append(ranges, values)
	}
	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	g.Maximize = maximize

	ctx, cancel := signalContext()
	defer cancel()
	best, val, err := g.Search(ctx, optim.Builder(name, cfg), tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.4f\n", tuneMetric, val)
	for _, n := range names {
		fmt.Printf("  %s = %g\n", n, best[n])
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	results, err := automation.RunBatch(ctx, b, newLogger())
	for _, r := range results {
		c := r.Config
		id, serr := st.Save(storage.RunMetadata{
			Scenario:  r.Name,
			Pilot:     c.Scenario.Pilot,
			Seed:      c.Run.Seed,
			Dt:        c.Run.Dt,
			MaxDt:     c.Run.MaxDt,
			FixedStep: c.Run.FixedStep,
			Duration:  c.Run.Duration,
			Params:    c.Physics,
		}, r.Field, r.Result)
		if serr != nil {
			return serr
		}
		fmt.Printf("%s\t%s\n", id, r.Name)
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, name, cfg, automation.MonteCarloConfig{
		Trials:   trials,
		Seed:     seed,
		Altitude: spreadAlt,
		Speed:    spreadSpd,
		Heading:  spreadHdg,
	}, newLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tALT0\tSPEED0\tHDG0\tFINAL ALT\tHITS\tOK")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.2f\t%.1f\t%d\t%v\n",
			r.Trial, r.Start.Altitude, r.Start.Speed, r.Start.Heading,
			r.Final.Altitude(cfg.Physics), r.Hits, r.Survived)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	survived, crashed := automation.MonteCarloStats(results)
	fmt.Printf("\nsurvived %d, crashed %d\n", survived, crashed)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(meta.ID)
	if err != nil {
		return err
	}

	var svg string
	switch svgView {
	case "track":
		svg, err = export.TrackSVG(traj, 800, 800)
	case "profile":
		svg, err = export.ProfileSVG(traj, meta.Params, 1000, 400)
	default:
		return fmt.Errorf("unknown view %q (track, profile)", svgView)
	}
	if err != nil {
		return err
	}
	if outFile == "" {
		_, err = fmt.Println(svg)
		return err
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}
