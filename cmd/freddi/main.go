// Command freddi runs the viscous accretion-disk evolution simulator
// from the command line: a cobra command tree with run, list, plot,
// export, analyze, compare and presets subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lisdanil/freddi/internal/analysis"
	"github.com/lisdanil/freddi/internal/config"
	"github.com/lisdanil/freddi/internal/diskstate"
	"github.com/lisdanil/freddi/internal/output"
	"github.com/lisdanil/freddi/internal/registry"
)

var (
	dataDir    string
	configFile string
	presetName string

	// run flags, one per tunable run parameter.
	alpha, mx, kerr, mopt, period                     float64
	rin, rout, risco, ropt                            float64
	opacityName, initialCond                          string
	f0, mdisk0, mdot0, powerOrder, gaussMu, gaussSigma float64
	boundCond                                         string
	thot, tirr2tvishot                                float64
	cirr, irrindex                                    float64
	angularDist                                       string
	colourFactor, emin, emax, inclination, distance   float64
	runTime, tau                                      float64
	mdotOut                                           float64
	nx                                                int
	gridScale                                         string
	fullData                                          bool
	printPlot, printJSON                              bool

	nsEnabled                                                         bool
	nsFreqx, nsRx, nsBx, nsHotspot, nsEpsAlfven, nsInvBeta, nsRdead    float64
	nsFpType                                                          string
	nsFpK                                                             float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "freddi",
		Short: "viscous accretion-disk evolution simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".freddi", "output directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "evolve a disk from t=0 to --time",
		RunE:  runEvolution,
	}
	registerRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "freddi.ini path (default: first of ./, $HOME, /etc)")
	runCmd.Flags().StringVar(&presetName, "preset", "", "named scenario preset, overridden by any flag explicitly set")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list completed runs in --data",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-prefix]",
		Short: "ascii-plot a run's Mdot_in light curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run-prefix]",
		Short: "estimate outburst recurrence period via FFT",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&tau, "tau", 0, "substep used for the run, days (required)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list the named scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset1] [preset2] ...",
		Short: "run several presets and compare peak accretion rate",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run-prefix]",
		Short: "re-export a completed run's summary as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, presetsCmd, compareCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "freddi:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a run failure to the process exit code: 2 for a
// runtime failure partway through evolution (solver divergence, the
// disk exhausting itself), 1 for everything else (bad configuration,
// bad arguments).
func exitCode(err error) int {
	if errors.Is(err, diskstate.ErrSolverDivergence) || errors.Is(err, diskstate.ErrDiskExhausted) {
		return 2
	}
	return 1
}

func registerRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&alpha, "alpha", config.DefaultAlpha, "Shakura-Sunyaev alpha")
	f.Float64Var(&mx, "Mx", 0, "compact-object mass, Msun (required)")
	f.Float64Var(&kerr, "kerr", 0, "dimensionless spin, -1..1")
	f.Float64Var(&mopt, "Mopt", 0, "donor mass, Msun (required)")
	f.Float64Var(&period, "period", 0, "binary period, days (required)")
	f.Float64Var(&rin, "rin", 0, "inner disk radius override, cm")
	f.Float64Var(&rout, "rout", 0, "outer disk radius override, cm")
	f.Float64Var(&risco, "risco", 0, "ISCO radius override, cm")
	f.Float64Var(&ropt, "Ropt", 0, "donor radius override, cm")
	f.StringVar(&opacityName, "opacity", config.DefaultOpacity, "opacity law: Kramers, OPAL")
	f.StringVar(&initialCond, "initialcond", config.DefaultInitialCond, "initial F profile")
	f.Float64Var(&f0, "F0", 0, "initial torque scale, cgs")
	f.Float64Var(&mdisk0, "Mdisk0", 0, "initial disk mass target, cgs")
	f.Float64Var(&mdot0, "Mdot0", 0, "initial accretion rate target, cgs")
	f.Float64Var(&powerOrder, "powerorder", 1, "powerF/powerSigma exponent")
	f.Float64Var(&gaussMu, "gaussmu", 0.5, "gaussF mean, fraction of h_out")
	f.Float64Var(&gaussSigma, "gausssigma", 0.1, "gaussF width, fraction of h_out")
	f.StringVar(&boundCond, "boundcond", config.DefaultBoundCond, "outer boundary: Teff, Tirr")
	f.Float64Var(&thot, "Thot", 0, "cold-front threshold, K")
	f.Float64Var(&tirr2tvishot, "Tirr2Tvishot", config.DefaultTirr2Tvishot, "irradiation-dominated branch threshold")
	f.Float64Var(&cirr, "Cirr", 0, "irradiation coefficient")
	f.Float64Var(&irrindex, "irrindex", 0, "irradiation H/R exponent")
	f.StringVar(&angularDist, "angular_dist_disk", "plane", "irradiation geometry: plane, isotropic")
	f.Float64Var(&colourFactor, "colourfactor", config.DefaultColourFactor, "spectral hardening factor")
	f.Float64Var(&emin, "emin", config.DefaultEmin, "X-ray band minimum, keV")
	f.Float64Var(&emax, "emax", config.DefaultEmax, "X-ray band maximum, keV")
	f.Float64Var(&inclination, "inclination", 0, "inclination, degrees")
	f.Float64Var(&distance, "distance", 0, "distance, cm")
	f.Float64Var(&runTime, "time", 0, "total integration time, days (required)")
	f.Float64Var(&tau, "tau", 0, "substep, days (required)")
	f.Float64Var(&mdotOut, "Mdotout", 0, "outer boundary outflow rate, cgs, <= 0 (0 disables)")
	f.IntVar(&nx, "Nx", config.DefaultNx, "grid point count")
	f.StringVar(&gridScale, "gridscale", string(config.DefaultGridScale), "grid spacing: log, linear")
	f.BoolVar(&fullData, "fulldata", false, "write a radial-profile file per step")
	f.BoolVar(&printPlot, "plot", false, "print an ascii Mdot_in light curve after the run")
	f.BoolVar(&printJSON, "json", false, "print the run as JSON to stdout instead of writing files")

	f.BoolVar(&nsEnabled, "ns", false, "enable the neutron-star extension")
	f.Float64Var(&nsFreqx, "ns.freqx", 0, "NS spin frequency, Hz")
	f.Float64Var(&nsRx, "ns.Rx", 1e6, "NS radius, cm")
	f.Float64Var(&nsBx, "ns.Bx", 0, "NS surface field, G")
	f.Float64Var(&nsHotspot, "ns.hotspotarea", 1, "NS hotspot area fraction")
	f.Float64Var(&nsEpsAlfven, "ns.epsilonAlfven", 1, "Alfven radius coefficient")
	f.Float64Var(&nsInvBeta, "ns.inversebeta", 0, "inverse plasma beta")
	f.Float64Var(&nsRdead, "ns.Rdead", 0, "dead-disk radius ceiling, cm (0=unbounded)")
	f.StringVar(&nsFpType, "ns.fptype", "no-outflow", "propeller fraction variant")
	f.Float64Var(&nsFpK, "ns.fpparam.k", 5, "slope parameter for sigmoid fptype variants")
}

// resolveRunConfig starts from the named preset or, when no preset is
// given, from the config file, then applies explicitly set flags on
// top: an explicitly set flag always wins. With a preset the config
// file is not read.
func resolveRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if presetName != "" {
		p, ok := config.GetPreset(presetName)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", presetName, config.ListPresets())
		}
		*cfg = *p
	}

	if presetName == "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("alpha") {
		cfg.Alpha = alpha
	}
	if changed("Mx") {
		cfg.Mx = mx
	}
	if changed("kerr") {
		cfg.Kerr = kerr
	}
	if changed("Mopt") {
		cfg.Mopt = mopt
	}
	if changed("period") {
		cfg.Period = period
	}
	if changed("rin") {
		cfg.Rin = rin
	}
	if changed("rout") {
		cfg.Rout = rout
	}
	if changed("risco") {
		cfg.Risco = risco
	}
	if changed("Ropt") {
		cfg.Ropt = ropt
	}
	if changed("opacity") {
		cfg.Opacity = opacityName
	}
	if changed("initialcond") {
		cfg.InitialCond = initialCond
	}
	if changed("F0") {
		cfg.F0 = f0
	}
	if changed("Mdisk0") {
		cfg.Mdisk0 = mdisk0
	}
	if changed("Mdot0") {
		cfg.Mdot0 = mdot0
	}
	if changed("powerorder") {
		cfg.PowerOrder = powerOrder
	}
	if changed("gaussmu") {
		cfg.GaussMu = gaussMu
	}
	if changed("gausssigma") {
		cfg.GaussSigma = gaussSigma
	}
	if changed("boundcond") {
		cfg.BoundCond = boundCond
	}
	if changed("Thot") {
		cfg.Thot = thot
	}
	if changed("Tirr2Tvishot") {
		cfg.Tirr2Tvishot = tirr2tvishot
	}
	if changed("Cirr") {
		cfg.Cirr = cirr
	}
	if changed("irrindex") {
		cfg.Irrindex = irrindex
	}
	if changed("angular_dist_disk") {
		cfg.AngularDistDisk = angularDist
	}
	if changed("colourfactor") {
		cfg.ColourFactor = colourFactor
	}
	if changed("emin") {
		cfg.Emin = emin
	}
	if changed("emax") {
		cfg.Emax = emax
	}
	if changed("inclination") {
		cfg.Inclination = inclination
	}
	if changed("distance") {
		cfg.Distance = distance
	}
	if changed("time") {
		cfg.Time = runTime
	}
	if changed("tau") {
		cfg.Tau = tau
	}
	if changed("Nx") {
		cfg.Nx = nx
	}
	if changed("gridscale") {
		cfg.GridScale = gridScale
	}
	if changed("fulldata") {
		cfg.FullData = fullData
	}
	if changed("Mdotout") {
		cfg.MdotOut = mdotOut
	}

	if nsEnabled || changed("ns.freqx") {
		ns := cfg.NS
		if ns == nil {
			ns = &config.NSConfig{Nsprop: "dummy", Rx: 1e6, HotspotArea: 1, EpsilonAlfven: 1, FpType: "no-outflow"}
		}
		if changed("ns.freqx") {
			ns.Freqx = nsFreqx
		}
		if changed("ns.Rx") {
			ns.Rx = nsRx
		}
		if changed("ns.Bx") {
			ns.Bx = nsBx
		}
		if changed("ns.hotspotarea") {
			ns.HotspotArea = nsHotspot
		}
		if changed("ns.epsilonAlfven") {
			ns.EpsilonAlfven = nsEpsAlfven
		}
		if changed("ns.inversebeta") {
			ns.InverseBeta = nsInvBeta
		}
		if changed("ns.Rdead") {
			ns.Rdead = nsRdead
		}
		if changed("ns.fptype") {
			ns.FpType = nsFpType
		}
		if changed("ns.fpparam.k") {
			if ns.FpParams == nil {
				ns.FpParams = map[string]float64{}
			}
			ns.FpParams["k"] = nsFpK
		}
		cfg.NS = ns
	}

	return cfg, nil
}

func runEvolution(cmd *cobra.Command, args []string) error {
	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return err
	}

	reg := registry.New()
	loop, err := buildLoop(cfg, reg)
	if err != nil {
		return err
	}

	result, err := loop.Run(context.Background(), cfg.TauSeconds(), cfg.TimeSeconds())
	if err != nil && result == nil {
		return err
	}

	runMetrics := map[string]float64{}
	for _, m := range loop.Metrics() {
		runMetrics[m.Name()] = m.Value()
	}

	scenario := presetName
	if scenario == "" {
		scenario = "run"
	}

	if printJSON {
		return output.ExportJSONStdout(scenario, cfg.Tau, cfg.Time, result, runMetrics)
	}

	w := output.New(dataDir, scenario)
	sumPath, werr := w.WriteSummary(result)
	if werr != nil {
		return werr
	}
	if _, werr := w.WriteFullData(result); werr != nil {
		return werr
	}
	if _, werr := w.WriteMetadata(output.RunMetadata{
		ID:       scenario,
		Scenario: scenario,
		Tau:      cfg.Tau,
		Time:     cfg.Time,
		Steps:    result.StepsTaken,
		Metrics:  runMetrics,
	}); werr != nil {
		return werr
	}

	fmt.Printf("wrote %s (%d steps)\n", sumPath, result.StepsTaken)
	if len(result.Errors) > 0 {
		fmt.Printf("%d non-fatal step errors; last: %v\n", len(result.Errors), result.Errors[len(result.Errors)-1])
	}

	if printPlot {
		plotSummary(dataDir, scenario)
	}

	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := output.ListRuns(dataDir)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found in", dataDir)
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%-20s tau=%g time=%g steps=%d\n", r.ID, r.Tau, r.Time, r.Steps)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	plotSummary(dataDir, args[0])
	return nil
}

func plotSummary(dir, prefix string) {
	t, mdotIn, err := output.LoadSummary(dir, prefix)
	if err != nil {
		fmt.Fprintln(os.Stderr, "plot:", err)
		return
	}
	if len(mdotIn) == 0 {
		fmt.Println("no data to plot")
		return
	}
	graph := asciigraph.Plot(mdotIn,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s: Mdot_in vs step (t0=%.3g)", prefix, t[0])),
	)
	fmt.Println(graph)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	if tau <= 0 {
		return fmt.Errorf("analyze: --tau is required")
	}
	_, mdotIn, err := output.LoadSummary(dataDir, args[0])
	if err != nil {
		return err
	}
	result := syntheticResultFromSeries(mdotIn, tau*86400)
	period := analysis.RecurrencePeriod(result, tau*86400)
	fmt.Printf("recurrence period: %.4g s (%.4g days)\n", period, period/86400)
	return nil
}

func compareRuns(cmd *cobra.Command, args []string) error {
	reg := registry.New()
	for _, name := range args {
		cfg, ok := config.GetPreset(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "compare: unknown preset %q, skipping\n", name)
			continue
		}
		loop, err := buildLoop(cfg, reg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "compare: %s: %v\n", name, err)
			continue
		}
		result, _ := loop.Run(context.Background(), cfg.TauSeconds(), cfg.TimeSeconds())
		peak := 0.0
		for _, s := range result.Snapshots {
			if s.MdotIn > peak {
				peak = s.MdotIn
			}
		}
		fmt.Printf("%-20s steps=%-6d peak Mdot_in=%.4g\n", name, result.StepsTaken, peak)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	prefix := args[0]
	t, mdotIn, err := output.LoadSummary(dataDir, prefix)
	if err != nil {
		return err
	}
	result := syntheticResultFromSeries(mdotIn, 0)
	for i := range result.Snapshots {
		if i < len(t) {
			result.Snapshots[i].T = t[i]
		}
	}
	return output.ExportJSONStdout(prefix, 0, 0, result, nil)
}
