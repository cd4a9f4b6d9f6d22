package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/export"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/session"
	"github.com/san-kum/motionlab/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	preset     string
	exportRun  bool
	x0         float64
	velocity   float64
	elapsed    float64
	v0         float64
	angle      int
	svgPath    string
	pngPath    string
	imageW     int
	imageH     int
	jsonOutput bool
	configOut  string
)

func newFreeFallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freefall [time...]",
		Short: "free fall from rest; every time is one trial",
		Long: `Drops a body from rest for each given fall time (seconds, clamped to
[0, 10]) and prints the final speed, the distance and the accumulated trial
table. Without arguments the configured fall time is used.`,
		RunE: runFreeFall,
	}
	cmd.Flags().StringVar(&preset, "preset", "", "use preset fall time")
	cmd.Flags().BoolVar(&exportRun, "export", false, "save the trial table to the data directory")
	return cmd
}

func runFreeFall(cmd *cobra.Command, args []string) error {
	in, err := presetInputs(session.FreeFall)
	if err != nil {
		return err
	}

	times := make([]float64, 0, len(args))
	for _, a := range args {
		t, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid fall time %q: %w", a, err)
		}
		times = append(times, kinematics.Clamp(t, kinematics.FallTimeMin, kinematics.FallTimeMax))
	}
	if len(times) > 0 {
		in.FallTime = times[0]
	}

	// selecting the screen records the first trial, each further time is a
	// slider change
	sess := newSession(in)
	sess.Select(session.FreeFall)
	for _, t := range times[min(1, len(times)):] {
		sess.ChangeFallTime(t)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, newRenderer("auto").Render(sess))

	if exportRun {
		st := storage.New(cfg.DataDir)
		runID, err := st.Save(sess.ID(), sess.StartedAt(), printer().Locale(), sess.Trials())
		if err != nil {
			return err
		}
		logger.Info("trials exported", zap.String("run", runID), zap.Int("count", sess.TrialCount()))
		fmt.Fprintln(out, printer().T("export.done", sess.TrialCount(), runID))
	}
	return nil
}

func newLinearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linear",
		Short: "uniform linear motion: x = x0 + v*t",
		Args:  cobra.NoArgs,
		RunE:  runLinear,
	}
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial position (m)")
	cmd.Flags().Float64Var(&velocity, "v", 0, "velocity (m/s)")
	cmd.Flags().Float64Var(&elapsed, "t", 0, "time (s)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset form values")
	return cmd
}

func runLinear(cmd *cobra.Command, args []string) error {
	in, err := presetInputs(session.LinearMotion)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("x0") {
		in.Linear.InitialPosition = x0
	}
	if flags.Changed("v") {
		in.Linear.Velocity = velocity
	}
	if flags.Changed("t") {
		in.Linear.Time = elapsed
	}

	sess := newSession(in)
	sess.Select(session.LinearMotion)
	sess.SubmitLinear()

	fmt.Fprintln(cmd.OutOrStdout(), newRenderer("auto").Render(sess))
	return nil
}

func newProjectileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projectile",
		Short: "projectile launched from the ground",
		Args:  cobra.NoArgs,
		RunE:  runProjectile,
	}
	cmd.Flags().Float64Var(&v0, "v0", config.DefaultInitialVelocity, "initial velocity (m/s)")
	cmd.Flags().IntVar(&angle, "angle", config.DefaultAngle, "launch angle in degrees, clamped to [0, 90]")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset launch")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the trajectory plot as SVG")
	cmd.Flags().StringVar(&pngPath, "png", "", "write the trajectory plot as PNG")
	cmd.Flags().IntVar(&imageW, "width", 800, "image width")
	cmd.Flags().IntVar(&imageH, "height", 600, "image height")
	return cmd
}

func runProjectile(cmd *cobra.Command, args []string) error {
	in, err := presetInputs(session.ProjectileMotion)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("v0") {
		in.Projectile.InitialVelocity = v0
	}
	if flags.Changed("angle") {
		in.Projectile.Angle = angle
	}
	in.Projectile.Angle = kinematics.ClampInt(in.Projectile.Angle, kinematics.AngleMin, kinematics.AngleMax)

	sess := newSession(in)
	sess.Select(session.ProjectileMotion)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, newRenderer("auto").Render(sess))

	p := sess.ProjectileInputs()
	points := kinematics.TrajectorySamples(p.InitialVelocity, float64(p.Angle))
	labels := plotLabels()

	if svgPath != "" {
		svg := export.TrajectoryToSVG(points, imageW, imageH, "#00a8cc", labels)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		logger.Info("svg written", zap.String("path", svgPath))
		fmt.Fprintf(out, "svg: %s\n", svgPath)
	}
	if pngPath != "" {
		if err := writePNG(pngPath, points, labels); err != nil {
			return err
		}
		logger.Info("png written", zap.String("path", pngPath))
		fmt.Fprintf(out, "png: %s\n", pngPath)
	}
	return nil
}

// writePNG renders the plot to path. A failed write leaves no file behind.
func writePNG(path string, points []kinematics.Point, labels export.Labels) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	err = export.TrajectoryPNG(f, points, imageW, imageH, labels)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("write png: %w", cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func plotLabels() export.Labels {
	p := printer()
	return export.Labels{
		Title:  p.T("plot.title"),
		XLabel: p.T("plot.x"),
		YLabel: p.T("plot.y"),
	}
}

// presetInputs starts from the configured inputs and applies --preset.
func presetInputs(view session.View) (session.Inputs, error) {
	in := cfg.Inputs
	if preset == "" {
		return in, nil
	}
	p := config.GetPreset(view, preset)
	if p == nil {
		return in, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(view))
	}
	p.Apply(&in)
	return in, nil
}

func newAboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "show the help text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), newRenderer("auto").Render(newSession(cfg.Inputs)))
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [view]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views := []session.View{session.FreeFall, session.LinearMotion, session.ProjectileMotion}
			if len(args) == 1 {
				v, err := session.ParseView(args[0])
				if err != nil {
					return err
				}
				views = []session.View{v}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VIEW\tPRESET\tDESCRIPTION")
			for _, v := range views {
				for _, name := range config.ListPresets(v) {
					fmt.Fprintf(w, "%s\t%s\t%s\n", v, name, config.GetPreset(v, name).Description)
				}
			}
			return w.Flush()
		},
	}
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list exported trial logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(cfg.DataDir)
			runs, err := st.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintf(out, "no runs found in %s\n", st.Dir())
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tTRIALS\tMAX T\tLOCALE")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%s\n",
					run.ID,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Trials,
					run.MaxTime,
					run.Locale,
				)
			}
			return w.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print an exported trial log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(cfg.DataDir)
			out := cmd.OutOrStdout()
			if jsonOutput {
				return st.ExportJSON(out, args[0])
			}

			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			trials, err := st.LoadTrials(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s  %s  session %s\n\n",
				meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"), meta.SessionID)
			table := newRenderer("auto").TrialTable(trials, 0).View()
			fmt.Fprintln(out, strings.TrimRight(table, "\n"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print as JSON")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configOut == "" {
				return cfg.WriteYAML(cmd.OutOrStdout())
			}
			if err := config.Save(configOut, cfg); err != nil {
				return err
			}
			logger.Info("config written", zap.String("path", configOut))
			fmt.Fprintf(cmd.OutOrStdout(), "config: %s\n", configOut)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configOut, "output", "o", "", "write the configuration to a file instead")
	return cmd
}
