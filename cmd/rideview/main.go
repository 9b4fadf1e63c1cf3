package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rideview/internal/config"
	"github.com/san-kum/rideview/internal/export"
	"github.com/san-kum/rideview/internal/halfcar"
	"github.com/san-kum/rideview/internal/playback"
	"github.com/san-kum/rideview/internal/telemetry"
	"github.com/san-kum/rideview/internal/viz"
)

var (
	dataDir     string
	fps         int
	vehicleName string
	overrun     string
	configFile  string
	snapAt      float64
	snapOut     string
	snapScale   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rideview",
		Short: "half-car suspension record viewer",
		RunE:  runView,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "record directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "display frame rate")
	rootCmd.Flags().StringVar(&vehicleName, "vehicle", "", "initial vehicle")
	rootCmd.Flags().StringVar(&overrun, "overrun", "", "end-of-record policy: hold, loop or stop")

	simulateCmd := &cobra.Command{
		Use:   "simulate [vehicle]",
		Short: "run the half-car model and write its record",
		Long:  "Runs the accelerate-then-brake drive cycle through the half-car\nsuspension model and writes the record the viewer plays back.\nWithout an argument every builtin vehicle is simulated.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}

	vehiclesCmd := &cobra.Command{
		Use:   "vehicles",
		Short: "list vehicle profiles",
		RunE:  listVehicles,
	}

	infoCmd := &cobra.Command{
		Use:   "info [vehicle]",
		Short: "summarize a vehicle's record",
		Args:  cobra.ExactArgs(1),
		RunE:  showInfo,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [vehicle]",
		Short: "render one frame of a record to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSnapshot,
	}
	snapshotCmd.Flags().Float64Var(&snapAt, "at", 0, "record time to render [s]")
	snapshotCmd.Flags().StringVar(&snapOut, "out", "", "output path (default <vehicle>_frame.svg)")
	snapshotCmd.Flags().Float64Var(&snapScale, "scale", 4, "sub-pixel size in SVG units")

	rootCmd.AddCommand(simulateCmd, vehiclesCmd, infoCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file when given and lets explicitly set
// flags override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("vehicle") {
		cfg.Vehicle = vehicleName
	}
	if cmd.Flags().Changed("overrun") {
		cfg.Overrun = overrun
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) (*playback.Engine, []string, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.PlaybackOptions()
	if err != nil {
		return nil, nil, err
	}
	loader := func(name string) (*telemetry.Series, error) {
		return telemetry.Load(telemetry.Filename(cfg.DataDir, name))
	}
	engine, err := playback.New(opts, reg, loader)
	if err != nil {
		return nil, nil, err
	}
	return engine, reg.Names(), nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engine, names, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if err := engine.SwitchVehicle(cfg.Vehicle); err != nil {
		return fmt.Errorf("%w (run `rideview simulate` to generate records)", err)
	}

	model := viz.NewModel(engine, names, cfg.DisplayPeriod())
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	params := halfcar.All()
	if len(args) == 1 {
		p, err := halfcar.ByName(args[0])
		if err != nil {
			return err
		}
		params = []halfcar.Params{p}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cycle := halfcar.DefaultCycle()
	cycle.Dt = cfg.SimStep
	for _, p := range params {
		rows, err := halfcar.Run(ctx, p, cycle)
		if err != nil {
			return err
		}
		path := telemetry.Filename(cfg.DataDir, p.Name)
		if err := halfcar.WriteCSV(path, rows); err != nil {
			return err
		}
		fmt.Printf("%s: %d rows -> %s\n", p.Name, len(rows), path)
	}
	return nil
}

func renderSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Overrun = "hold"
	engine, _, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if err := engine.SwitchVehicle(args[0]); err != nil {
		return err
	}

	// Tick forward until the requested record time is reached; the hold
	// policy pins playback at the final row when --at runs past the end.
	frame := engine.Tick()
	for frame.Time < snapAt {
		next := engine.Tick()
		if next.Time <= frame.Time {
			break
		}
		frame = next
	}

	canvas := viz.NewCanvas(120, 30)
	viz.Draw(canvas, frame)

	out := snapOut
	if out == "" {
		out = fmt.Sprintf("%s_frame.svg", args[0])
	}
	if err := export.WriteSVG(out, canvas, snapScale); err != nil {
		return err
	}
	fmt.Printf("%s @ %.2fs -> %s\n", args[0], frame.Time, out)
	return nil
}

func listVehicles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFRONT [m]\tREAR [m]\tRECORD")
	for _, name := range reg.Names() {
		p, err := reg.Get(name)
		if err != nil {
			return err
		}
		record := telemetry.Filename(cfg.DataDir, name)
		if _, err := os.Stat(record); err != nil {
			record = "(missing)"
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", p.Name, p.FrontOffset, p.RearOffset, record)
	}
	return w.Flush()
}

func showInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := telemetry.Load(telemetry.Filename(cfg.DataDir, args[0]))
	if err != nil {
		return err
	}

	first, err := s.Row(0)
	if err != nil {
		return err
	}
	last, err := s.Row(s.Len() - 1)
	if err != nil {
		return err
	}
	maxSpeed := 0.0
	for i := 0; i < s.Len(); i++ {
		r, err := s.Row(i)
		if err != nil {
			return err
		}
		if r.Speed > maxSpeed {
			maxSpeed = r.Speed
		}
	}

	fmt.Printf("vehicle: %s\n", args[0])
	fmt.Printf("samples: %d\n", s.Len())
	fmt.Printf("duration: %.2fs\n", last.Time-first.Time)
	fmt.Printf("distance: %.1fm\n", last.X-first.X)
	fmt.Printf("top speed: %.1f km/h\n\n", maxSpeed*3.6)

	bounds := s.Bounds()
	chart := asciigraph.Plot(s.PitchDeg(),
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.LowerBound(bounds.PitchDegMin),
		asciigraph.UpperBound(bounds.PitchDegMax),
		asciigraph.Caption("pitch [deg]"),
	)
	fmt.Println(chart)
	return nil
}
