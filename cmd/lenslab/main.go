package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lenslab/internal/config"
	"github.com/san-kum/lenslab/internal/galaxy"
	"github.com/san-kum/lenslab/internal/geometry"
	"github.com/san-kum/lenslab/internal/lens"
	"github.com/san-kum/lenslab/internal/storage"
	"github.com/san-kum/lenslab/internal/tui"
	"github.com/san-kum/lenslab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	noCatalog  bool
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lenslab",
		Short: "strong lensing galaxy lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lenslab", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render [quantity]",
		Short: "render a lensing quantity and store the run",
		Long: "quantities: image, convergence, potential, magnification,\n" +
			"tangential, radial, shear",
		Args: cobra.ExactArgs(1),
		RunE: renderQuantity,
	}
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	renderCmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "skip the sqlite catalog")

	criticalCmd := &cobra.Command{
		Use:   "critical",
		Short: "trace critical curves and caustics",
		RunE:  traceCritical,
	}
	criticalCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	criticalCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	profileCmd := &cobra.Command{
		Use:   "profile [quantity]",
		Short: "plot a radial profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotProfile,
	}
	profileCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	profileCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "write to file instead of stdout")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "render a stored field as a heatmap",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-12s %d galaxies, %dx%d grid\n",
					name, len(cfg.Galaxies), cfg.Grid.Rows, cfg.Grid.Cols)
			}
			return nil
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "print the configured galaxies' summaries",
		RunE:  printSummary,
	}
	summaryCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	summaryCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive lens explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(renderCmd, criticalCmd, profileCmd, listCmd,
		exportCmd, viewCmd, presetsCmd, summaryCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

func buildModel() (*config.Config, *lens.Grid, []*galaxy.Galaxy, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	gr, err := cfg.BuildGrid()
	if err != nil {
		return nil, nil, nil, err
	}
	var counter galaxy.Counter
	galaxies, err := cfg.BuildGalaxies(&counter)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, gr, galaxies, nil
}

// deflectors sums the deflection fields of several galaxies, giving the
// geometry functions a single image-plane deflector.
type deflectors []*galaxy.Galaxy

func (d deflectors) DeflectionsFromCoords(cs lens.Coords) lens.Coords {
	sum := lens.ZeroCoords(len(cs))
	for _, g := range d {
		sum = sum.Add(g.DeflectionsFromCoords(cs))
	}
	return sum
}

func computeField(quantity string, galaxies []*galaxy.Galaxy, gr *lens.Grid) (lens.Array, error) {
	sumArrays := func(each func(*galaxy.Galaxy) lens.Array) lens.Array {
		sum := lens.Zeros(gr.Len())
		for _, g := range galaxies {
			sum = sum.Add(each(g))
		}
		return sum
	}

	switch quantity {
	case "image":
		return sumArrays(func(g *galaxy.Galaxy) lens.Array { return g.ImageFromGrid(gr) }), nil
	case "convergence":
		return sumArrays(func(g *galaxy.Galaxy) lens.Array { return g.ConvergenceFromGrid(gr) }), nil
	case "potential":
		return sumArrays(func(g *galaxy.Galaxy) lens.Array { return g.PotentialFromGrid(gr) }), nil
	case "magnification":
		return geometry.Magnification(deflectors(galaxies), gr), nil
	case "tangential":
		return geometry.TangentialEigenvalues(deflectors(galaxies), gr), nil
	case "radial":
		return geometry.RadialEigenvalues(deflectors(galaxies), gr), nil
	case "shear":
		return geometry.ShearViaJacobian(deflectors(galaxies), gr), nil
	default:
		return nil, fmt.Errorf("unknown quantity: %s", quantity)
	}
}

func modelSummary(galaxies []*galaxy.Galaxy) map[string]float64 {
	summary := map[string]float64{}
	totalER, totalEM := 0.0, 0.0
	hasMass := false
	for _, g := range galaxies {
		if er, ok := g.EinsteinRadius(); ok {
			totalER += er
			hasMass = true
		}
		if em, ok := g.EinsteinMass(); ok {
			totalEM += em
		}
	}
	if hasMass {
		summary["einstein_radius"] = totalER
		summary["einstein_mass"] = totalEM
	}
	return summary
}

func renderQuantity(cmd *cobra.Command, args []string) error {
	quantity := args[0]
	_, gr, galaxies, err := buildModel()
	if err != nil {
		return err
	}

	field, err := computeField(quantity, galaxies, gr)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveField(preset, quantity, gr, field, modelSummary(galaxies))
	if err != nil {
		return err
	}

	if !noCatalog {
		cat, err := storage.OpenCatalog(filepath.Join(dataDir, "catalog.db"))
		if err != nil {
			return err
		}
		defer cat.Close()
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		if err := cat.Insert(*meta); err != nil {
			return err
		}
	}

	fmt.Println(viz.Heatmap(field, gr.Shape()))
	plotRadial(quantity, field, gr)
	fmt.Printf("\nsaved run: %s\n", runID)
	return nil
}

// plotRadial plots the field along the central row, from the centre outward.
func plotRadial(quantity string, field lens.Array, gr *lens.Grid) {
	shape := gr.Shape()
	row := shape[0] / 2
	data := make([]float64, 0, shape[1]/2)
	for c := shape[1] / 2; c < shape[1]; c++ {
		data = append(data, field[row*shape[1]+c])
	}
	if !lens.Array(data).IsValid() || len(data) < 2 {
		fmt.Println("radial profile skipped: non-finite values on the central row")
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(quantity+" vs radius"),
	)
	fmt.Println(graph)
}

func traceCritical(cmd *cobra.Command, args []string) error {
	_, gr, galaxies, err := buildModel()
	if err != nil {
		return err
	}
	def := deflectors(galaxies)

	curves := geometry.CriticalCurves(def, gr)
	caustics := geometry.Caustics(def, gr)

	if len(curves[0]) == 0 && len(curves[1]) == 0 {
		fmt.Println("no critical curves inside the grid")
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	field, err := computeField("tangential", galaxies, gr)
	if err != nil {
		return err
	}
	runID, err := st.SaveField(preset, "tangential", gr, field, modelSummary(galaxies))
	if err != nil {
		return err
	}

	names := []string{"tangential_critical_curve", "radial_critical_curve",
		"tangential_caustic", "radial_caustic"}
	all := []lens.Coords{curves[0], curves[1], caustics[0], caustics[1]}
	for i, curve := range all {
		if len(curve) == 0 {
			continue
		}
		if err := st.SaveCurve(runID, names[i], curve); err != nil {
			return err
		}
	}

	scale := gr.PixelScales()
	extY := float64(gr.Shape()[0]) * scale[0] / 2
	extX := float64(gr.Shape()[1]) * scale[1] / 2

	canvas := viz.NewCanvas(60, 20)
	for _, curve := range all {
		canvas.PlotCurve(curve, -extY, extY, -extX, extX)
	}
	fmt.Println(viz.TitleStyle.Render("critical curves and caustics"))
	fmt.Print(canvas.String())

	for i, curve := range all {
		fmt.Printf("%-28s %d points\n", names[i], len(curve))
	}
	fmt.Printf("\nsaved run: %s\n", runID)
	return nil
}

func plotProfile(cmd *cobra.Command, args []string) error {
	quantity := args[0]
	_, gr, galaxies, err := buildModel()
	if err != nil {
		return err
	}
	field, err := computeField(quantity, galaxies, gr)
	if err != nil {
		return err
	}
	plotRadial(quantity, field, gr)
	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tQUANTITY\tTIME\tGRID\tSUB")

	for _, run := range runs {
		presetName := run.Preset
		if presetName == "" {
			presetName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\t%d\n",
			run.ID,
			presetName,
			run.Quantity,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Sub,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile != "" {
		return st.ExportFile(args[0], outFile)
	}
	return st.Export(args[0], os.Stdout)
}

func viewRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	field, shape, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	fmt.Println(viz.Heatmap(field, shape))
	return nil
}

func printSummary(cmd *cobra.Command, args []string) error {
	_, _, galaxies, err := buildModel()
	if err != nil {
		return err
	}
	radii := []float64{0.5, 1.0, 2.0}
	for i, g := range galaxies {
		if i > 0 {
			fmt.Println()
		}
		for _, line := range g.Summarize(radii) {
			fmt.Println(line)
		}
	}
	return nil
}
