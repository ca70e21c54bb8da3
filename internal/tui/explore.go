package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lenslab/internal/galaxy"
	"github.com/san-kum/lenslab/internal/geometry"
	"github.com/san-kum/lenslab/internal/lens"
	"github.com/san-kum/lenslab/internal/profile"
	"github.com/san-kum/lenslab/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var quantities = []string{"convergence", "magnification", "tangential", "radial", "image"}

// model is an interactive single-lens explorer: an isothermal mass plus a
// Sersic light profile, re-rendered whenever a parameter changes.
type model struct {
	einstein   float64
	extent     float64
	quantity   int
	showCurves bool

	shape [2]int

	field  lens.Array
	curve  lens.Coords
	errMsg string

	width  int
	height int
}

func newModel() model {
	m := model{
		einstein:   1.0,
		extent:     2.5,
		shape:      [2]int{40, 60},
		showCurves: true,
		width:      80,
		height:     24,
	}
	m.render()
	return m
}

func (m *model) buildGalaxy() (*galaxy.Galaxy, error) {
	return galaxy.NewBuilder(0.5).
		WithMass(profile.NewIsothermal(lens.Coord{}, m.einstein)).
		WithLight(profile.NewSersic(lens.Coord{}, 0.8, 45.0, 1.0, m.einstein/2, 2.5)).
		Build()
}

func (m *model) render() {
	g, err := m.buildGalaxy()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	scale := 2 * m.extent / float64(m.shape[0])
	gr, err := lens.NewUniformAt(m.shape, [2]float64{scale, scale * float64(m.shape[0]) / float64(m.shape[1])}, lens.Coord{}, 1)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	switch quantities[m.quantity] {
	case "convergence":
		m.field = g.ConvergenceFromGrid(gr)
	case "magnification":
		m.field = geometry.Magnification(g, gr)
	case "tangential":
		m.field = geometry.TangentialEigenvalues(g, gr)
	case "radial":
		m.field = geometry.RadialEigenvalues(g, gr)
	case "image":
		m.field = g.ImageFromGrid(gr)
	}
	if m.showCurves {
		m.curve = geometry.TangentialCriticalCurve(g, gr)
	} else {
		m.curve = nil
	}
	m.errMsg = ""
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.einstein += 0.1
			m.render()
		case "down", "j":
			if m.einstein > 0.15 {
				m.einstein -= 0.1
			}
			m.render()
		case "+", "=":
			if m.extent > 0.6 {
				m.extent /= 1.25
			}
			m.render()
		case "-":
			m.extent *= 1.25
			m.render()
		case "tab", " ":
			m.quantity = (m.quantity + 1) % len(quantities)
			m.render()
		case "c":
			m.showCurves = !m.showCurves
			m.render()
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(viz.TitleStyle.Render("lenslab explorer"))
	b.WriteString("  ")
	b.WriteString(dim.Render(quantities[m.quantity]))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(viz.WarnStyle.Render(m.errMsg))
		b.WriteString("\n")
		return b.String()
	}

	heat := viz.Heatmap(m.field, m.shape)
	if quantities[m.quantity] == "convergence" || quantities[m.quantity] == "image" {
		heat = viz.LogHeatmap(m.field, m.shape)
	}
	b.WriteString(heat)

	if m.showCurves && len(m.curve) > 0 {
		canvas := viz.NewCanvas(m.shape[1], m.shape[0]/2)
		canvas.PlotCurve(m.curve, -m.extent, m.extent, -m.extent, m.extent)
		b.WriteString("\n")
		b.WriteString(viz.CurveStyle.Render(canvas.String()))
	}

	b.WriteString("\n")
	b.WriteString(cyan.Render(fmt.Sprintf("θ_E %.1f\"", m.einstein)))
	b.WriteString(dim.Render(fmt.Sprintf("   extent ±%.2f\"", m.extent)))
	if m.showCurves {
		b.WriteString(yellow.Render(fmt.Sprintf("   curve points %d", len(m.curve))))
	}
	b.WriteString("\n")
	b.WriteString(viz.KeyHint.Render("↑/↓ einstein radius · +/- zoom · tab quantity · c curves · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the interactive explorer.
func Run() error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
