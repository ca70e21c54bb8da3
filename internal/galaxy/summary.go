package galaxy

import "fmt"

const summaryWhitespace = 40

func labelValue(label string, value float64) string {
	return fmt.Sprintf("%-*s%.4f", summaryWhitespace, label, value)
}

func withinRadius(label string, radius, value float64) string {
	return labelValue(fmt.Sprintf("%s_within_%.2f", label, radius), value)
}

// Summarize renders a text report of the galaxy's integral quantities at the
// given radii. Quantities a galaxy has no profiles for are omitted.
func (g *Galaxy) Summarize(radii []float64) []string {
	lines := []string{"Galaxy", labelValue("redshift", g.Redshift)}

	if g.HasLightProfile() {
		lines = append(lines, "", "GALAXY LIGHT")
		for _, r := range radii {
			if l, ok := g.LuminosityWithinCircle(r); ok {
				lines = append(lines, withinRadius("luminosity", r, l))
			}
		}
	}

	if g.HasMassProfile() {
		lines = append(lines, "", "GALAXY MASS")
		if er, ok := g.EinsteinRadius(); ok {
			lines = append(lines, labelValue("einstein_radius", er))
		}
		if em, ok := g.EinsteinMass(); ok {
			lines = append(lines, labelValue("einstein_mass", em))
		}
		for _, r := range radii {
			if m, ok := g.MassWithinCircle(r); ok {
				lines = append(lines, withinRadius("mass", r, m))
			}
		}
	}

	return lines
}
