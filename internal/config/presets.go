package config

var Presets = map[string]*Config{
	"sis": {
		Grid: GridConfig{Rows: 100, Cols: 100, PixelScale: 0.05, Sub: 2},
		Galaxies: []GalaxyConfig{
			{
				Redshift: 0.5,
				Mass:     []ProfileConfig{{Type: "isothermal", EinsteinRadius: 1.2}},
			},
		},
		PSF: PSFConfig{Size: 11, Sigma: 1.0},
	},
	"sersic": {
		Grid: GridConfig{Rows: 100, Cols: 100, PixelScale: 0.05, Sub: 2},
		Galaxies: []GalaxyConfig{
			{
				Redshift: 0.5,
				Light: []ProfileConfig{
					{Type: "sersic", AxisRatio: 0.8, Angle: 45.0, Intensity: 1.0, EffectiveRadius: 0.6, SersicIndex: 4.0},
				},
			},
		},
		PSF: PSFConfig{Size: 11, Sigma: 1.0},
	},
	"sersic_sis": {
		Grid: GridConfig{Rows: 120, Cols: 120, PixelScale: 0.05, Sub: 2},
		Galaxies: []GalaxyConfig{
			{
				Redshift: 0.5,
				Light: []ProfileConfig{
					{Type: "sersic", AxisRatio: 0.9, Intensity: 1.0, EffectiveRadius: 0.8, SersicIndex: 2.5},
				},
				Mass: []ProfileConfig{{Type: "isothermal", EinsteinRadius: 1.6}},
			},
			{
				Redshift: 1.0,
				Light: []ProfileConfig{
					{Type: "sersic", AxisRatio: 0.7, Angle: 60.0, Intensity: 0.3, EffectiveRadius: 0.3, SersicIndex: 1.0},
				},
			},
		},
		PSF: PSFConfig{Size: 11, Sigma: 1.0},
	},
	"point": {
		Grid: GridConfig{Rows: 100, Cols: 100, PixelScale: 0.05, Sub: 4},
		Galaxies: []GalaxyConfig{
			{
				Redshift: 0.5,
				Mass:     []ProfileConfig{{Type: "point_mass", EinsteinRadius: 1.0}},
			},
		},
		PSF: PSFConfig{Size: 11, Sigma: 1.0},
	},
	"hyper": {
		Grid: GridConfig{Rows: 100, Cols: 100, PixelScale: 0.05, Sub: 2},
		Galaxies: []GalaxyConfig{
			{
				Redshift: 0.5,
				Light: []ProfileConfig{
					{Type: "gaussian", Intensity: 1.0, Sigma: 0.5},
				},
				Hyper: &HyperConfig{ContributionFactor: 0.0, NoiseFactor: 2.0, NoisePower: 1.0},
			},
		},
		PSF: PSFConfig{Size: 11, Sigma: 1.0},
	},
}

// GetPreset returns the named preset, or nil when it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names in map order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
