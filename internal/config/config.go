package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lenslab/internal/galaxy"
	"github.com/san-kum/lenslab/internal/lens"
	"github.com/san-kum/lenslab/internal/profile"
)

const (
	DefaultRows       = 100
	DefaultCols       = 100
	DefaultPixelScale = 0.05
	DefaultSub        = 2
	DefaultRedshift   = 0.5
	DefaultPSFSize    = 11
	DefaultPSFSigma   = 1.0
)

// ErrUnknownProfile indicates a profile type string the factory does not
// recognize.
var ErrUnknownProfile = errors.New("config: unknown profile type")

type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Galaxies []GalaxyConfig `yaml:"galaxies"`
	PSF      PSFConfig      `yaml:"psf"`
}

type GridConfig struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	PixelScale float64 `yaml:"pixel_scale"`
	Sub        int     `yaml:"sub"`
}

type PSFConfig struct {
	Size  int     `yaml:"size"`
	Sigma float64 `yaml:"sigma"`
}

type GalaxyConfig struct {
	Redshift       float64               `yaml:"redshift"`
	Light          []ProfileConfig       `yaml:"light"`
	Mass           []ProfileConfig       `yaml:"mass"`
	Hyper          *HyperConfig          `yaml:"hyper"`
	Pixelization   *PixelizationConfig   `yaml:"pixelization"`
	Regularization *RegularizationConfig `yaml:"regularization"`
}

type ProfileConfig struct {
	Type            string  `yaml:"type"`
	CentreY         float64 `yaml:"centre_y"`
	CentreX         float64 `yaml:"centre_x"`
	AxisRatio       float64 `yaml:"axis_ratio"`
	Angle           float64 `yaml:"angle"`
	Intensity       float64 `yaml:"intensity"`
	EffectiveRadius float64 `yaml:"effective_radius"`
	SersicIndex     float64 `yaml:"sersic_index"`
	Sigma           float64 `yaml:"sigma"`
	EinsteinRadius  float64 `yaml:"einstein_radius"`
}

type HyperConfig struct {
	ContributionFactor float64 `yaml:"contribution_factor"`
	NoiseFactor        float64 `yaml:"noise_factor"`
	NoisePower         float64 `yaml:"noise_power"`
}

type PixelizationConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

type RegularizationConfig struct {
	Coefficient float64 `yaml:"coefficient"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Rows:       DefaultRows,
			Cols:       DefaultCols,
			PixelScale: DefaultPixelScale,
			Sub:        DefaultSub,
		},
		Galaxies: []GalaxyConfig{
			{
				Redshift: DefaultRedshift,
				Light: []ProfileConfig{
					{Type: "sersic", AxisRatio: 0.8, Intensity: 1.0, EffectiveRadius: 0.6, SersicIndex: 4.0},
				},
				Mass: []ProfileConfig{
					{Type: "isothermal", EinsteinRadius: 1.0},
				},
			},
		},
		PSF: PSFConfig{Size: DefaultPSFSize, Sigma: DefaultPSFSigma},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildGrid materializes the configured evaluation grid.
func (c *Config) BuildGrid() (*lens.Grid, error) {
	return lens.NewUniform([2]int{c.Grid.Rows, c.Grid.Cols}, c.Grid.PixelScale, c.Grid.Sub)
}

// BuildGalaxies materializes the configured galaxies, drawing hyper component
// numbers from the counter in declaration order.
func (c *Config) BuildGalaxies(counter *galaxy.Counter) ([]*galaxy.Galaxy, error) {
	out := make([]*galaxy.Galaxy, 0, len(c.Galaxies))
	for i, gc := range c.Galaxies {
		g, err := gc.Build(counter)
		if err != nil {
			return nil, fmt.Errorf("galaxy %d: %w", i, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Build materializes a single galaxy.
func (gc GalaxyConfig) Build(counter *galaxy.Counter) (*galaxy.Galaxy, error) {
	b := galaxy.NewBuilder(gc.Redshift)
	for _, pc := range gc.Light {
		p, err := pc.LightProfile()
		if err != nil {
			return nil, err
		}
		b.WithLight(p)
	}
	for _, pc := range gc.Mass {
		p, err := pc.MassProfile()
		if err != nil {
			return nil, err
		}
		b.WithMass(p)
	}
	if gc.Hyper != nil {
		b.WithHyper(galaxy.NewHyperGalaxy(
			gc.Hyper.ContributionFactor, gc.Hyper.NoiseFactor, gc.Hyper.NoisePower, counter))
	}
	if gc.Pixelization != nil {
		b.WithPixelization(galaxy.Pixelization{Shape: [2]int{gc.Pixelization.Rows, gc.Pixelization.Cols}})
	}
	if gc.Regularization != nil {
		b.WithRegularization(galaxy.Regularization{Coefficient: gc.Regularization.Coefficient})
	}
	return b.Build()
}

// LightProfile builds the configured light profile.
func (pc ProfileConfig) LightProfile() (lens.LightProfile, error) {
	centre := lens.Coord{Y: pc.CentreY, X: pc.CentreX}
	switch pc.Type {
	case "sersic":
		return profile.NewSersic(centre, pc.AxisRatio, pc.Angle, pc.Intensity, pc.EffectiveRadius, pc.SersicIndex), nil
	case "gaussian":
		return profile.NewGaussian(centre, pc.Intensity, pc.Sigma), nil
	default:
		return nil, fmt.Errorf("%w: %q is not a light profile", ErrUnknownProfile, pc.Type)
	}
}

// MassProfile builds the configured mass profile.
func (pc ProfileConfig) MassProfile() (lens.MassProfile, error) {
	centre := lens.Coord{Y: pc.CentreY, X: pc.CentreX}
	switch pc.Type {
	case "isothermal":
		return profile.NewIsothermal(centre, pc.EinsteinRadius), nil
	case "point_mass":
		return profile.NewPointMass(centre, pc.EinsteinRadius), nil
	default:
		return nil, fmt.Errorf("%w: %q is not a mass profile", ErrUnknownProfile, pc.Type)
	}
}
