package galaxy

import (
	"fmt"
	"sync/atomic"

	"github.com/san-kum/lenslab/internal/lens"
)

var nextID atomic.Int64

// Pixelization describes the source-plane pixel grid an inversion
// reconstructs onto. The solver itself lives outside this module.
type Pixelization struct {
	Shape [2]int
}

// Regularization describes the smoothing applied to an inversion.
type Regularization struct {
	Coefficient float64
}

// Galaxy is a composition of light profiles, mass profiles and optional
// inversion/hyper components at a single redshift.
type Galaxy struct {
	Redshift       float64
	Pixelization   *Pixelization
	Regularization *Regularization
	Hyper          *HyperGalaxy

	// Aux carries named scalar metadata attached at build time.
	Aux map[string]float64

	// Hyper-image buffers, written between iterations by an external
	// fitting loop. Not part of galaxy equality.
	HyperModelImage        lens.Array
	HyperGalaxyImage       lens.Array
	BinnedHyperGalaxyImage lens.Array

	light []lens.LightProfile
	mass  []lens.MassProfile
	id    int64
}

// Builder assembles a Galaxy from typed components. Profiles keep their
// attachment order.
type Builder struct {
	redshift float64
	light    []lens.LightProfile
	mass     []lens.MassProfile
	pix      *Pixelization
	reg      *Regularization
	hyper    *HyperGalaxy
	aux      map[string]float64
}

func NewBuilder(redshift float64) *Builder {
	return &Builder{redshift: redshift}
}

func (b *Builder) WithLight(ps ...lens.LightProfile) *Builder {
	b.light = append(b.light, ps...)
	return b
}

func (b *Builder) WithMass(ps ...lens.MassProfile) *Builder {
	b.mass = append(b.mass, ps...)
	return b
}

func (b *Builder) WithPixelization(p Pixelization) *Builder {
	b.pix = &p
	return b
}

func (b *Builder) WithRegularization(r Regularization) *Builder {
	b.reg = &r
	return b
}

func (b *Builder) WithHyper(h HyperGalaxy) *Builder {
	b.hyper = &h
	return b
}

func (b *Builder) WithAux(name string, value float64) *Builder {
	if b.aux == nil {
		b.aux = make(map[string]float64)
	}
	b.aux[name] = value
	return b
}

// Build validates the component set and returns the galaxy. A pixelization
// without a regularization (or the reverse) is a configuration error.
func (b *Builder) Build() (*Galaxy, error) {
	if b.redshift <= 0 {
		return nil, fmt.Errorf("%w: got %f", lens.ErrRedshift, b.redshift)
	}
	if (b.pix == nil) != (b.reg == nil) {
		return nil, lens.ErrPixelizationPair
	}

	g := &Galaxy{
		Redshift:       b.redshift,
		Pixelization:   b.pix,
		Regularization: b.reg,
		Hyper:          b.hyper,
		Aux:            b.aux,
		light:          append([]lens.LightProfile(nil), b.light...),
		mass:           append([]lens.MassProfile(nil), b.mass...),
		id:             nextID.Add(1),
	}
	return g, nil
}

// ID is the process-unique identity assigned at build time. It is used for
// hashing and labelling and plays no part in equality.
func (g *Galaxy) ID() int64 { return g.id }

// LightProfiles returns the attached light profiles in attachment order.
func (g *Galaxy) LightProfiles() []lens.LightProfile { return g.light }

// MassProfiles returns the attached mass profiles in attachment order.
func (g *Galaxy) MassProfiles() []lens.MassProfile { return g.mass }

func (g *Galaxy) HasLightProfile() bool { return len(g.light) > 0 }
func (g *Galaxy) HasMassProfile() bool  { return len(g.mass) > 0 }
func (g *Galaxy) HasProfile() bool      { return g.HasLightProfile() || g.HasMassProfile() }
func (g *Galaxy) HasPixelization() bool { return g.Pixelization != nil }
func (g *Galaxy) HasHyper() bool        { return g.Hyper != nil }

// Equal reports value equality over redshift, pixelization, regularization,
// hyper galaxy and the ordered profile lists. Profiles are compared as
// interface values, so they must be comparable value types (the profile
// package's profiles all are).
func (g *Galaxy) Equal(o *Galaxy) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.Redshift != o.Redshift {
		return false
	}
	if !pixEqual(g.Pixelization, o.Pixelization) || !regEqual(g.Regularization, o.Regularization) {
		return false
	}
	if !hyperEqual(g.Hyper, o.Hyper) {
		return false
	}
	if len(g.light) != len(o.light) || len(g.mass) != len(o.mass) {
		return false
	}
	for i := range g.light {
		if g.light[i] != o.light[i] {
			return false
		}
	}
	for i := range g.mass {
		if g.mass[i] != o.mass[i] {
			return false
		}
	}
	return true
}

func pixEqual(a, b *Pixelization) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func regEqual(a, b *Regularization) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func hyperEqual(a, b *HyperGalaxy) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// ImageFromCoords sums the light profile images at each coordinate. With no
// light profiles the result is exact zeros sized from the coordinates.
func (g *Galaxy) ImageFromCoords(cs lens.Coords) lens.Array {
	if len(g.light) == 0 {
		return lens.Zeros(len(cs))
	}
	sum := g.light[0].ImageFromCoords(cs)
	for _, p := range g.light[1:] {
		sum = sum.Add(p.ImageFromCoords(cs))
	}
	return sum
}

// ImageFromGrid evaluates the summed light profile image on the grid's
// sub-grid and bins it to the native layout.
func (g *Galaxy) ImageFromGrid(gr *lens.Grid) lens.Array {
	if len(g.light) == 0 {
		return lens.Zeros(gr.Len())
	}
	return gr.BinArray(g.ImageFromCoords(gr.Coords()))
}

// ConvergenceFromGrid evaluates the summed convergence of the galaxy's mass
// profiles, binned to the native layout.
func (g *Galaxy) ConvergenceFromGrid(gr *lens.Grid) lens.Array {
	if len(g.mass) == 0 {
		return lens.Zeros(gr.Len())
	}
	cs := gr.Coords()
	sum := g.mass[0].ConvergenceFromCoords(cs)
	for _, p := range g.mass[1:] {
		sum = sum.Add(p.ConvergenceFromCoords(cs))
	}
	return gr.BinArray(sum)
}

// PotentialFromCoords sums the lensing potential at each coordinate. With
// no mass profiles the result is exact zeros.
func (g *Galaxy) PotentialFromCoords(cs lens.Coords) lens.Array {
	if len(g.mass) == 0 {
		return lens.Zeros(len(cs))
	}
	sum := g.mass[0].PotentialFromCoords(cs)
	for _, p := range g.mass[1:] {
		sum = sum.Add(p.PotentialFromCoords(cs))
	}
	return sum
}

// PotentialFromGrid evaluates the summed lensing potential, binned to the
// native layout.
func (g *Galaxy) PotentialFromGrid(gr *lens.Grid) lens.Array {
	if len(g.mass) == 0 {
		return lens.Zeros(gr.Len())
	}
	return gr.BinArray(g.PotentialFromCoords(gr.Coords()))
}

// DeflectionsFromCoords sums the deflection fields of the galaxy's mass
// profiles. With no mass profiles the result is exact zero vectors.
func (g *Galaxy) DeflectionsFromCoords(cs lens.Coords) lens.Coords {
	if len(g.mass) == 0 {
		return lens.ZeroCoords(len(cs))
	}
	sum := g.mass[0].DeflectionsFromCoords(cs)
	for _, p := range g.mass[1:] {
		sum = sum.Add(p.DeflectionsFromCoords(cs))
	}
	return sum
}

// DeflectionsFromGrid evaluates the summed deflection field on the sub-grid
// and bins it to the native layout.
func (g *Galaxy) DeflectionsFromGrid(gr *lens.Grid) lens.Coords {
	if len(g.mass) == 0 {
		return lens.ZeroCoords(gr.Len())
	}
	return gr.BinCoords(g.DeflectionsFromCoords(gr.Coords()))
}

// BlurredImage computes the profile image on the grid and on the blurring
// ring outside it, then asks the convolver to combine both into a single
// PSF-convolved image.
func (g *Galaxy) BlurredImage(gr *lens.Grid, conv lens.Convolver, blurring lens.Coords) (lens.Array, error) {
	image := g.ImageFromGrid(gr)
	blurImage := g.ImageFromCoords(blurring)
	return conv.Convolve(image, blurImage)
}

// Visibilities maps the profile image into the Fourier domain through the
// injected transformer.
func (g *Galaxy) Visibilities(gr *lens.Grid, tr lens.Transformer) (lens.Visibilities, error) {
	return tr.Visibilities(g.ImageFromGrid(gr))
}

// LuminosityWithinCircle sums the per-profile integrals. ok is false when
// the galaxy has no light profiles: the quantity is undefined, not zero.
func (g *Galaxy) LuminosityWithinCircle(radius float64) (float64, bool) {
	if len(g.light) == 0 {
		return 0, false
	}
	total := 0.0
	for _, p := range g.light {
		total += p.LuminosityWithinCircle(radius)
	}
	return total, true
}

func (g *Galaxy) LuminosityWithinEllipse(major float64) (float64, bool) {
	if len(g.light) == 0 {
		return 0, false
	}
	total := 0.0
	for _, p := range g.light {
		total += p.LuminosityWithinEllipse(major)
	}
	return total, true
}

// MassWithinCircle sums the per-profile angular masses. ok is false when the
// galaxy has no mass profiles.
func (g *Galaxy) MassWithinCircle(radius float64) (float64, bool) {
	if len(g.mass) == 0 {
		return 0, false
	}
	total := 0.0
	for _, p := range g.mass {
		total += p.MassWithinCircle(radius)
	}
	return total, true
}

func (g *Galaxy) MassWithinEllipse(major float64) (float64, bool) {
	if len(g.mass) == 0 {
		return 0, false
	}
	total := 0.0
	for _, p := range g.mass {
		total += p.MassWithinEllipse(major)
	}
	return total, true
}

// EinsteinRadius sums the Einstein radii of the mass profiles. For galaxies
// mixing differently oriented elliptical profiles this is approximate.
func (g *Galaxy) EinsteinRadius() (float64, bool) {
	if len(g.mass) == 0 {
		return 0, false
	}
	total := 0.0
	for _, p := range g.mass {
		total += p.EinsteinRadius()
	}
	return total, true
}

func (g *Galaxy) EinsteinMass() (float64, bool) {
	if len(g.mass) == 0 {
		return 0, false
	}
	total := 0.0
	for _, p := range g.mass {
		total += p.EinsteinMass()
	}
	return total, true
}
