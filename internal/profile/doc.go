// Package profile provides parametric light and mass profiles.
//
// Each light profile implements [lens.LightProfile] and each mass profile
// implements [lens.MassProfile]. Profiles are immutable value types, so two
// profiles constructed with the same parameters compare equal.
//
//   - [Sersic]: elliptical Sersic light profile
//   - [Gaussian]: spherical Gaussian light profile
//   - [Isothermal]: singular isothermal sphere mass profile
//   - [PointMass]: point mass lens
package profile
