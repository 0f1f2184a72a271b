package unit

// Named constructors for common physical dimensions.

// Dimensionless returns the zero unit.
func Dimensionless() Unit { return Unit{} }

// Time returns s.
func Time() Unit { return Unit{Second: 1} }

// Length returns m.
func Length() Unit { return Unit{Meter: 1} }

// Mass returns kg.
func Mass() Unit { return Unit{Kilogram: 1} }

// Current returns A.
func Current() Unit { return Unit{Ampere: 1} }

// Temperature returns K.
func Temperature() Unit { return Unit{Kelvin: 1} }

// AmountOfSubstance returns mol.
func AmountOfSubstance() Unit { return Unit{Mol: 1} }

// LuminousIntensity returns cd.
func LuminousIntensity() Unit { return Unit{Candela: 1} }

// Area returns m^2.
func Area() Unit { return Unit{Meter: 2} }

// Volume returns m^3.
func Volume() Unit { return Unit{Meter: 3} }

// Frequency returns s^-1.
func Frequency() Unit { return Unit{Second: -1} }

// AngularVelocity returns s^-1.
func AngularVelocity() Unit { return Unit{Second: -1} }

// Velocity returns m s^-1.
func Velocity() Unit { return Unit{Second: -1, Meter: 1} }

// Force returns kg m s^-2 (newton).
func Force() Unit { return Unit{Second: -2, Meter: 1, Kilogram: 1} }

// Energy returns kg m^2 s^-2 (joule).
func Energy() Unit { return Unit{Second: -2, Meter: 2, Kilogram: 1} }

// Torque returns kg m^2 s^-2 (newton meter).
func Torque() Unit { return Energy() }

// Power returns kg m^2 s^-3 (watt).
func Power() Unit { return Unit{Second: -3, Meter: 2, Kilogram: 1} }

// Voltage returns kg m^2 A^-1 s^-3 (volt).
func Voltage() Unit { return Unit{Second: -3, Meter: 2, Kilogram: 1, Ampere: -1} }

// MagneticFlux returns kg m^2 A^-1 s^-2 (weber).
func MagneticFlux() Unit { return Unit{Second: -2, Meter: 2, Kilogram: 1, Ampere: -1} }

// MagneticFluxDensity returns kg A^-1 s^-2 (tesla).
func MagneticFluxDensity() Unit { return Unit{Second: -2, Kilogram: 1, Ampere: -1} }

// Inductance returns kg m^2 A^-2 s^-2 (henry).
func Inductance() Unit { return Unit{Second: -2, Meter: 2, Kilogram: 1, Ampere: -2} }

// Conductance returns kg^-1 m^-2 s^3 A^2 (siemens).
func Conductance() Unit { return Unit{Second: 3, Meter: -2, Kilogram: -1, Ampere: 2} }

// Resistance returns kg m^2 s^-3 A^-2 (ohm).
func Resistance() Unit { return Unit{Second: -3, Meter: 2, Kilogram: 1, Ampere: -2} }

// Conductivity returns kg^-1 m^-3 s^3 A^2 (siemens per meter).
func Conductivity() Unit { return Unit{Second: 3, Meter: -3, Kilogram: -1, Ampere: 2} }

// Resistivity returns kg m^3 s^-3 A^-2 (ohm meter).
func Resistivity() Unit { return Unit{Second: -3, Meter: 3, Kilogram: 1, Ampere: -2} }
