/*
 * atomicdata.go, part of nebprep.
 *
 * Copyright 2024 The nebprep authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package nebprep

//Covalent radii in A, from DOI:10.1039/B801115J. Used by the bond-length
//sanity checks on interpolated geometries.
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.50, //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Se": 1.20,
	"Br": 1.20,
	"Pd": 1.39,
	"Ag": 1.45,
	"I":  1.39,
	"Pt": 1.36,
	"Au": 1.36,
}

//Standard atomic weights.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.0026,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.098,
	"Ca": 40.078,
	"Cr": 51.996,
	"Mn": 54.938,
	"Fe": 55.845,
	"Co": 58.933,
	"Ni": 58.693,
	"Cu": 63.546,
	"Zn": 65.38,
	"Se": 78.971,
	"Br": 79.904,
	"Pd": 106.42,
	"Ag": 107.87,
	"I":  126.90,
	"Pt": 195.08,
	"Au": 196.97,
}

// CovalentRadius returns the covalent radius, in A, for the element with the
// given symbol, or 0 if the element is not in the internal table.
func CovalentRadius(symbol string) float64 {
	return symbolCovrad[symbol]
}

// SymbolMass returns the standard atomic weight for the element with the given
// symbol, or 0 if the element is not in the internal table.
func SymbolMass(symbol string) float64 {
	return symbolMass[symbol]
}
