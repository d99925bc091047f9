/*
 * swap_test.go, part of nebprep.
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

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//makeWater returns a water molecule with the atoms tagged by their position,
//so reorderings can be verified by looking at the tags.
func makeWater() *Structure {
	atoms := []*Atom{
		{Symbol: "O", Name: "O", Tag: 0, Mass: symbolMass["O"]},
		{Symbol: "H", Name: "H", Tag: 1, Mass: symbolMass["H"]},
		{Symbol: "H", Name: "H", Tag: 2, Mass: symbolMass["H"]},
	}
	coords := mat.NewDense(3, 3, []float64{
		0.000, 0.000, 0.119,
		0.000, 0.763, -0.477,
		0.000, -0.763, -0.477,
	})
	s, err := NewStructure(atoms, coords)
	if err != nil {
		panic(err.Error())
	}
	return s
}

//withResults attaches a provider with a distinctive force matrix (row i is
//[i, 10i, 100i]) and energy to s, and returns the provider.
func withResults(s *Structure, energy float64) *SinglePoint {
	n := s.Len()
	f := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		f.SetRow(i, []float64{float64(i), float64(10 * i), float64(100 * i)})
	}
	p, err := NewSinglePoint(s, &Results{Energy: energy, Forces: f})
	if err != nil {
		panic(err.Error())
	}
	return p
}

func sameOrdering(a, b *Structure) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.Atom(i).Tag != b.Atom(i).Tag || a.Atom(i).Symbol != b.Atom(i).Symbol {
			return false
		}
		ax, ay, az := a.Coord(i)
		bx, by, bz := b.Coord(i)
		if ax != bx || ay != by || az != bz {
			return false
		}
	}
	return true
}

func TestSwapInvolution(Te *testing.T) {
	s := makeWater()
	p := withResults(s, -76.4)
	forcesBefore := mat.DenseCopyOf(p.Results().Forces)
	s2, err := SwapIndices(s, 1, 2)
	if err != nil {
		Te.Fatal(err)
	}
	s3, err := SwapIndices(s2, 1, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if !sameOrdering(s, s3) {
		Te.Error("swapping the same pair twice did not restore the original ordering")
	}
	if !mat.Equal(forcesBefore, p.Results().Forces) {
		Te.Error("swapping the same pair twice did not restore the force alignment")
	}
	fmt.Println("involution held for", s.Len(), "atoms")
}

func TestSwapKeepsOriginal(Te *testing.T) {
	s := makeWater()
	snapshot := s.Copy()
	s2, err := SwapIndices(s, 0, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if !sameOrdering(s, snapshot) {
		Te.Error("SwapIndices mutated its input structure")
	}
	if sameOrdering(s, s2) {
		Te.Error("SwapIndices returned an unchanged ordering")
	}
}

func TestForceAlignment(Te *testing.T) {
	s := makeWater()
	p := withResults(s, -76.4)
	cur := s
	var err error
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 1}} {
		cur, err = SwapIndices(cur, pair[0], pair[1])
		if err != nil {
			Te.Fatal(err)
		}
		f := p.Results().Forces
		r, _ := f.Dims()
		if r != cur.Len() {
			Te.Fatalf("forces have %d rows for %d atoms", r, cur.Len())
		}
		for i := 0; i < cur.Len(); i++ {
			//row i must still be the distinctive row of the atom now at i
			if f.At(i, 0) != float64(cur.Atom(i).Tag) {
				Te.Errorf("after swap %v, forces[%d] belongs to atom %v", pair, i, f.At(i, 0))
			}
		}
	}
}

func TestProviderCarryOver(Te *testing.T) {
	s := makeWater()
	p := withResults(s, -76.4)
	s2, err := SwapIndices(s, 1, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if s2.Provider() != Provider(p) {
		Te.Error("provider was not carried over to the swapped structure")
	}
	if p.Attached() != s2 {
		Te.Error("provider was not re-associated with the swapped structure")
	}
	if p.Results().Energy != -76.4 {
		Te.Error("cached energy changed across a pure relabeling")
	}
	f := p.Results().Forces
	if f.At(1, 0) != 2 || f.At(2, 0) != 1 {
		Te.Error("force rows were not swapped in lockstep with the atoms")
	}
}

func TestSwapRejects(Te *testing.T) {
	s := makeWater()
	snapshot := s.Copy()
	for _, pair := range [][2]int{{-1, 1}, {0, 3}, {5, -2}} {
		s2, err := SwapIndices(s, pair[0], pair[1])
		if err == nil {
			Te.Fatalf("indices %v accepted", pair)
		}
		if !IsInvalidArgument(err) {
			Te.Errorf("indices %v: error not classified as invalid argument: %v", pair, err)
		}
		if s2 != nil {
			Te.Errorf("indices %v: got a structure back together with the error", pair)
		}
	}
	if !sameOrdering(s, snapshot) {
		Te.Error("a rejected swap still mutated the structure")
	}
}

func TestIdentityReindex(Te *testing.T) {
	s := makeWater()
	withResults(s, -76.4)
	s2, err := ReindexAll(s, []int{0, 1, 2})
	if err != nil {
		Te.Fatal(err)
	}
	if s2 == s {
		Te.Error("identity reindex returned the input instead of a copy")
	}
	if !sameOrdering(s, s2) {
		Te.Error("identity reindex changed the atom ordering")
	}
}

func TestReindexAllCycle(Te *testing.T) {
	s := makeWater()
	p := withResults(s, -76.4)
	newIndices := []int{1, 2, 0} //a 3-cycle, the case a naive greedy skip gets wrong
	s2, err := ReindexAll(s, newIndices)
	if err != nil {
		Te.Fatal(err)
	}
	for i, want := range newIndices {
		if s2.Atom(i).Tag != want {
			Te.Errorf("position %d holds atom %d, want %d", i, s2.Atom(i).Tag, want)
		}
		if p.Results().Forces.At(i, 0) != float64(want) {
			Te.Errorf("force row %d belongs to atom %v, want %d", i, p.Results().Forces.At(i, 0), want)
		}
	}
	if p.Attached() != s2 {
		Te.Error("provider not re-associated with the reindexed structure")
	}
}

func TestReindexAllRejects(Te *testing.T) {
	s := makeWater()
	snapshot := s.Copy()
	bad := [][]int{
		{0, 1},          //too short
		{0, 1, 2, 3},    //too long
		{0, 1, 1},       //not a bijection
		{0, 1, 3},       //out of range
		{0, -1, 2},      //negative
	}
	for _, perm := range bad {
		s2, err := ReindexAll(s, perm)
		if err == nil {
			Te.Fatalf("permutation %v accepted", perm)
		}
		if !IsInvalidPermutation(err) {
			Te.Errorf("permutation %v: error not classified as invalid permutation: %v", perm, err)
		}
		if s2 != nil {
			Te.Errorf("permutation %v: got a structure back together with the error", perm)
		}
	}
	if !sameOrdering(s, snapshot) {
		Te.Error("a rejected permutation still mutated the structure")
	}
}

func TestXYZIO(Te *testing.T) {
	s := makeWater()
	name := filepath.Join(Te.TempDir(), "water.xyz")
	if err := XYZWrite(name, s); err != nil {
		Te.Fatal(err)
	}
	read, err := XYZRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if read.Len() != s.Len() {
		Te.Fatalf("read %d atoms, wrote %d", read.Len(), s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if read.Atom(i).Symbol != s.Atom(i).Symbol {
			Te.Errorf("atom %d read as %s", i, read.Atom(i).Symbol)
		}
		ax, ay, az := s.Coord(i)
		bx, by, bz := read.Coord(i)
		if math.Abs(ax-bx) > 1e-5 || math.Abs(ay-by) > 1e-5 || math.Abs(az-bz) > 1e-5 {
			Te.Errorf("atom %d coordinates moved across the round trip", i)
		}
	}
	fmt.Println("XYZ round trip done")
}

func TestFileSource(Te *testing.T) {
	s := makeWater()
	name := filepath.Join(Te.TempDir(), "water.xyz")
	if err := XYZWrite(name, s); err != nil {
		Te.Fatal(err)
	}
	s2, err := SwapIndices(File(name), 1, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if s2.Atom(1).Symbol != "H" || s2.Len() != 3 {
		Te.Error("swap on a file source returned the wrong structure")
	}
	if _, err = SwapIndices(File(filepath.Join(Te.TempDir(), "no-such.xyz")), 0, 1); err == nil {
		Te.Error("resolving a missing file did not fail")
	}
}
