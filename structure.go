/*
 * structure.go, part of nebprep.
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

	"gonum.org/v1/gonum/mat"
)

//Atom contains the per-atom information except for the coordinates, which are
//kept in a matrix in the Structure so geometric operations work on all atoms
//at once.
type Atom struct {
	Symbol string
	Name   string //a label, if different from the element symbol
	Tag    int    //an integer the caller might want to keep attached to the atom
	Mass   float64
	Charge float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("nebprep: attempted to copy a nil Atom")
	}
	newat := new(Atom)
	*newat = *A
	return newat
}

// Structure is an atomic/molecular model: an ordered set of atoms, their
// Cartesian coordinates in A (one row per atom), an optional periodic cell
// with its boundary flags, optional fixed-atom constraints, and an optional
// Provider holding previously computed results for this exact geometry.
//
// All reordering operations on a Structure return a new Structure; the
// original is never mutated.
type Structure struct {
	atoms  []*Atom
	coords *mat.Dense //N x 3
	cell   *mat.Dense //3 x 3 lattice vectors as rows, nil for no cell
	pbc    [3]bool
	frozen []int //indices of atoms constrained not to move
	prov   Provider
}

// NewStructure builds a Structure from atoms and an N x 3 coordinate matrix.
// It returns an error if either is nil or the dimensions disagree with the
// number of atoms.
func NewStructure(atoms []*Atom, coords *mat.Dense) (*Structure, error) {
	if atoms == nil {
		return nil, invalidArgument("nil atoms", "NewStructure")
	}
	if coords == nil {
		return nil, invalidArgument("nil coordinates", "NewStructure")
	}
	r, c := coords.Dims()
	if c != 3 || r != len(atoms) {
		return nil, invalidArgument(fmt.Sprintf("coordinates are %dx%d, want %dx3", r, c, len(atoms)), "NewStructure")
	}
	return &Structure{atoms: atoms, coords: coords}, nil
}

//Resolve implements Source, so a Structure can be given wherever a Source is
//expected.
func (S *Structure) Resolve() (*Structure, error) {
	return S, nil
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.atoms)
}

//Atom returns the Atom corresponding to the index i.
//Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i < 0 || i >= S.Len() {
		panic("nebprep: requested Atom out of bounds")
	}
	return S.atoms[i]
}

// Coords returns the structure's own N x 3 coordinate matrix, not a copy.
// Changes made through it are seen by the Structure.
func (S *Structure) Coords() *mat.Dense {
	return S.coords
}

// Coord returns the x, y, z coordinates, in A, of the atom at index i.
// Panics if out of range.
func (S *Structure) Coord(i int) (x, y, z float64) {
	if i < 0 || i >= S.Len() {
		panic("nebprep: requested coordinates out of bounds")
	}
	return S.coords.At(i, 0), S.coords.At(i, 1), S.coords.At(i, 2)
}

// Distance returns the Euclidean distance, in A, between atoms i and j.
// Panics if either index is out of range.
func (S *Structure) Distance(i, j int) float64 {
	xi, yi, zi := S.Coord(i)
	xj, yj, zj := S.Coord(j)
	return math.Sqrt((xi-xj)*(xi-xj) + (yi-yj)*(yi-yj) + (zi-zj)*(zi-zj))
}

//Cell returns the 3x3 lattice-vector matrix, or nil if the structure is not
//periodic. SetCell stores a copy of the given matrix.
func (S *Structure) Cell() *mat.Dense {
	return S.cell
}

func (S *Structure) SetCell(cell *mat.Dense) error {
	if cell == nil {
		S.cell = nil
		return nil
	}
	r, c := cell.Dims()
	if r != 3 || c != 3 {
		return invalidArgument(fmt.Sprintf("cell is %dx%d, want 3x3", r, c), "SetCell")
	}
	S.cell = mat.DenseCopyOf(cell)
	return nil
}

//PBC returns the periodic-boundary flags for the 3 lattice directions.
func (S *Structure) PBC() [3]bool {
	return S.pbc
}

func (S *Structure) SetPBC(pbc [3]bool) {
	S.pbc = pbc
}

//Frozen returns the indices of the atoms constrained not to move, or nil.
func (S *Structure) Frozen() []int {
	return S.frozen
}

func (S *Structure) SetFrozen(indices []int) {
	S.frozen = indices
}

//Provider returns the computed-result provider attached to the structure, or
//nil if none is attached.
func (S *Structure) Provider() Provider {
	return S.prov
}

// SetProvider attaches a computed-result provider to the structure. The
// provider's cached results are taken to belong to this exact geometry; it is
// the caller's responsibility that they do.
func (S *Structure) SetProvider(p Provider) {
	S.prov = p
}

//Copy returns a deep copy of the structure. The provider reference, if any,
//is shared, not copied: cached results belong to the geometry, and the copy
//has the same geometry.
func (S *Structure) Copy() *Structure {
	newS := new(Structure)
	newS.atoms = make([]*Atom, S.Len())
	for key, val := range S.atoms {
		newS.atoms[key] = val.Copy()
	}
	newS.coords = mat.DenseCopyOf(S.coords)
	if S.cell != nil {
		newS.cell = mat.DenseCopyOf(S.cell)
	}
	newS.pbc = S.pbc
	if S.frozen != nil {
		newS.frozen = make([]int, len(S.frozen))
		copy(newS.frozen, S.frozen)
	}
	newS.prov = S.prov
	return newS
}

// reorder returns a new Structure whose atom at position i is the receiver's
// atom idx[i]. Atoms, coordinates and, if a provider with cached forces is
// attached, the force rows are all reordered in this one operation so no
// caller can ever observe them misaligned. The provider is carried over to
// the new Structure and revalidated for it: a pure relabeling does not change
// the physical geometry, so its cached results stay valid.
//
// idx must be a bijection over [0, Len()); callers validate before calling.
func (S *Structure) reorder(idx []int) *Structure {
	n := S.Len()
	atoms := make([]*Atom, n)
	coords := mat.NewDense(n, 3, nil)
	for i, j := range idx {
		atoms[i] = S.atoms[j].Copy()
		coords.SetRow(i, S.coords.RawRowView(j))
	}
	newS := &Structure{atoms: atoms, coords: coords, pbc: S.pbc}
	if S.cell != nil {
		newS.cell = mat.DenseCopyOf(S.cell)
	}
	if S.frozen != nil {
		newS.frozen = make([]int, len(S.frozen))
		copy(newS.frozen, S.frozen)
	}
	if S.prov != nil {
		if res := S.prov.Results(); res != nil && res.Forces != nil {
			old := mat.DenseCopyOf(res.Forces)
			for i, j := range idx {
				res.Forces.SetRow(i, old.RawRowView(j))
			}
		}
		newS.prov = S.prov
		S.prov.RevalidateFor(newS)
	}
	return newS
}

// Source is anything that can yield a Structure: an in-memory *Structure or a
// File name to be read from disk. Operations in this library take Sources so
// callers can hand either form transparently.
type Source interface {
	Resolve() (*Structure, error)
}

//File is the name of an XYZ file to be read when the Source is resolved.
type File string

func (f File) Resolve() (*Structure, error) {
	s, err := XYZRead(string(f))
	if err != nil {
		return nil, errDecorate(err, "File.Resolve")
	}
	return s, nil
}
