/*
 * swap.go, part of nebprep.
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

import "fmt"

// SwapIndices returns a new Structure in which atoms A and B have exchanged
// indices, with every other atom unchanged. If the structure carries a
// provider with cached forces, the corresponding force rows are exchanged in
// the same operation, so forces stay aligned with the atoms, and the provider
// is re-associated with the returned Structure: a swap only relabels atoms,
// the physical geometry is unchanged, so previously computed energies and
// forces remain valid and are not recomputed.
//
// m can be a *Structure or a File name. The input Structure is not modified.
// Indices out of [0, N) are rejected before anything is built. A == B is
// allowed and returns a plain copy.
func SwapIndices(m Source, A, B int) (*Structure, error) {
	s, err := m.Resolve()
	if err != nil {
		return nil, errDecorate(err, "SwapIndices")
	}
	n := s.Len()
	if A < 0 || A >= n || B < 0 || B >= n {
		return nil, invalidArgument(fmt.Sprintf("atom indices %d, %d must be in [0, %d)", A, B, n), "SwapIndices")
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	idx[A], idx[B] = idx[B], idx[A]
	return s.reorder(idx), nil
}

// ReindexAll applies a full reindexing to a structure: the atom at position i
// of the result is the atom newIndices[i] of the input. The permutation is
// applied as a sequence of pairwise swaps through SwapIndices, so attached
// forces and the cached-result provider stay aligned at every intermediate
// step, exactly as for a single swap.
//
// newIndices must have one entry per atom and contain every index in [0, N)
// exactly once. This is checked before any swap happens; a violation returns
// an error for which IsInvalidPermutation is true and leaves nothing mutated.
func ReindexAll(m Source, newIndices []int) (*Structure, error) {
	s, err := m.Resolve()
	if err != nil {
		return nil, errDecorate(err, "ReindexAll")
	}
	n := s.Len()
	if len(newIndices) != n {
		return nil, invalidPermutation(fmt.Sprintf("got %d indices for %d atoms", len(newIndices), n), "ReindexAll")
	}
	seen := make([]bool, n)
	for k, j := range newIndices {
		if j < 0 || j >= n {
			return nil, invalidPermutation(fmt.Sprintf("index %d at position %d out of [0, %d)", j, k, n), "ReindexAll")
		}
		if seen[j] {
			return nil, invalidPermutation(fmt.Sprintf("index %d appears more than once", j), "ReindexAll")
		}
		seen[j] = true
	}
	//where[a] is the current position of input atom a. Tracking positions
	//explicitly, and comparing indices by value, guarantees each atom is
	//placed exactly once and the loop terminates after at most n-1 swaps.
	where := make([]int, n)
	for i := range where {
		where[i] = i
	}
	cur := s
	at := make([]int, n) //atom at each position, by input index
	copy(at, where)
	for i, want := range newIndices {
		j := where[want]
		if j == i {
			continue
		}
		cur, err = SwapIndices(cur, i, j)
		if err != nil {
			return nil, errDecorate(err, "ReindexAll")
		}
		displaced := at[i]
		at[i], at[j] = at[j], displaced
		where[want] = i
		where[displaced] = j
	}
	if cur == s { //identity permutation: still hand back a fresh copy
		cur = s.Copy()
	}
	return cur, nil
}
