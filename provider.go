/*
 * provider.go, part of nebprep.
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

	"gonum.org/v1/gonum/mat"
)

// Results holds quantities cached from a previously finished calculation on
// a Structure: the potential energy and, if available, the forces, one row
// per atom, in the same order as the atoms of the Structure the results were
// computed for.
type Results struct {
	Energy float64
	Forces *mat.Dense //N x 3, nil if forces were not computed
}

// Provider gives access to results computed for a Structure by an external
// engine, without this library knowing anything about the engine itself.
//
// Results returns the provider's cached results. The pointer is the
// provider's own storage: reordering operations permute the force rows
// through it, in lockstep with the atoms, so the cache never recomputes.
//
// RevalidateFor repoints the provider at a new Structure. It must only be
// called with pure relabelings of the geometry the results were computed on;
// for those the cached results remain valid, since reindexing atoms does not
// move them.
type Provider interface {
	Results() *Results
	RevalidateFor(s *Structure)
}

// SinglePoint is a Provider for the results of one finished single-point
// calculation, loaded from wherever the external engine left them.
type SinglePoint struct {
	res      *Results
	attached *Structure
}

// NewSinglePoint wraps res as the results computed for s and attaches it.
// It returns an error if res carries forces whose row count does not match
// the atom count of s.
func NewSinglePoint(s *Structure, res *Results) (*SinglePoint, error) {
	if s == nil || res == nil {
		return nil, invalidArgument("nil structure or results", "NewSinglePoint")
	}
	if res.Forces != nil {
		r, c := res.Forces.Dims()
		if c != 3 || r != s.Len() {
			return nil, invalidArgument(fmt.Sprintf("forces are %dx%d for %d atoms", r, c, s.Len()), "NewSinglePoint")
		}
	}
	p := &SinglePoint{res: res, attached: s}
	s.SetProvider(p)
	return p, nil
}

func (P *SinglePoint) Results() *Results {
	return P.res
}

func (P *SinglePoint) RevalidateFor(s *Structure) {
	P.attached = s
}

//Attached returns the Structure the cached results are currently considered
//valid for.
func (P *SinglePoint) Attached() *Structure {
	return P.attached
}
