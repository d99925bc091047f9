/*
 * options.go, part of nebprep.
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

package interp

//Options contains the options for the Interpolate and CheckInterpolation
//functions.
type Options struct {
	method   Method
	persist  bool
	trajName string
	verbose  bool
	//The following only matter for the IDPP method.
	idppMaxIter int
	idppStep    float64
	idppTol     float64
	idppMaxMove float64 //largest per-atom displacement per iteration, in A
}

// DefaultOptions returns reasonable options: linear interpolation, with the
// path persisted to "interpolation.traj", and IDPP settings that converge
// comfortably for small and mid-sized systems.
func DefaultOptions() *Options {
	r := new(Options)
	r.method = Linear
	r.persist = true
	r.trajName = "interpolation.traj"
	r.idppMaxIter = 200
	r.idppStep = 0.01
	r.idppTol = 1e-3
	r.idppMaxMove = 0.1
	return r
}

//Method returns the interpolation method, and sets it to a new value, if
//given.
func (O *Options) Method(m ...Method) Method {
	if len(m) > 0 {
		O.method = m[0]
	}
	return O.method
}

//Persist returns whether generated images are handed to the trajectory
//writer, and sets it, if given.
func (O *Options) Persist(b ...bool) bool {
	if len(b) > 0 {
		O.persist = b[0]
	}
	return O.persist
}

//TrajName returns the name of the trajectory file the path is persisted
//under, and sets it to a new value, if given a non-empty one.
func (O *Options) TrajName(n ...string) string {
	if len(n) > 0 && n[0] != "" {
		O.trajName = n[0]
	}
	return O.trajName
}

//Verbose returns whether per-image progress is logged, and sets it, if given.
func (O *Options) Verbose(b ...bool) bool {
	if len(b) > 0 {
		O.verbose = b[0]
	}
	return O.verbose
}
