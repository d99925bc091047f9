/*
 * idpp.go, part of nebprep.
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

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/chemtools/nebprep"
)

//idppRelax moves the interior images of the path from their linear guess to
//a minimum of the image-dependent pair potential: for each image, the target
//interatomic distances are interpolated linearly between the endpoint
//distances, and the image is relaxed against
//
//	S = sum_{i<j} (d_target - d_ij)^2 / d_ij^4
//
//by capped steepest descent. The short-range 1/d^4 weight is what pushes
//clashing atoms apart. Endpoints are never touched, neither are frozen atoms.
func (P *Path) idppRelax(o *Options) {
	ni := len(P.images)
	if ni <= 2 || P.images[0].Len() < 2 {
		return
	}
	d0 := pairDistances(P.images[0])
	d1 := pairDistances(P.images[ni-1])
	target := mat.NewDense(len(d0), len(d0), nil)
	for k := 1; k < ni-1; k++ {
		t := float64(k) / float64(ni-1)
		for i := range d0 {
			for j := range d0 {
				target.Set(i, j, (1-t)*d0[i][j]+t*d1[i][j])
			}
		}
		descend(P.images[k], target, o)
	}
}

func pairDistances(s *nebprep.Structure) [][]float64 {
	n := s.Len()
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			d[i][j] = s.Distance(i, j)
			d[j][i] = d[i][j]
		}
	}
	return d
}

//descend relaxes one image in place against its target pair distances.
func descend(s *nebprep.Structure, target *mat.Dense, o *Options) {
	n := s.Len()
	c := s.Coords()
	pinned := make([]bool, n)
	for _, i := range s.Frozen() {
		pinned[i] = true
	}
	grad := mat.NewDense(n, 3, nil)
	for it := 0; it < o.idppMaxIter; it++ {
		grad.Zero()
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				dx := c.At(i, 0) - c.At(j, 0)
				dy := c.At(i, 1) - c.At(j, 1)
				dz := c.At(i, 2) - c.At(j, 2)
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				if d < 1e-8 { //fused atoms give no direction to push along
					continue
				}
				w := 1 / (d * d * d * d)
				g := -2 * w * (target.At(i, j) - d) / d
				grad.Set(i, 0, grad.At(i, 0)+g*dx)
				grad.Set(i, 1, grad.At(i, 1)+g*dy)
				grad.Set(i, 2, grad.At(i, 2)+g*dz)
				grad.Set(j, 0, grad.At(j, 0)-g*dx)
				grad.Set(j, 1, grad.At(j, 1)-g*dy)
				grad.Set(j, 2, grad.At(j, 2)-g*dz)
			}
		}
		moved := 0.0
		for i := 0; i < n; i++ {
			if pinned[i] {
				continue
			}
			row := grad.RawRowView(i)
			step := make([]float64, 3)
			floats.AddScaled(step, -o.idppStep, row)
			if norm := floats.Norm(step, 2); norm > o.idppMaxMove {
				floats.Scale(o.idppMaxMove/norm, step)
			}
			c.Set(i, 0, c.At(i, 0)+step[0])
			c.Set(i, 1, c.At(i, 1)+step[1])
			c.Set(i, 2, c.At(i, 2)+step[2])
			moved = math.Max(moved, floats.Norm(step, 2))
		}
		if moved < o.idppTol {
			break
		}
	}
}
