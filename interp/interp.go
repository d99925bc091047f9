/*
 * interp.go, part of nebprep.
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

/*Package interp builds and validates interpolated paths between two endpoint
structures, the usual last step before handing a band of images to a NEB
search. A path is generated with a selectable method (plain linear, or the
image-dependent pair potential for band-ready input), every image is run
through a bond-sanity Checker, and the whole path can be persisted as a
trajectory file for visual inspection, whether or not it passed.*/
package interp

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/chemtools/nebprep"
	"github.com/chemtools/nebprep/traj"
)

//Method selects how intermediate images are generated.
type Method int

const (
	//Linear interpolates positions linearly between the endpoints. It is
	//deterministic and the better choice for surfacing crossed or fused
	//geometries, at the price of unphysical intermediate images.
	Linear Method = iota
	//IDPP relaxes the linear guess against the image-dependent pair
	//potential (Smidstrup et al., J. Chem. Phys. 140, 214106). It tends to
	//avoid atom clashes and is the preferred input for a path search, but
	//hides exactly the problems Linear exposes.
	IDPP
)

func (m Method) String() string {
	switch m {
	case Linear:
		return "linear"
	case IDPP:
		return "idpp"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod returns the Method named by s ("linear" or "idpp").
func ParseMethod(s string) (Method, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "idpp":
		return IDPP, nil
	}
	return Linear, nebprep.NewInvalidArgument(fmt.Sprintf("unknown interpolation method %q", s), "interp.ParseMethod")
}

// Checker is the bond-sanity oracle consumed by this package. Check returns
// false if the geometry of s contains at least one interatomic distance
// outside the accepted physical range, true if it passed all distance checks.
// The bondcheck subpackage has the default implementation.
type Checker interface {
	Check(s *nebprep.Structure) bool
}

// Path is an ordered sequence of structures connecting two endpoint
// geometries: image 0 is the initial endpoint, the last image is the final
// one and everything in between is generated. Paths are built fresh by
// Interpolate, consumed by Check or a downstream band optimizer, and then
// discarded; they hold no long-lived state.
type Path struct {
	images []*nebprep.Structure
}

//Len returns the number of images in the path, endpoints included.
func (P *Path) Len() int {
	return len(P.images)
}

//Image returns the image at position i. Panics if out of range.
func (P *Path) Image(i int) *nebprep.Structure {
	if i < 0 || i >= len(P.images) {
		panic("interp: requested image out of bounds")
	}
	return P.images[i]
}

// Check runs c on every image of the path, in order, and returns the logical
// AND of the verdicts: one flagged image makes the whole path invalid, no
// matter how many images after it pass. With verbose set, each image is
// reported as it is assessed.
func (P *Path) Check(c Checker, verbose bool) bool {
	ok, _ := P.sweep(c, nil, verbose)
	return ok
}

//frameWriter is the slice of the trajectory writer the sweep needs. Keeping
//it an interface keeps the persistence collaborator injectable.
type frameWriter interface {
	WNext(s *nebprep.Structure) error
}

//sweep is the single implementation behind Check and CheckInterpolation: one
//ordered pass over the images, checking each and, if t is not nil, writing
//each. Every image gets written regardless of its verdict, so a persisted
//path can be inspected to find exactly where it went wrong.
func (P *Path) sweep(c Checker, t frameWriter, verbose bool) (bool, error) {
	flag := true
	for i, im := range P.images {
		if verbose {
			log.Printf("assessing image %d of %d", i+1, len(P.images))
		}
		if !c.Check(im) {
			flag = false
		}
		if t != nil {
			if err := t.WNext(im); err != nil {
				return flag, errDecorate(err, "Path.sweep")
			}
		}
	}
	return flag, nil
}

// Interpolate builds a path of exactly nMax images between the endpoints:
// image 0 is initial, image nMax-1 is final, both unchanged, and the nMax-2
// intermediate images are generated over atom positions with o's Method.
// Species, tags, cell, periodicity and constraints of the intermediates are
// carried from the initial endpoint.
//
// initial and final can each be a *nebprep.Structure or a nebprep.File.
// nMax < 2, endpoints of different sizes, and endpoints whose species
// sequences disagree are all rejected before any image is built. A nil o
// means DefaultOptions().
func Interpolate(initial, final nebprep.Source, nMax int, o *Options) (*Path, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if nMax < 2 {
		return nil, nebprep.NewInvalidArgument(fmt.Sprintf("a path needs at least 2 images, got %d", nMax), "interp.Interpolate")
	}
	ini, err := initial.Resolve()
	if err != nil {
		return nil, errDecorate(err, "Interpolate")
	}
	fin, err := final.Resolve()
	if err != nil {
		return nil, errDecorate(err, "Interpolate")
	}
	n := ini.Len()
	if n != fin.Len() {
		return nil, nebprep.NewInvalidArgument(fmt.Sprintf("endpoints have %d and %d atoms", n, fin.Len()), "interp.Interpolate")
	}
	for i := 0; i < n; i++ {
		if ini.Atom(i).Symbol != fin.Atom(i).Symbol {
			return nil, nebprep.NewInvalidArgument(fmt.Sprintf("endpoints disagree on the species of atom %d: %s vs %s",
				i, ini.Atom(i).Symbol, fin.Atom(i).Symbol), "interp.Interpolate")
		}
	}
	images := make([]*nebprep.Structure, nMax)
	images[0] = ini.Copy()
	images[nMax-1] = fin.Copy()
	blend := mat.NewDense(n, 3, nil)
	tmp := mat.NewDense(n, 3, nil)
	for k := 1; k < nMax-1; k++ {
		im := ini.Copy()
		//the endpoint's cached results are not valid for a moved geometry
		im.SetProvider(nil)
		t := float64(k) / float64(nMax-1)
		blend.Scale(1-t, ini.Coords())
		tmp.Scale(t, fin.Coords())
		blend.Add(blend, tmp)
		im.Coords().Copy(blend)
		images[k] = im
	}
	p := &Path{images: images}
	if o.method == IDPP {
		p.idppRelax(o)
	}
	return p, nil
}

// CheckInterpolation interpolates nMax total images between initial and final
// and reports whether every one of them passes the bond sanity check c. The
// assembled path is returned together with the verdict; a geometrically
// invalid path is a normal false result, not an error.
//
// If o has Persist set (the default), every image is written, in order and
// regardless of its verdict, to the trajectory file named by o.TrajName()
// ("interpolation.traj" by default), ready for transfer to a NEB calculation
// or for inspection of a failed path. The writer is acquired before the first
// image is written and closed on every exit path, including mid-sweep write
// failures.
func CheckInterpolation(initial, final nebprep.Source, nMax int, c Checker, o *Options) (*Path, bool, error) {
	if o == nil {
		o = DefaultOptions()
	}
	p, err := Interpolate(initial, final, nMax, o)
	if err != nil {
		return nil, false, errDecorate(err, "CheckInterpolation")
	}
	var w frameWriter
	if o.persist {
		t, err := traj.NewWriter(o.trajName, p.Image(0).Len())
		if err != nil {
			return nil, false, errDecorate(err, "CheckInterpolation")
		}
		defer t.Close()
		w = t
	}
	flag, err := p.sweep(c, w, o.verbose)
	if err != nil {
		return p, false, errDecorate(err, "CheckInterpolation")
	}
	return p, flag, nil
}

func errDecorate(err error, caller string) error {
	return nebprep.Decorated(err, caller)
}
