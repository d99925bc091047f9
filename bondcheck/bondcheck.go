/*Package bondcheck flags geometries containing physically implausible
interatomic distances. It is the default bond-sanity oracle behind
interp.Checker: interpolation between two valid endpoints happily drives atoms
through each other, and this is the check that catches it before the band is
handed to an expensive path search.*/
package bondcheck

import (
	"log"

	"github.com/chemtools/nebprep"
)

// Tolerances decides whether a single geometry is plausible. A pair of atoms
// is flagged when its distance falls below MinScale times the sum of the two
// covalent radii; for species missing from the radius table, the AbsMin
// floor, in A, applies instead. A structure passes only if no pair at all is
// flagged.
type Tolerances struct {
	MinScale float64
	AbsMin   float64
	Verbose  bool //log every flagged pair
}

// Default returns the tolerances used when nothing is configured. A ratio
// under 0.75 of the covalent sum is well below any stretched transition-state
// bond and reliably means fused or crossing atoms.
func Default() *Tolerances {
	return &Tolerances{MinScale: 0.75, AbsMin: 0.4}
}

// Check reports whether the geometry of s passed all distance checks. false
// means at least one interatomic distance is outside the accepted physical
// range. It fulfills interp.Checker.
func (T *Tolerances) Check(s *nebprep.Structure) bool {
	ok := true
	n := s.Len()
	for i := 0; i < n-1; i++ {
		ri := nebprep.CovalentRadius(s.Atom(i).Symbol)
		for j := i + 1; j < n; j++ {
			d := s.Distance(i, j)
			rj := nebprep.CovalentRadius(s.Atom(j).Symbol)
			floor := (ri + rj) * T.MinScale
			if ri == 0 || rj == 0 {
				floor = T.AbsMin
			}
			if d < floor {
				if T.Verbose {
					log.Printf("abnormal contact %s%d-%s%d: %.3f A, accepted minimum %.3f A",
						s.Atom(i).Symbol, i, s.Atom(j).Symbol, j, d, floor)
				}
				ok = false
			}
		}
	}
	return ok
}
