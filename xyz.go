/*
 * xyz.go, part of nebprep.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// XYZRead reads the first frame of the XYZ file xyzname and returns it as a
// Structure. Masses are filled from the internal table when the symbol is
// known.
func XYZRead(xyzname string) (*Structure, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	defer xyzfile.Close()
	s, err := xyzReadFrame(bufio.NewReader(xyzfile), xyzname)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	return s, nil
}

func xyzReadFrame(xyz *bufio.Reader, xyzname string) (*Structure, error) {
	line, err := xyz.ReadString('\n')
	if err != nil {
		return nil, ioError(fmt.Sprintf("ill-formatted XYZ file %s: %s", xyzname, err.Error()), "xyzReadFrame")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, ioError(fmt.Sprintf("ill-formatted XYZ file %s: bad atom count %q", xyzname, strings.TrimSpace(line)), "xyzReadFrame")
	}
	if _, err = xyz.ReadString('\n'); err != nil { //the comment line
		return nil, ioError(fmt.Sprintf("ill-formatted XYZ file %s: missing comment line", xyzname), "xyzReadFrame")
	}
	atoms := make([]*Atom, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			return nil, ioError(fmt.Sprintf("file %s: %d coordinate lines, %d expected", xyzname, i, natoms), "xyzReadFrame")
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, ioError(fmt.Sprintf("line %d in file %s ill-formed", i, xyzname), "xyzReadFrame")
		}
		atoms[i] = new(Atom)
		atoms[i].Symbol = fields[0]
		atoms[i].Name = fields[0]
		atoms[i].Mass = symbolMass[atoms[i].Symbol]
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, ioError(fmt.Sprintf("line %d in file %s: %s", i, xyzname, err.Error()), "xyzReadFrame")
			}
		}
	}
	return NewStructure(atoms, mat.NewDense(natoms, 3, coords))
}

// XYZWrite writes the Structure s to an XYZ file with the name xyzname, which
// is created, or overwritten if it exists.
func XYZWrite(xyzname string, s *Structure) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return errDecorate(err, "XYZWrite")
	}
	defer out.Close()
	if err := XYZFrameWrite(out, s, ""); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	return nil
}

// XYZFrameWrite writes s as one XYZ frame to out, with comment on the second
// line. It is the building block for multi-frame trajectory writers.
func XYZFrameWrite(out io.Writer, s *Structure, comment string) error {
	if s == nil {
		return invalidArgument("nil structure", "XYZFrameWrite")
	}
	if _, err := fmt.Fprintf(out, "%-4d\n%s\n", s.Len(), comment); err != nil {
		return errDecorate(err, "XYZFrameWrite")
	}
	for i := 0; i < s.Len(); i++ {
		x, y, z := s.Coord(i)
		if _, err := fmt.Fprintf(out, "%-2s  %12.6f %12.6f %12.6f\n", s.Atom(i).Symbol, x, y, z); err != nil {
			return errDecorate(err, "XYZFrameWrite")
		}
	}
	return nil
}
