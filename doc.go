/*
 * doc.go, part of nebprep.
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

/*Package nebprep prepares molecular structures for reaction-path (NEB)
searches. It provides atom and structure types, reading and writing of XYZ
files, reordering of atom indices with previously computed results kept
aligned, and, in its subpackages, generation and geometric validation of
interpolated paths between two endpoint structures.

	**Capabilities**

    Reads/writes XYZ files.

    Swaps pairs of atom indices in a structure, keeping any attached
	per-atom forces and cached single-point results aligned with the
	new ordering, without triggering recomputation.

    Applies a full reindexing (an arbitrary permutation of atom order)
	as a sequence of pairwise swaps.

    Interpolates paths between two endpoint geometries, linearly or with
	the image-dependent pair potential (IDPP), and checks every image for
	implausible interatomic distances (subpackages interp and bondcheck).

    Writes interpolated paths to multi-frame trajectory files, optionally
	zstd-compressed (subpackage traj), and plots bond-length trajectories
	across a path (subpackage pathplot).

All position units are Angstroms, all operations are synchronous, and all
reordering operations return new structures rather than mutating their input.
*/
package nebprep
