/*Package traj writes ordered sequences of structures to multi-frame XYZ
trajectory files, the format consumed downstream by path-search setups and by
most visualizers. Files with a ".zst" suffix are transparently compressed with
zstd; anything else is written as plain text.*/
package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/chemtools/nebprep"
)

//Writer writes one Structure at a time, in order, to a trajectory file. It
//must be Closed when done, on every exit path; an unclosed compressed
//trajectory is a corrupt one.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	frames    int
	writeable bool
}

//bufio.Writer does not Close, so plain-text trajectories get wrapped in this
//to give both formats the same shutdown path.
type flushCloser struct {
	*bufio.Writer
}

func (b flushCloser) Close() error {
	return b.Flush()
}

// NewWriter creates the trajectory file name for writing frames of natoms
// atoms each. Compression is chosen from the file name: ".zst" means zstd,
// anything else plain text.
func NewWriter(name string, natoms int) (*Writer, error) {
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("%d atoms per frame requested", natoms), name, []string{"NewWriter"}, true}
	}
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	if strings.HasSuffix(strings.ToLower(name), ".zst") {
		W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			W.f.Close()
			return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
		}
	} else {
		W.h = flushCloser{bufio.NewWriter(W.f)}
	}
	W.natoms = natoms
	W.filename = name
	W.writeable = true
	return W, nil
}

// WNext writes s as the next frame of the trajectory. Every frame must have
// the atom count the writer was created with.
func (W *Writer) WNext(s *nebprep.Structure) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if s == nil {
		return Error{NilStructure, W.filename, []string{"WNext"}, true}
	}
	if s.Len() != W.natoms {
		return Error{fmt.Sprintf("%d atoms given, but %d expected", s.Len(), W.natoms), W.filename, []string{"WNext"}, true}
	}
	err := nebprep.XYZFrameWrite(W.h, s, fmt.Sprintf("frame %d", W.frames))
	if err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	W.frames++
	return nil
}

//Len returns the number of atoms per frame.
func (W *Writer) Len() int {
	return W.natoms
}

//Frames returns the number of frames written so far.
func (W *Writer) Frames() int {
	return W.frames
}

//Close flushes and closes the trajectory. It is safe to call on a nil or
//already-closed Writer, so it can sit in a defer next to the NewWriter call.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

//Error is the error type for trajectory writing. It fulfills nebprep.Error.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("traj file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries
	//to alter the receiver, it works, since err.deco is a slice, and hence a
	//pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file the failing trajectory was associated with.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniWrite = "Writer uninitialized or already closed"
	UnableToOpen   = "Unable to open file"
	NilStructure   = "Given nil structure"
)
