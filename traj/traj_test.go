package traj

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"

	"github.com/chemtools/nebprep"
)

func makeH2(d float64) *nebprep.Structure {
	atoms := []*nebprep.Atom{
		{Symbol: "H", Name: "H"},
		{Symbol: "H", Name: "H"},
	}
	s, err := nebprep.NewStructure(atoms, mat.NewDense(2, 3, []float64{0, 0, 0, d, 0, 0}))
	if err != nil {
		panic(err.Error())
	}
	return s
}

func TestPlainWrite(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "path.traj")
	w, err := NewWriter(name, 2)
	if err != nil {
		Te.Fatal(err)
	}
	for _, d := range []float64{0.7, 1.2, 2.0} {
		if err := w.WNext(makeH2(d)); err != nil {
			Te.Fatal(err)
		}
	}
	if w.Frames() != 3 {
		Te.Errorf("wrote 3 frames, writer counted %d", w.Frames())
	}
	w.Close()
	content, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if got := strings.Count(string(content), "frame "); got != 3 {
		Te.Errorf("file holds %d frames, want 3", got)
	}
}

func TestZstdWrite(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "path.traj.zst")
	w, err := NewWriter(name, 2)
	if err != nil {
		Te.Fatal(err)
	}
	for _, d := range []float64{0.7, 2.0} {
		if err := w.WNext(makeH2(d)); err != nil {
			Te.Fatal(err)
		}
	}
	w.Close()
	f, err := os.Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		Te.Fatal(err)
	}
	defer dec.Close()
	content, err := io.ReadAll(dec)
	if err != nil {
		Te.Fatal(err)
	}
	if got := strings.Count(string(content), "frame "); got != 2 {
		Te.Errorf("decompressed file holds %d frames, want 2", got)
	}
}

func TestWriterMisuse(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "path.traj")
	w, err := NewWriter(name, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(makeH2(1.0)); err == nil {
		Te.Error("frame with the wrong atom count accepted")
	}
	if err := w.WNext(nil); err == nil {
		Te.Error("nil structure accepted")
	}
	w.Close()
	w.Close() //idempotent
	if err := w.WNext(makeH2(1.0)); err == nil {
		Te.Error("write after Close accepted")
	}
	if _, err := NewWriter(name, 0); err == nil {
		Te.Error("writer for 0 atoms per frame accepted")
	}
}
