//Package pathplot draws diagnostic plots for interpolated paths. The one
//plot that matters in practice is the trajectory of selected bond lengths
//across the images: a bond that collapses toward zero halfway along the path
//is immediately visible, long before a path search fails on it.
package pathplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/chemtools/nebprep"
	"github.com/chemtools/nebprep/interp"
)

func basicPathPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Image"
	p.Y.Label.Text = "Distance (A)"
	p.Add(plotter.NewGrid())
	return p
}

// BondTrajectory plots, for each atom pair in pairs, the interatomic distance
// across the images of path, and saves the result to plotname, with the
// format taken from its extension. Pair indices outside the structures'
// range are rejected before anything is drawn.
func BondTrajectory(path *interp.Path, pairs [][2]int, title, plotname string) error {
	if path == nil || path.Len() == 0 {
		return nebprep.NewInvalidArgument("given an empty path", "pathplot.BondTrajectory")
	}
	if len(pairs) == 0 {
		return nebprep.NewInvalidArgument("given no atom pairs to follow", "pathplot.BondTrajectory")
	}
	natoms := path.Image(0).Len()
	for _, pr := range pairs {
		if pr[0] < 0 || pr[0] >= natoms || pr[1] < 0 || pr[1] >= natoms {
			return nebprep.NewInvalidArgument(fmt.Sprintf("pair %d-%d out of [0, %d)", pr[0], pr[1], natoms), "pathplot.BondTrajectory")
		}
	}
	p := basicPathPlot(title)
	args := make([]interface{}, 0, 2*len(pairs))
	for _, pr := range pairs {
		pts := make(plotter.XYs, path.Len())
		for i := 0; i < path.Len(); i++ {
			s := path.Image(i)
			pts[i].X = float64(i)
			pts[i].Y = s.Distance(pr[0], pr[1])
		}
		name := fmt.Sprintf("%s%d-%s%d", path.Image(0).Atom(pr[0]).Symbol, pr[0],
			path.Image(0).Atom(pr[1]).Symbol, pr[1])
		args = append(args, name, pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname)
}
