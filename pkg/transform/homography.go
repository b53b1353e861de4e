package transform

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/echorobotics/go-so100/pkg/calib"
)

// MinCorrespondences is the least number of (pixel, world) reference pairs a
// planar homography can be fit from.
const MinCorrespondences = 4

// FitWorkspaceHomography fits a planar homography from pixel coordinates to
// the table plane using the normalized direct linear transform, installs it
// on the Transformer, and returns the record for persistence.
//
// Returns ErrInsufficientPoints for fewer than MinCorrespondences pairs.
func (t *Transformer) FitWorkspaceHomography(points []calib.Correspondence) (*calib.HomographyRecord, error) {
	if len(points) < MinCorrespondences {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientPoints, len(points), MinCorrespondences)
	}

	src := make([][2]float64, len(points))
	dst := make([][2]float64, len(points))
	for i, p := range points {
		src[i] = [2]float64{p.PixelX, p.PixelY}
		dst[i] = [2]float64{p.WorldX, p.WorldY}
	}

	h, err := fitHomographyDLT(src, dst)
	if err != nil {
		return nil, err
	}

	rec := &calib.HomographyRecord{
		Matrix:          h,
		ReferencePoints: points,
		FitDate:         time.Now().Format(time.RFC3339),
	}
	t.homography = rec
	return rec, nil
}

// fitHomographyDLT solves for the 3x3 homography H with dst ~ H*src using the
// normalized DLT: Hartley normalization of both point sets, a 2n x 9 design
// matrix whose null space (smallest right singular vector) is the stacked H,
// then denormalization.
func fitHomographyDLT(src, dst [][2]float64) ([3][3]float64, error) {
	var zero [3][3]float64

	srcN, tSrc := normalizePoints(src)
	dstN, tDst := normalizePoints(dst)

	n := len(src)
	a := mat.NewDense(2*n, 9, nil)
	for i := 0; i < n; i++ {
		x, y := srcN[i][0], srcN[i][1]
		u, v := dstN[i][0], dstN[i][1]
		a.SetRow(2*i, []float64{-x, -y, -1, 0, 0, 0, u * x, u * y, u})
		a.SetRow(2*i+1, []float64{0, 0, 0, -x, -y, -1, v * x, v * y, v})
	}

	// Full V: with the minimum four pairs the design matrix is 8x9 and the
	// null-space vector only appears in the ninth column of the full basis.
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFullV); !ok {
		return zero, ErrFitFailed
	}
	var vt mat.Dense
	svd.VTo(&vt)

	// Null space: right singular vector for the smallest singular value.
	hn := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			hn.Set(i, j, vt.At(3*i+j, 8))
		}
	}

	// Denormalize: H = inv(Tdst) * Hn * Tsrc.
	var tDstInv mat.Dense
	if err := tDstInv.Inverse(tDst); err != nil {
		return zero, ErrFitFailed
	}
	var h mat.Dense
	h.Mul(&tDstInv, hn)
	h.Mul(&h, tSrc)

	scale := h.At(2, 2)
	if math.Abs(scale) < 1e-12 {
		return zero, ErrFitFailed
	}

	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = h.At(i, j) / scale
		}
	}
	return out, nil
}

// normalizePoints translates points to their centroid and scales them so the
// mean distance from origin is sqrt(2). Returns the normalized points and the
// 3x3 similarity transform that performs the normalization.
func normalizePoints(pts [][2]float64) ([][2]float64, *mat.Dense) {
	var cx, cy float64
	for _, p := range pts {
		cx += p[0]
		cy += p[1]
	}
	n := float64(len(pts))
	cx /= n
	cy /= n

	var meanDist float64
	for _, p := range pts {
		meanDist += math.Hypot(p[0]-cx, p[1]-cy)
	}
	meanDist /= n

	s := 1.0
	if meanDist > 1e-12 {
		s = math.Sqrt2 / meanDist
	}

	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{(p[0] - cx) * s, (p[1] - cy) * s}
	}

	tf := mat.NewDense(3, 3, []float64{
		s, 0, -s * cx,
		0, s, -s * cy,
		0, 0, 1,
	})
	return out, tf
}
