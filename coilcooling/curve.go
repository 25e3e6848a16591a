package coilcooling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Curve は性能曲線。一変数の曲線は y を無視する。
type Curve interface {
	Value(x, y float64) float64
}

/*
性能曲線の入力・出力の範囲。

	Notes:
		MinX == MaxX の場合、その変数の範囲は制限しない。
		MinOut, MaxOut が nil の場合、出力は制限しない。
*/
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinOut     *float64
	MaxOut     *float64
}

func (b Bounds) clampX(x float64) float64 {
	return clampRange(x, b.MinX, b.MaxX)
}

func (b Bounds) clampY(y float64) float64 {
	return clampRange(y, b.MinY, b.MaxY)
}

func (b Bounds) clampOut(v float64) float64 {
	if b.MinOut != nil {
		v = math.Max(v, *b.MinOut)
	}
	if b.MaxOut != nil {
		v = math.Min(v, *b.MaxOut)
	}
	return v
}

func clampRange(v, lo, hi float64) float64 {
	if hi <= lo {
		return v
	}
	return math.Min(math.Max(v, lo), hi)
}

// Linear : C1 + C2*x
type Linear struct {
	C1, C2 float64
	Bounds
}

func (c *Linear) Value(x, _ float64) float64 {
	x = c.clampX(x)
	return c.clampOut(c.C1 + c.C2*x)
}

// Quadratic : C1 + C2*x + C3*x^2
type Quadratic struct {
	C1, C2, C3 float64
	Bounds
}

func (c *Quadratic) Value(x, _ float64) float64 {
	x = c.clampX(x)
	return c.clampOut(c.C1 + x*(c.C2+x*c.C3))
}

// Cubic : C1 + C2*x + C3*x^2 + C4*x^3
type Cubic struct {
	C1, C2, C3, C4 float64
	Bounds
}

func (c *Cubic) Value(x, _ float64) float64 {
	x = c.clampX(x)
	return c.clampOut(c.C1 + x*(c.C2+x*(c.C3+x*c.C4)))
}

// Biquadratic : C1 + C2*x + C3*x^2 + C4*y + C5*y^2 + C6*x*y
type Biquadratic struct {
	C1, C2, C3, C4, C5, C6 float64
	Bounds
}

func (c *Biquadratic) Value(x, y float64) float64 {
	x = c.clampX(x)
	y = c.clampY(y)
	return c.clampOut(c.C1 + c.C2*x + c.C3*x*x + c.C4*y + c.C5*y*y + c.C6*x*y)
}

// CurvePoint は性能表の1点。一変数の場合 Y は使用しない。
type CurvePoint struct {
	X, Y  float64
	Value float64
}

/*
性能表から二次曲線の係数を最小二乗法で求める。

	Args:
		points: 性能表, 3点以上

	Returns:
		二次曲線（入力範囲は性能表の範囲とする）
*/
func FitQuadratic(points []CurvePoint) (*Quadratic, error) {
	c, err := fitCurve(points, 3, func(p CurvePoint) []float64 {
		return []float64{1, p.X, p.X * p.X}
	})
	if err != nil {
		return nil, err
	}
	return &Quadratic{C1: c[0], C2: c[1], C3: c[2], Bounds: boundsOf(points)}, nil
}

// FitCubic は性能表から三次曲線の係数を最小二乗法で求める。
func FitCubic(points []CurvePoint) (*Cubic, error) {
	c, err := fitCurve(points, 4, func(p CurvePoint) []float64 {
		return []float64{1, p.X, p.X * p.X, p.X * p.X * p.X}
	})
	if err != nil {
		return nil, err
	}
	return &Cubic{C1: c[0], C2: c[1], C3: c[2], C4: c[3], Bounds: boundsOf(points)}, nil
}

/*
性能表から双二次曲線の係数を最小二乗法で求める。

	Notes:
		x は入口湿球温度、y は凝縮器入口温度を想定する。
*/
func FitBiquadratic(points []CurvePoint) (*Biquadratic, error) {
	c, err := fitCurve(points, 6, func(p CurvePoint) []float64 {
		return []float64{1, p.X, p.X * p.X, p.Y, p.Y * p.Y, p.X * p.Y}
	})
	if err != nil {
		return nil, err
	}
	return &Biquadratic{C1: c[0], C2: c[1], C3: c[2], C4: c[3], C5: c[4], C6: c[5], Bounds: boundsOf(points)}, nil
}

func fitCurve(points []CurvePoint, n int, row func(CurvePoint) []float64) ([]float64, error) {
	if len(points) < n {
		return nil, fmt.Errorf("%w: %d points given, at least %d required for curve fit", ErrInvalidInput, len(points), n)
	}

	a := mat.NewDense(len(points), n, nil)
	b := mat.NewVecDense(len(points), nil)
	for i, p := range points {
		a.SetRow(i, row(p))
		b.SetVec(i, p.Value)
	}

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("%w: curve fit: %v", ErrInvalidInput, err)
	}
	return mat.Col(nil, 0, &c), nil
}

func boundsOf(points []CurvePoint) Bounds {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return Bounds{
		MinX: floats.Min(xs), MaxX: floats.Max(xs),
		MinY: floats.Min(ys), MaxY: floats.Max(ys),
	}
}

/*
定格条件における曲線の値が 1.0 から外れていないかを確認する。

	Returns:
		許容範囲内であれば true
*/
func ratedValueOK(c Curve, x, y float64) bool {
	return scalar.EqualWithinAbs(c.Value(x, y), 1.0, 0.1)
}
