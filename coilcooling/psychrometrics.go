package coilcooling

import (
	"fmt"
	"math"
)

// Psychrometrics は湿り空気の状態量を求める関数群。
type Psychrometrics interface {
	// 比エンタルピーと絶対湿度から乾球温度, degree C
	TdbFnHW(h, w float64) float64
	// 乾球温度と絶対湿度から比エンタルピー, J/kg(DA)
	HFnTdbW(tdb, w float64) float64
	// 乾球温度と比エンタルピーから絶対湿度, kg/kg(DA)
	WFnTdbH(tdb, h float64) float64
	// 乾球温度・絶対湿度・大気圧から湿球温度, degree C
	TwbFnTdbWPb(tdb, w, pb float64) float64
	// 比エンタルピーと大気圧から飽和温度, degree C
	TsatFnHPb(h, pb float64) float64
	// 露点温度と大気圧から絶対湿度, kg/kg(DA)
	WFnTdpPb(tdp, pb float64) float64
	// 大気圧・乾球温度・絶対湿度から空気の密度, kg/m3
	RhoAirFnPbTdbW(pb, tdb, w float64) float64
	// 乾球温度・絶対湿度・大気圧から相対湿度, -
	RhFnTdbWPb(tdb, w, pb float64) float64
	// 飽和水蒸気圧, Pa
	PsatFnTemp(t float64) float64
}

// MoistAir は Psychrometrics の既定の実装。
type MoistAir struct{}

var _ Psychrometrics = MoistAir{}

// 絶対湿度の下限値, kg/kg(DA)
const minHumRat = 1.0e-5

/*
乾球温度と絶対湿度から比エンタルピーを計算する。

	Args:
		tdb: 乾球温度, degree C
		w: 絶対湿度, kg/kg(DA)

	Returns:
		比エンタルピー, J/kg(DA)
*/
func (MoistAir) HFnTdbW(tdb, w float64) float64 {
	w = math.Max(w, minHumRat)
	return 1.00484e3*tdb + w*(2.50094e6+1.85895e3*tdb)
}

/*
比エンタルピーと絶対湿度から乾球温度を計算する。

	Args:
		h: 比エンタルピー, J/kg(DA)
		w: 絶対湿度, kg/kg(DA)

	Returns:
		乾球温度, degree C
*/
func (MoistAir) TdbFnHW(h, w float64) float64 {
	w = math.Max(w, minHumRat)
	return (h - 2.50094e6*w) / (1.00484e3 + 1.85895e3*w)
}

/*
乾球温度と比エンタルピーから絶対湿度を計算する。

	Notes:
		負となる場合は下限値に丸める。
*/
func (MoistAir) WFnTdbH(tdb, h float64) float64 {
	w := (h - 1.00484e3*tdb) / (2.50094e6 + 1.85895e3*tdb)
	return math.Max(w, minHumRat)
}

/*
飽和水蒸気圧を計算する。

	Args:
		t: 空気温度, degree C

	Returns:
		飽和水蒸気圧, Pa
*/
func (MoistAir) PsatFnTemp(t float64) float64 {
	// 絶対温度の計算
	tk := t + 273.15

	const a1 = -6096.9385
	const a2 = 21.2409642
	const a3 = -0.02711193
	const a4 = 0.00001673952
	const a5 = 2.433502
	const b1 = -6024.5282
	const b2 = 29.32707
	const b3 = 0.010613863
	const b4 = -0.000013198825
	const b5 = -0.49382577

	if t >= 0.0 {
		return math.Exp(a1/tk + a2 + a3*tk + a4*tk*tk + a5*math.Log(tk))
	}
	return math.Exp(b1/tk + b2 + b3*tk + b4*tk*tk + b5*math.Log(tk))
}

/*
露点温度から絶対湿度を計算する。

	Args:
		tdp: 露点温度, degree C
		pb: 大気圧, Pa

	Returns:
		絶対湿度, kg/kg(DA)
*/
func (m MoistAir) WFnTdpPb(tdp, pb float64) float64 {
	pv := m.PsatFnTemp(tdp)
	// 沸点以上では水蒸気分圧が大気圧を超えるため、大気圧の直下に抑える
	pv = math.Min(pv, 0.99999*pb)
	return math.Max(0.62198*pv/(pb-pv), minHumRat)
}

/*
空気の密度を計算する。

	Args:
		pb: 大気圧, Pa
		tdb: 乾球温度, degree C
		w: 絶対湿度, kg/kg(DA)

	Returns:
		密度, kg/m3
*/
func (MoistAir) RhoAirFnPbTdbW(pb, tdb, w float64) float64 {
	return pb / (287.0 * (tdb + 273.15) * (1.0 + 1.6077687*math.Max(w, minHumRat)))
}

/*
相対湿度を計算する。

	Returns:
		相対湿度, - (0.0 ～ 1.0 に丸める)
*/
func (m MoistAir) RhFnTdbWPb(tdb, w, pb float64) float64 {
	pv := pb * w / (0.62198 + w)
	rh := pv / m.PsatFnTemp(tdb)
	return math.Min(math.Max(rh, 0.0), 1.0)
}

/*
比エンタルピーから飽和温度を求める。

	Notes:
		飽和曲線上の比エンタルピーが h となる温度を二分法で求める。
		収束しない場合も最良の推定値を返す。
*/
func (m MoistAir) TsatFnHPb(h, pb float64) float64 {
	f := func(t float64) float64 {
		return m.HFnTdbW(t, m.WFnTdpPb(t, pb)) - h
	}

	lo, hi := -60.0, m.boilingTemp(pb)-1.0
	if f(lo) >= 0.0 {
		return lo
	}
	if f(hi) <= 0.0 {
		return hi
	}

	t, _ := find_root(f, lo, hi, 1.0e-7, 200)
	return t
}

/*
湿球温度を求める。

	Args:
		tdb: 乾球温度, degree C
		w: 絶対湿度, kg/kg(DA)
		pb: 大気圧, Pa

	Returns:
		湿球温度, degree C

	Notes:
		ASHRAE Fundamentals の湿球温度の関係式を二分法で解く。
*/
func (m MoistAir) TwbFnTdbWPb(tdb, w, pb float64) float64 {
	w = math.Max(w, minHumRat)
	if w >= m.WFnTdpPb(tdb, pb) {
		return tdb
	}

	f := func(twb float64) float64 {
		ws := m.WFnTdpPb(twb, pb)
		var wCalc float64
		if twb >= 0.0 {
			wCalc = ((2501.0-2.326*twb)*ws - 1.006*(tdb-twb)) / (2501.0 + 1.86*tdb - 4.186*twb)
		} else {
			wCalc = ((2830.0-0.24*twb)*ws - 1.006*(tdb-twb)) / (2830.0 + 1.86*tdb - 2.1*twb)
		}
		return wCalc - w
	}

	lo := -60.0
	if f(lo) >= 0.0 {
		return lo
	}

	twb, _ := find_root(f, lo, tdb, 1.0e-7, 200)
	return twb
}

// 大気圧 pb における沸点, degree C
func (m MoistAir) boilingTemp(pb float64) float64 {
	f := func(t float64) float64 {
		return m.PsatFnTemp(t) - pb
	}
	t, _ := find_root(f, -60.0, 200.0, 1.0e-6, 200)
	return t
}

/*
二分法で f(x) = 0 の根を求める。

	Returns:
		根の推定値
		区間内に根が無い、または規定回数で収束しない場合のエラー
*/
func find_root(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa := f(a)
	if fa*f(b) > 0 {
		return (a + b) / 2, fmt.Errorf("no root found in the interval [%f, %f]", a, b)
	}

	var c float64
	for i := 0; i < maxIter; i++ {
		c = (a + b) / 2
		fc := f(c)

		if fc == 0 || (b-a)/2 < tol {
			return c, nil
		}

		if fc*fa < 0 {
			b = c
		} else {
			a = c
			fa = fc
		}
	}
	return c, fmt.Errorf("failed to find root within %d iterations", maxIter)
}
