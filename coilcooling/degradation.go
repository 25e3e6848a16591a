package coilcooling

import "math"

// LatentDegradation は発停運転時の潜熱能力低下モデルのパラメータ。
type LatentDegradation struct {
	MaxCyclingRate                  float64 // 最大発停回数, cycles/hr
	EvaporationRateRatio            float64 // 初期蒸発量と定格潜熱能力の比, -
	LatentCapacityTimeConstant      float64 // 潜熱能力の時定数, s
	NominalTimeForCondensateRemoval float64 // ドレン排出開始までの公称時間, s
}

func (d LatentDegradation) values() []float64 {
	return []float64{
		d.MaxCyclingRate,
		d.EvaporationRateRatio,
		d.LatentCapacityTimeConstant,
		d.NominalTimeForCondensateRemoval,
	}
}

/*
モデルが有効かどうかを判定する。

	Returns:
		active: 4つのパラメータがすべて正の場合 true
		consistent: すべて正、またはすべて 0 以下の場合 true
*/
func (d LatentDegradation) check() (active bool, consistent bool) {
	n := 0
	for _, v := range d.values() {
		if v > 0.0 {
			n++
		}
	}
	return n == 4, n == 4 || n == 0
}

/*
潜熱能力低下を考慮した実効顕熱比を求める。

	Args:
		inletDB: 入口空気乾球温度, degree C
		inletWB: 入口空気湿球温度, degree C
		shrSS: 定常状態の顕熱比, -
		rtf: 運転率, -
		qLatRated: 定格潜熱能力, W
		qLatActual: 定常状態の潜熱能力, W

	Returns:
		実効顕熱比, - (shrSS 以上 1.0 以下)

	Notes:
		運転率が 1.0 以上または 0.0 以下の場合、補正は行わない。
		停止中にコイル表面の凝縮水が再蒸発する効果を、発停周期 Ton, Toff と
		時定数から求めた潜熱比の乗数で表す。
*/
func (d LatentDegradation) effectiveSHR(inletDB, inletWB, shrSS, rtf, qLatRated, qLatActual float64) float64 {
	if active, _ := d.check(); !active {
		return shrSS
	}
	if rtf >= 1.0 || rtf <= 0.0 || qLatRated == 0.0 || qLatActual == 0.0 {
		return shrSS
	}

	const twetMax = 9999.0
	tau := d.LatentCapacityTimeConstant
	nmax := d.MaxCyclingRate

	// 実運転条件におけるパラメータ
	twet := math.Min(d.NominalTimeForCondensateRemoval*qLatRated/(qLatActual+1.0e-10), twetMax)
	gamma := d.EvaporationRateRatio * qLatRated * (inletDB - inletWB) / ((26.7-19.4)*qLatActual + 1.0e-10)

	// サーモスタットの発停特性から求めた運転・停止時間, s
	ton := 3600.0 / (4.0 * nmax * (1.0 - rtf))
	toff := 3600.0 / (4.0 * nmax * rtf)

	toffa := toff
	if gamma > 0.0 {
		toffa = math.Min(toff, 2.0*twet/gamma)
	}

	// 逐次代入法で To を求める
	aa := gamma*toffa - (0.25/twet)*gamma*gamma*toffa*toffa
	to1 := aa + tau
	var to2 float64
	for i := 0; i < 100; i++ {
		to2 = aa - tau*(math.Exp(-to1/tau)-1.0)
		if math.Abs((to2-to1)/to1) <= 0.001 {
			break
		}
		to1 = to2
	}

	// exp のアンダーフローを避けるため指数の下限を -700 とする
	aa = math.Exp(math.Max(-700.0, -ton/tau))
	lhrMult := math.Max((ton-to2)/(ton+tau*(aa-1.0)), 0.0)

	shrEff := 1.0 - (1.0-shrSS)*lhrMult
	return math.Min(math.Max(shrEff, shrSS), 1.0)
}
