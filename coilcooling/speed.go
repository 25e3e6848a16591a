package coilcooling

import (
	"fmt"
	"math"
)

const SpeedObjectType = "Coil:Cooling:DX:CurveFit:Speed"

// Speed は多段 DX 冷却コイルの1つの速度段の性能モデル。
type Speed struct {
	Name string

	input    SpeedInput
	capFTemp Curve // 全冷却能力の温度補正, f(入口湿球温度, 凝縮器入口温度)
	capFFlow Curve // 全冷却能力の風量補正, f(風量比)
	eirFTemp Curve // EIR の温度補正
	eirFFlow Curve // EIR の風量補正
	plfFPLR  Curve // 部分負荷効率, f(PLR), nil の場合は 1.0
	shrFTemp Curve // 顕熱比の温度補正, 省略可
	shrFFlow Curve // 顕熱比の風量補正, 省略可

	Degradation             LatentDegradation
	LatentDegradationActive bool

	EvapCondEffectiveness     float64 // 蒸発式凝縮器の効率, -
	EvapCondPumpPowerFraction float64 // 蒸発式凝縮器ポンプ動力の割合, -

	// 以下は Size で決定する
	RatedEvapAirFlowRate float64 // 定格風量, m3/s
	RatedAirMassFlowRate float64 // 定格質量流量, kg/s
	RatedTotalCapacity   float64 // 定格全冷却能力, W
	RatedCondAirFlowRate float64 // 定格凝縮器風量, m3/s
	RatedSHR             float64 // 定格顕熱比, -
	RatedEIR             float64 // 定格 EIR, W/W
	RatedCBF             float64 // 定格バイパスファクター, -

	psy Psychrometrics
}

// ModeRatings は運転モードの定格値。速度段の定格値を求める際に渡す。
type ModeRatings struct {
	ModeName                string
	RatedGrossTotalCapacity float64 // W
	RatedEvapAirFlowRate    float64 // m3/s
	RatedCondAirFlowRate    float64 // m3/s
}

// SpeedConditions は速度段の計算条件。
type SpeedConditions struct {
	Inlet         AirNode
	AirMassFlow   float64 // コイルを通過する質量流量, kg/s
	PLR           float64 // 速度段における部分負荷率, -
	FanOp         FanOperation
	CondInletTemp float64 // 凝縮器入口温度, degree C
	AmbPressure   float64 // 大気圧, Pa
}

// SpeedResult は速度段の計算結果。
type SpeedResult struct {
	Outlet        AirNode
	FullLoadPower float64 // 全負荷時の消費電力, W
	RTF           float64 // 運転率, -
	TotalCapacity float64 // 全冷却能力, W
	SHR           float64 // 顕熱比, -
	AirMassFlow   float64 // kg/s
	AirFF         float64 // 定格風量比, -
	CondInletTemp float64 // degree C
}

/*
入力値から速度段を生成する。

	Args:
		in: 速度段の入力値
		reg: 曲線を参照するための Registry
		deg: 運転モードから引き継ぐ潜熱能力低下モデルのパラメータ
		psy: 湿り空気の状態量
		rep: 警告の出力先
*/
func newSpeed(in SpeedInput, reg *Registry, deg LatentDegradation, psy Psychrometrics, rep Reporter) (*Speed, error) {
	s := &Speed{
		Name:                      in.Name,
		input:                     in,
		Degradation:               deg,
		EvapCondEffectiveness:     in.EvaporativeCondenserEffectiveness,
		EvapCondPumpPowerFraction: in.EvaporativeCondenserPumpPowerFraction,
		psy:                       psy,
	}

	var err error
	required := []struct {
		name string
		dst  *Curve
	}{
		{in.TotalCapacityFTempCurve, &s.capFTemp},
		{in.TotalCapacityFFlowCurve, &s.capFFlow},
		{in.EIRFTempCurve, &s.eirFTemp},
		{in.EIRFFlowCurve, &s.eirFFlow},
	}
	for _, r := range required {
		if *r.dst, err = reg.Curve(r.name); err != nil {
			return nil, fmt.Errorf("speed %q: %w", in.Name, err)
		}
	}
	if s.plfFPLR, err = reg.optionalCurve(in.PartLoadFractionCurve); err != nil {
		return nil, fmt.Errorf("speed %q: %w", in.Name, err)
	}
	if s.shrFTemp, err = reg.optionalCurve(in.SHRFTempCurve); err != nil {
		return nil, fmt.Errorf("speed %q: %w", in.Name, err)
	}
	if s.shrFFlow, err = reg.optionalCurve(in.SHRFFlowCurve); err != nil {
		return nil, fmt.Errorf("speed %q: %w", in.Name, err)
	}
	if (s.shrFTemp == nil) != (s.shrFFlow == nil) {
		rep.Warnf("%s %q: both SHR curves are required, SHR curves ignored", SpeedObjectType, in.Name)
		s.shrFTemp, s.shrFFlow = nil, nil
	}

	if in.GrossCOP <= 0.0 {
		return nil, fmt.Errorf("%w: speed %q: gross COP must be positive", ErrInvalidInput, in.Name)
	}
	if in.GrossTotalCoolingCapacityFraction <= 0.0 || in.EvaporatorAirFlowRateFraction <= 0.0 {
		return nil, fmt.Errorf("%w: speed %q: capacity and air flow fractions must be positive", ErrInvalidInput, in.Name)
	}
	if in.CondenserAirFlowRateFraction < 0.0 {
		return nil, fmt.Errorf("%w: speed %q: condenser air flow fraction must not be negative", ErrInvalidInput, in.Name)
	}
	if s.EvapCondEffectiveness <= 0.0 {
		s.EvapCondEffectiveness = 0.9
	}

	s.LatentDegradationActive, _ = deg.check()

	s.checkRatedCurves(rep)
	return s, nil
}

func (s *Speed) checkRatedCurves(rep Reporter) {
	twb, tcond := get_rated_inlet_wet_bulb_temp(), get_rated_outdoor_air_temp()
	checks := []struct {
		label string
		c     Curve
		x, y  float64
	}{
		{"total capacity f(T)", s.capFTemp, twb, tcond},
		{"total capacity f(flow)", s.capFFlow, 1.0, 0.0},
		{"EIR f(T)", s.eirFTemp, twb, tcond},
		{"EIR f(flow)", s.eirFFlow, 1.0, 0.0},
	}
	for _, c := range checks {
		if !ratedValueOK(c.c, c.x, c.y) {
			rep.Warnf("%s %q: %s curve output is %.4f at rated conditions, expected 1.0 (+/- 10%%)",
				SpeedObjectType, s.Name, c.label, c.c.Value(c.x, c.y))
		}
	}
}

func (s *Speed) hasSHRCurves() bool {
	return s.shrFTemp != nil && s.shrFFlow != nil
}

/*
運転モードの定格値から速度段の定格値を求める。

	Args:
		r: 運転モードの定格値
		auth: 定格値の確定を依頼する先

	Notes:
		各割合は運転モードの定格値に対する比。
		顕熱比が自動計算の場合は auth に依頼する。
*/
func (s *Speed) Size(r ModeRatings, auth SizingAuthority) error {
	in := s.input
	rho := s.psy.RhoAirFnPbTdbW(get_std_pressure(), get_rated_inlet_air_temp(), get_rated_inlet_air_hum_rat())

	flow, err := auth.RequestSizing(SizingRequest{
		ComponentType: SpeedObjectType,
		ComponentName: s.Name,
		Category:      CoolingAirflowSizing,
		Label:         "Rated Air Flow Rate [m3/s]",
		Value:         in.EvaporatorAirFlowRateFraction * r.RatedEvapAirFlowRate,
	})
	if err != nil {
		return fmt.Errorf("%w: speed %q: %v", ErrSizing, s.Name, err)
	}

	capacity, err := auth.RequestSizing(SizingRequest{
		ComponentType:     SpeedObjectType,
		ComponentName:     s.Name,
		Category:          CoolingCapacitySizing,
		Label:             "Rated Gross Total Cooling Capacity [W]",
		Value:             in.GrossTotalCoolingCapacityFraction * r.RatedGrossTotalCapacity,
		FlowUsedForSizing: flow,
	})
	if err != nil {
		return fmt.Errorf("%w: speed %q: %v", ErrSizing, s.Name, err)
	}

	shr, err := auth.RequestSizing(SizingRequest{
		ComponentType:         SpeedObjectType,
		ComponentName:         s.Name,
		Category:              CoolingSHRSizing,
		Label:                 "Rated Gross Sensible Heat Ratio",
		Value:                 in.GrossSensibleHeatRatio,
		FlowUsedForSizing:     flow,
		CapacityUsedForSizing: capacity,
	})
	if err != nil {
		return fmt.Errorf("%w: speed %q: %v", ErrSizing, s.Name, err)
	}

	s.RatedEvapAirFlowRate = flow
	s.RatedAirMassFlowRate = flow * rho
	s.RatedTotalCapacity = capacity
	s.RatedCondAirFlowRate = in.CondenserAirFlowRateFraction * r.RatedCondAirFlowRate
	s.RatedSHR = shr
	s.RatedEIR = 1.0 / in.GrossCOP

	s.RatedCBF = 0.0
	if shr < 1.0 && capacity > 0.0 && flow > 0.0 {
		cbf, err := calcBypassFactor(s.psy, get_rated_inlet_air_temp(), get_rated_inlet_air_hum_rat(), capacity, flow, shr, get_std_pressure())
		if err != nil {
			return fmt.Errorf("speed %q: %w", s.Name, err)
		}
		s.RatedCBF = cbf
	}
	return nil
}

/*
定格条件におけるバイパスファクターを求める。

	Args:
		tin: 入口空気乾球温度, degree C
		win: 入口空気絶対湿度, kg/kg(DA)
		totCap: 全冷却能力, W
		volFlow: 風量, m3/s
		shr: 顕熱比, -
		pb: 大気圧, Pa

	Returns:
		バイパスファクター, - (0.0 < BF < 1.0)

	Notes:
		入口と出口を結ぶ直線が飽和曲線と交わる点を装置露点とし、
		その勾配が一致する露点温度を刻み幅を半減させながら探索する。
*/
func calcBypassFactor(psy Psychrometrics, tin, win, totCap, volFlow, shr, pb float64) (float64, error) {
	mdot := volFlow * psy.RhoAirFnPbTdbW(pb, tin, win)
	deltaH := totCap / mdot
	hin := psy.HFnTdbW(tin, win)

	wout := psy.WFnTdbH(tin, hin-(1.0-shr)*deltaH)
	hout := hin - deltaH
	tout := psy.TdbFnHW(hout, wout)

	if psy.RhFnTdbWPb(tout, wout, pb) >= 1.0 {
		return 0, fmt.Errorf("%w: rated outlet air relative humidity >= 1.0 (T=%.2f, w=%.5f)", ErrRatedConditions, tout, wout)
	}

	deltaT := tin - tout
	deltaW := win - wout
	if deltaT <= 0.0 || deltaW <= 0.0 {
		return 0, fmt.Errorf("%w: rated temperature or humidity ratio difference is not positive", ErrRatedConditions)
	}
	slopeAtConds := deltaW / deltaT

	const iterMax = 50
	tadp := tout
	step := 5.0
	errLast := 100.0
	tol := 1.0
	var wadp float64
	for iter := 0; iter <= iterMax && tol > 0.001; iter++ {
		if iter > 0 {
			tadp += step
		}
		wadp = psy.WFnTdpPb(tadp, pb)
		slope := (win - wadp) / math.Max(0.001, tin-tadp)
		e := (slope - slopeAtConds) / slopeAtConds

		if (e > 0.0 && errLast < 0.0) || (e < 0.0 && errLast > 0.0) || math.Abs(e) > math.Abs(errLast) {
			step = -step / 2.0
		}
		errLast = e
		tol = math.Abs(e)
	}

	hadp := psy.HFnTdbW(tadp, wadp)
	bf := (psy.HFnTdbW(tout, wout) - hadp) / (hin - hadp)
	if bf <= 0.0 || bf >= 1.0 {
		return 0, fmt.Errorf("%w: bypass factor %.4f out of range, check rated SHR", ErrRatedConditions, bf)
	}
	return bf, nil
}

// FlowFraction は定格風量比を求める。定格風量が 0 以下の場合は 0 とする。
func (s *Speed) FlowFraction(mdot float64) float64 {
	if s.RatedAirMassFlowRate <= 0.0 {
		return 0.0
	}
	return mdot / s.RatedAirMassFlowRate
}

/*
速度段の出口空気状態・消費電力・運転率を計算する。

	Notes:
		質量流量または部分負荷率が 0 以下の場合、出口は入口と同じ状態とし、
		消費電力・運転率は 0 とする。
		出口状態は全負荷運転時の状態であり、入口との混合は呼び出し側が行う。
		潜熱能力低下の補正は送風機連続運転の場合のみ行う。
*/
func (s *Speed) CalcSpeedOutput(cond SpeedConditions) SpeedResult {
	in := cond.Inlet
	res := SpeedResult{
		Outlet:        in,
		AirMassFlow:   cond.AirMassFlow,
		AirFF:         s.FlowFraction(cond.AirMassFlow),
		CondInletTemp: cond.CondInletTemp,
	}
	if cond.AirMassFlow <= 0.0 || cond.PLR <= 0.0 {
		return res
	}

	pb := cond.AmbPressure
	if pb <= 0.0 {
		pb = in.Pressure
	}
	if pb <= 0.0 {
		pb = get_std_pressure()
	}

	// 乾きコイルの場合は入口絶対湿度を装置露点の絶対湿度に置き換えて再計算する
	const maxIter = 30
	const tolerance = 0.0005
	w := math.Max(in.HumRat, minHumRat)
	var twb, totCap, hDelta, shr float64
	for iter := 0; ; iter++ {
		twb = s.psy.TwbFnTdbWPb(in.Temp, w, pb)
		totCap = s.RatedTotalCapacity * s.capFTemp.Value(twb, cond.CondInletTemp) * s.capFFlow.Value(res.AirFF, 0.0)
		hDelta = totCap / cond.AirMassFlow

		if s.hasSHRCurves() {
			shr = s.RatedSHR * s.shrFTemp.Value(twb, in.Temp) * s.shrFFlow.Value(res.AirFF, 0.0)
			shr = math.Min(math.Max(shr, 0.0), 1.0)
			break
		}

		var wadp float64
		shr, wadp = s.adpSHR(in, hDelta, cond.AirMassFlow, pb)
		if wadp <= w || iter >= maxIter {
			break
		}
		werr := (w - wadp) / w
		w = wadp
		if math.Abs(werr) <= tolerance {
			break
		}
	}
	if totCap <= 0.0 {
		return res
	}

	plf := 1.0
	if s.plfFPLR != nil {
		plf = s.plfFPLR.Value(cond.PLR, 0.0)
	}
	plf = math.Max(plf, get_min_plf())
	rtf := math.Min(cond.PLR/plf, 1.0)

	if cond.FanOp == ContinuousFan && s.LatentDegradationActive {
		qLatRated := s.RatedTotalCapacity * (1.0 - s.RatedSHR)
		qLatActual := totCap * (1.0 - shr)
		shr = s.Degradation.effectiveSHR(in.Temp, twb, shr, rtf, qLatRated, qLatActual)
	}

	out := in
	out.Enthalpy = in.Enthalpy - hDelta
	out.HumRat = s.psy.WFnTdbH(in.Temp, in.Enthalpy-(1.0-shr)*hDelta)
	out.Temp = s.psy.TdbFnHW(out.Enthalpy, out.HumRat)

	// 過飽和の場合は比エンタルピー一定のまま飽和温度に修正する
	if tsat := s.psy.TsatFnHPb(out.Enthalpy, pb); out.Temp < tsat {
		out.Temp = tsat
		out.HumRat = s.psy.WFnTdbH(tsat, out.Enthalpy)
	}

	eir := s.RatedEIR * s.eirFTemp.Value(twb, cond.CondInletTemp) * s.eirFFlow.Value(res.AirFF, 0.0)

	res.Outlet = out
	res.TotalCapacity = totCap
	res.SHR = shr
	res.RTF = rtf
	res.FullLoadPower = totCap * eir
	return res
}

/*
装置露点・バイパスファクター法により顕熱比を求める。

	Returns:
		顕熱比, -
		装置露点の絶対湿度, kg/kg(DA)
*/
func (s *Speed) adpSHR(in AirNode, hDelta, mdot, pb float64) (float64, float64) {
	if s.RatedCBF <= 0.0 || s.RatedAirMassFlowRate <= 0.0 {
		return 1.0, 0.0
	}

	a0 := -math.Log(s.RatedCBF) * s.RatedAirMassFlowRate
	cbf := math.Exp(-a0 / mdot)
	if cbf >= 1.0 {
		return 1.0, 0.0
	}

	hadp := in.Enthalpy - hDelta/(1.0-cbf)
	tadp := s.psy.TsatFnHPb(hadp, pb)
	wadp := s.psy.WFnTdbH(tadp, hadp)
	hTinwADP := s.psy.HFnTdbW(in.Temp, wadp)

	if in.Enthalpy-hadp <= 1.0e-10 {
		return 1.0, wadp
	}
	return math.Min((hTinwADP-hadp)/(in.Enthalpy-hadp), 1.0), wadp
}
