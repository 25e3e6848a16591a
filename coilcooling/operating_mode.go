package coilcooling

import (
	"fmt"
	"math"
)

const ModeObjectType = "Coil:Cooling:DX:CurveFit:OperatingMode"

// Deps は運転モードが参照する外部のサービス。nil の場合は既定値を用いる。
type Deps struct {
	Env      Environment    // 既定値は定格外気条件
	Psy      Psychrometrics // 既定値は MoistAir
	Reporter Reporter       // 既定値は出力しない
}

// ConstantEnvironment は一定の外気条件。
type ConstantEnvironment struct {
	DryBulb  float64 // degree C
	HumRat   float64 // kg/kg(DA)
	Pressure float64 // Pa
}

func (e ConstantEnvironment) OutDryBulbTemp() float64 { return e.DryBulb }
func (e ConstantEnvironment) OutHumRat() float64      { return e.HumRat }
func (e ConstantEnvironment) OutBaroPress() float64   { return e.Pressure }

// RatedOutdoor は定格外気条件 (35 degree C)。
func RatedOutdoor() ConstantEnvironment {
	return ConstantEnvironment{
		DryBulb:  get_rated_outdoor_air_temp(),
		HumRat:   0.0141,
		Pressure: get_std_pressure(),
	}
}

// OperatingMode は速度段の組を持ち、速度段の結果を合成して出口状態と消費電力を求める。
type OperatingMode struct {
	Name               string
	CondenserType      CondenserType
	Degradation        LatentDegradation
	NominalSpeedNumber int
	Speeds             []*Speed

	// 以下は SizeOperatingMode で決定する
	RatedGrossTotalCapacity  float64 // W
	RatedEvapAirFlowRate     float64 // m3/s
	RatedEvapAirMassFlowRate float64 // kg/s
	RatedCondAirFlowRate     float64 // m3/s
	NominalEvapPumpPower     float64 // W

	// 直近の CalcOperatingMode の結果
	OutletTemp        float64 // degree C
	OutletHumRat      float64 // kg/kg(DA)
	OutletEnthalpy    float64 // J/kg(DA)
	Power             float64 // W
	RTF               float64 // -
	EvapCondPumpPower float64 // W

	input OperatingModeInput
	env   Environment
	psy   Psychrometrics
	rep   Reporter
	sized bool

	notSizedReported bool
}

// ModeResult は CalcOperatingMode の結果。
type ModeResult struct {
	Outlet            AirNode
	Power             float64 // W
	RTF               float64 // -
	EvapCondPumpPower float64 // W
	Speed             SpeedIndex
}

/*
入力値から運転モードを生成する。

	Args:
		name: 運転モードの名前
		reg: 入力オブジェクトの Registry
		deps: 外気条件・湿り空気・警告出力

	Returns:
		運転モード

	Notes:
		以下はエラーとし、運転モードは生成しない。
		  名前に対応する入力が無い（運転モード・速度段・曲線）
		  凝縮器の冷却方式が AirCooled, EvaporativelyCooled のいずれでもない
		  速度段が無い、公称速度段番号が範囲外
		潜熱能力低下モデルのパラメータが一部のみ正の場合は警告とし、モデルを無効にする。
*/
func NewOperatingMode(name string, reg *Registry, deps Deps) (*OperatingMode, error) {
	in, err := reg.OperatingMode(name)
	if err != nil {
		return nil, err
	}

	if deps.Env == nil {
		deps.Env = RatedOutdoor()
	}
	if deps.Psy == nil {
		deps.Psy = MoistAir{}
	}
	if deps.Reporter == nil {
		deps.Reporter = discardReporter{}
	}

	ct, err := ParseCondenserType(in.CondenserType)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ModeObjectType, in.Name, err)
	}

	m := &OperatingMode{
		Name:          in.Name,
		CondenserType: ct,
		Degradation: LatentDegradation{
			MaxCyclingRate:                  in.MaxCyclingRate,
			EvaporationRateRatio:            in.EvaporationRateRatio,
			LatentCapacityTimeConstant:      in.LatentCapacityTimeConstant,
			NominalTimeForCondensateRemoval: in.NominalTimeForCondensateRemoval,
		},
		input: in,
		env:   deps.Env,
		psy:   deps.Psy,
		rep:   deps.Reporter,
	}

	if _, consistent := m.Degradation.check(); !consistent {
		m.rep.Warnf("%s %q: latent degradation model requires all four parameters to be positive, model disabled", ModeObjectType, m.Name)
	}

	if len(in.SpeedNames) == 0 {
		return nil, fmt.Errorf("%s %q: %w", ModeObjectType, in.Name, ErrNoSpeeds)
	}
	for _, sn := range in.SpeedNames {
		sin, err := reg.Speed(sn)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ModeObjectType, in.Name, err)
		}
		s, err := newSpeed(sin, reg, m.Degradation, m.psy, m.rep)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ModeObjectType, in.Name, err)
		}
		m.Speeds = append(m.Speeds, s)
	}

	switch {
	case in.NominalSpeedNumber == 0:
		m.NominalSpeedNumber = len(m.Speeds)
	case in.NominalSpeedNumber < 0 || in.NominalSpeedNumber > len(m.Speeds):
		return nil, fmt.Errorf("%s %q: %w: %d (number of speeds %d)", ModeObjectType, in.Name, ErrInvalidNominalSpeed, in.NominalSpeedNumber, len(m.Speeds))
	default:
		m.NominalSpeedNumber = in.NominalSpeedNumber
	}

	m.checkSpeedFractions()
	return m, nil
}

func (m *OperatingMode) checkSpeedFractions() {
	nominal := m.Speeds[SpeedIndexFor(m.NominalSpeedNumber, len(m.Speeds))].input
	if nominal.GrossTotalCoolingCapacityFraction != 1.0 || nominal.EvaporatorAirFlowRateFraction != 1.0 {
		m.rep.Warnf("%s %q: nominal speed %d capacity and air flow fractions should be 1.0", ModeObjectType, m.Name, m.NominalSpeedNumber)
	}
	for i := 1; i < len(m.Speeds); i++ {
		if m.Speeds[i].input.GrossTotalCoolingCapacityFraction < m.Speeds[i-1].input.GrossTotalCoolingCapacityFraction {
			m.rep.Warnf("%s %q: capacity fraction of speed %d is lower than speed %d", ModeObjectType, m.Name, i+1, i)
		}
	}
}

/*
凝縮器入口温度を求める。

	Notes:
		空冷の場合は外気乾球温度。
		蒸発冷却の場合は Twb + (Tdb - Twb) * (1 - 効率)。
*/
func (m *OperatingMode) condInletTemp(s *Speed) float64 {
	tdb := m.env.OutDryBulbTemp()
	if m.CondenserType != EvaporativelyCooled {
		return tdb
	}
	twb := m.psy.TwbFnTdbWPb(tdb, m.env.OutHumRat(), m.ambPressure())
	return twb + (tdb-twb)*(1.0-s.EvapCondEffectiveness)
}

func (m *OperatingMode) ambPressure() float64 {
	if pb := m.env.OutBaroPress(); pb > 0.0 {
		return pb
	}
	return get_std_pressure()
}

/*
運転モードの出口空気状態・消費電力・運転率を計算する。

	Args:
		inlet: 入口空気の状態
		plr: 部分負荷率, -
		speedNum: 速度段番号（1 始まり、1 未満は最低速とする）
		speedRatio: 上下2段の間で上の段で運転する時間の割合, -
		fanOp: 送風機の運転方法

	Returns:
		合成した出口状態・消費電力・運転率

	Notes:
		出口温度は合成した比エンタルピーと絶対湿度から求め直す（温度は補間しない）。
		2段目以上では、上の段を speedRatio、下の段を plr で計算して speedRatio で重み付けし、
		消費電力は上の段の電力に下の段の全負荷電力を加える。
*/
func (m *OperatingMode) CalcOperatingMode(inlet AirNode, plr float64, speedNum int, speedRatio float64, fanOp FanOperation) ModeResult {
	idx := SpeedIndexFor(speedNum, len(m.Speeds))
	res := ModeResult{Outlet: inlet, Speed: idx}

	if !m.sized {
		if !m.notSizedReported {
			m.rep.Errorf("%s %q: %v, outlet set to inlet", ModeObjectType, m.Name, ErrNotSized)
			m.notSizedReported = true
		}
		return m.record(res)
	}
	if len(m.Speeds) == 0 || (idx.Number() == 1 && plr <= 0.0) || inlet.MassFlowRate <= 0.0 {
		return m.record(res)
	}

	hi := m.Speeds[idx]
	pb := m.ambPressure()

	// 単段の発停運転では運転中のみ全風量が流れる
	mdot := inlet.MassFlowRate
	if fanOp == CyclingFan && idx.Number() == 1 {
		if plr > 0.0 {
			mdot = mdot / plr
		} else {
			mdot = 0.0
		}
	}

	plr1 := plr
	if idx.Number() > 1 {
		plr1 = speedRatio
	}

	hiRes := hi.CalcSpeedOutput(SpeedConditions{
		Inlet:         inlet,
		AirMassFlow:   mdot,
		PLR:           plr1,
		FanOp:         fanOp,
		CondInletTemp: m.condInletTemp(hi),
		AmbPressure:   pb,
	})
	speed1HumRat := hiRes.Outlet.HumRat
	speed1Enthalpy := hiRes.Outlet.Enthalpy

	out := hiRes.Outlet
	if fanOp == ContinuousFan {
		out.HumRat = speed1HumRat*plr + inlet.HumRat*(1.0-plr)
		out.Enthalpy = speed1Enthalpy*plr + inlet.Enthalpy*(1.0-plr)
		out.Temp = m.psy.TdbFnHW(out.Enthalpy, out.HumRat)
	}

	res.RTF = hiRes.RTF
	res.Power = hiRes.FullLoadPower * hiRes.RTF

	if idx.Number() > 1 {
		lo := m.Speeds[idx.Lower()]
		loRes := lo.CalcSpeedOutput(SpeedConditions{
			Inlet:         inlet,
			AirMassFlow:   inlet.MassFlowRate,
			PLR:           plr,
			FanOp:         fanOp,
			CondInletTemp: m.condInletTemp(lo),
			AmbPressure:   pb,
		})
		out.HumRat = speed1HumRat*speedRatio + loRes.Outlet.HumRat*(1.0-speedRatio)
		out.Enthalpy = speed1Enthalpy*speedRatio + loRes.Outlet.Enthalpy*(1.0-speedRatio)
		out.Temp = m.psy.TdbFnHW(out.Enthalpy, out.HumRat)
		res.Power += loRes.FullLoadPower
	}

	out.MassFlowRate = inlet.MassFlowRate
	out.Pressure = inlet.Pressure
	res.Outlet = out

	if m.CondenserType == EvaporativelyCooled {
		frac := hi.EvapCondPumpPowerFraction
		if frac <= 0.0 {
			frac = 1.0
		}
		res.EvapCondPumpPower = m.NominalEvapPumpPower * frac * math.Min(res.RTF, 1.0)
	}

	return m.record(res)
}

func (m *OperatingMode) record(res ModeResult) ModeResult {
	m.OutletTemp = res.Outlet.Temp
	m.OutletHumRat = res.Outlet.HumRat
	m.OutletEnthalpy = res.Outlet.Enthalpy
	m.Power = res.Power
	m.RTF = res.RTF
	m.EvapCondPumpPower = res.EvapCondPumpPower
	return res
}
