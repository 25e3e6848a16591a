package coilcooling

import "fmt"

// SizingCategory は定格値の決定方法の種類。
type SizingCategory int

const (
	CoolingAirflowSizing  SizingCategory = iota + 1 // 冷却風量
	CoolingCapacitySizing                           // 冷却能力
	AutoCalculateSizing                             // 定数 x 割合 による自動計算
	CoolingSHRSizing                                // 顕熱比
)

func (c SizingCategory) String() string {
	switch c {
	case CoolingAirflowSizing:
		return "CoolingAirflow"
	case CoolingCapacitySizing:
		return "CoolingCapacity"
	case AutoCalculateSizing:
		return "AutoCalculate"
	case CoolingSHRSizing:
		return "CoolingSHR"
	default:
		return fmt.Sprintf("SizingCategory(%d)", int(c))
	}
}

/*
定格値の確定の依頼。

	Notes:
		Value は入力値、または AutoSize。
		FlowUsedForSizing, CapacityUsedForSizing は既に確定した風量・能力。
		AutoCalculateSizing では ConstantUsedForSizing * FractionUsedForSizing を用いる。
*/
type SizingRequest struct {
	ComponentType         string
	ComponentName         string
	Category              SizingCategory
	Label                 string
	Value                 float64
	FlowUsedForSizing     float64
	CapacityUsedForSizing float64
	ConstantUsedForSizing float64
	FractionUsedForSizing float64
}

// SizingAuthority は入力値または自動計算値を確定する。
type SizingAuthority interface {
	RequestSizing(req SizingRequest) (float64, error)
}

/*
運転モードの定格値を確定する。

	Notes:
		1. 定格蒸発器風量
		2. 定格全冷却能力（確定した風量を用いる）
		3. 定格凝縮器風量（全冷却能力 x 0.000114 m3/s/W）
		4. 蒸発式凝縮器の場合、公称ポンプ動力（全冷却能力 x 0.004266 W/W）
		5. 各速度段に確定した定格値を渡す
		2回目以降の呼び出しでは何もしない。
*/
func (m *OperatingMode) SizeOperatingMode(auth SizingAuthority) error {
	if m.sized {
		return nil
	}

	req := func(r SizingRequest) (float64, error) {
		r.ComponentType = ModeObjectType
		r.ComponentName = m.Name
		v, err := auth.RequestSizing(r)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q: %s: %v", ErrSizing, ModeObjectType, m.Name, r.Label, err)
		}
		return v, nil
	}

	flow, err := req(SizingRequest{
		Category: CoolingAirflowSizing,
		Label:    "Rated Evaporator Air Flow Rate [m3/s]",
		Value:    m.input.RatedEvaporatorAirFlowRate,
	})
	if err != nil {
		return err
	}

	capacity, err := req(SizingRequest{
		Category:          CoolingCapacitySizing,
		Label:             "Rated Gross Total Cooling Capacity [W]",
		Value:             m.input.RatedGrossTotalCapacity,
		FlowUsedForSizing: flow,
	})
	if err != nil {
		return err
	}

	condFlow, err := req(SizingRequest{
		Category:              AutoCalculateSizing,
		Label:                 "Rated Condenser Air Flow Rate [m3/s]",
		Value:                 m.input.RatedCondenserAirFlowRate,
		ConstantUsedForSizing: capacity,
		FractionUsedForSizing: get_cond_air_flow_per_capacity(),
	})
	if err != nil {
		return err
	}

	pumpPower := m.input.NominalEvaporativePumpPower
	if m.CondenserType == EvaporativelyCooled {
		pumpPower, err = req(SizingRequest{
			Category:              AutoCalculateSizing,
			Label:                 "Nominal Evaporative Condenser Pump Power [W]",
			Value:                 m.input.NominalEvaporativePumpPower,
			ConstantUsedForSizing: capacity,
			FractionUsedForSizing: get_evap_pump_power_per_capacity(),
		})
		if err != nil {
			return err
		}
	} else if IsAutoSize(pumpPower) {
		pumpPower = 0.0
	}

	rho := m.psy.RhoAirFnPbTdbW(get_std_pressure(), get_rated_inlet_air_temp(), get_rated_inlet_air_hum_rat())

	ratings := ModeRatings{
		ModeName:                m.Name,
		RatedGrossTotalCapacity: capacity,
		RatedEvapAirFlowRate:    flow,
		RatedCondAirFlowRate:    condFlow,
	}
	for _, s := range m.Speeds {
		if err := s.Size(ratings, auth); err != nil {
			return err
		}
	}

	m.RatedEvapAirFlowRate = flow
	m.RatedEvapAirMassFlowRate = flow * rho
	m.RatedGrossTotalCapacity = capacity
	m.RatedCondAirFlowRate = condFlow
	m.NominalEvapPumpPower = pumpPower
	m.sized = true
	return nil
}

// Sized は定格値が確定済みかどうかを返す。
func (m *OperatingMode) Sized() bool {
	return m.sized
}
