package coilcooling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	warnings []string
	errors   []string
}

func (r *recordingReporter) Warnf(format string, v ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, v...))
}

func (r *recordingReporter) Errorf(format string, v ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, v...))
}

// fakeSizer は自動計算の値を固定値で返す。入力値はそのまま返す。
type fakeSizer struct {
	flow     float64
	capacity float64
	shr      float64
	err      error
	requests []SizingRequest
}

func (f *fakeSizer) RequestSizing(r SizingRequest) (float64, error) {
	f.requests = append(f.requests, r)
	if f.err != nil {
		return 0, f.err
	}
	if !IsAutoSize(r.Value) {
		return r.Value, nil
	}
	switch r.Category {
	case CoolingAirflowSizing:
		return f.flow, nil
	case CoolingCapacitySizing:
		return f.capacity, nil
	case AutoCalculateSizing:
		return r.ConstantUsedForSizing * r.FractionUsedForSizing, nil
	case CoolingSHRSizing:
		return f.shr, nil
	}
	return 0, fmt.Errorf("unexpected category %v", r.Category)
}

func unity() Curve {
	return &Linear{C1: 1.0}
}

/*
試験用の Registry を作る。
"unity" は常に 1.0 を返す曲線、"capft" は凝縮器入口温度が高いほど能力が下がる曲線。
*/
func newTestRegistry(t *testing.T, mode OperatingModeInput, speeds ...SpeedInput) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.AddCurve("unity", unity()))
	require.NoError(t, reg.AddCurve("capft", &Biquadratic{C1: 1.35, C4: -0.01}))
	require.NoError(t, reg.AddCurve("plf", &Quadratic{C1: 0.85, C2: 0.15}))
	require.NoError(t, reg.AddOperatingMode(mode))
	for _, s := range speeds {
		require.NoError(t, reg.AddSpeed(s))
	}
	return reg
}

func testSpeedInput(name string, frac float64) SpeedInput {
	return SpeedInput{
		Name:                              name,
		GrossTotalCoolingCapacityFraction: frac,
		EvaporatorAirFlowRateFraction:     frac,
		CondenserAirFlowRateFraction:      frac,
		GrossSensibleHeatRatio:            0.75,
		GrossCOP:                          3.0,
		TotalCapacityFTempCurve:           "unity",
		TotalCapacityFFlowCurve:           "unity",
		EIRFTempCurve:                     "unity",
		EIRFFlowCurve:                     "unity",
	}
}

func testModeInput(speedNames ...string) OperatingModeInput {
	return OperatingModeInput{
		Name:                       "Mode1",
		RatedGrossTotalCapacity:    AutoSize,
		RatedEvaporatorAirFlowRate: AutoSize,
		RatedCondenserAirFlowRate:  AutoSize,
		CondenserType:              "AirCooled",
		NominalSpeedNumber:         len(speedNames),
		SpeedNames:                 speedNames,
	}
}

// 2段の運転モードを生成して定格値を確定する。
func newSizedTwoSpeedMode(t *testing.T) *OperatingMode {
	t.Helper()
	reg := newTestRegistry(t, testModeInput("Speed1", "Speed2"),
		testSpeedInput("Speed1", 0.5), testSpeedInput("Speed2", 1.0))
	m, err := NewOperatingMode("Mode1", reg, Deps{})
	require.NoError(t, err)
	require.NoError(t, m.SizeOperatingMode(&fakeSizer{flow: 1.0, capacity: 20000.0, shr: 0.75}))
	return m
}

// 定格入口条件の空気
func ratedInlet(mdot float64) AirNode {
	psy := MoistAir{}
	t, w := get_rated_inlet_air_temp(), get_rated_inlet_air_hum_rat()
	return AirNode{
		MassFlowRate: mdot,
		Pressure:     get_std_pressure(),
		Temp:         t,
		HumRat:       w,
		Enthalpy:     psy.HFnTdbW(t, w),
	}
}
