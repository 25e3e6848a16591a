package main

import (
	"math"
	"testing"

	"coil_perf_calc/coilcooling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDesign() DesignData {
	return DesignData{
		AirFlowRate:  1.0,
		InletTemp:    26.67,
		InletHumRat:  0.0111847,
		OutletTemp:   13.0,
		OutletHumRat: 0.0088,
	}
}

func TestDesignSizerAutosize(t *testing.T) {
	psy := coilcooling.MoistAir{}
	d := NewDesignSizer(testDesign(), psy, quietLogger(), "run-1")

	flow, err := d.RequestSizing(coilcooling.SizingRequest{
		ComponentType: coilcooling.ModeObjectType,
		Category:      coilcooling.CoolingAirflowSizing,
		Value:         coilcooling.AutoSize,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, flow)

	capacity, err := d.RequestSizing(coilcooling.SizingRequest{
		ComponentType:     coilcooling.ModeObjectType,
		Category:          coilcooling.CoolingCapacitySizing,
		Value:             coilcooling.AutoSize,
		FlowUsedForSizing: 0.5,
	})
	require.NoError(t, err)
	rho := psy.RhoAirFnPbTdbW(101325.0, 26.67, 0.0111847)
	dh := psy.HFnTdbW(26.67, 0.0111847) - psy.HFnTdbW(13.0, 0.0088)
	assert.InDelta(t, rho*0.5*dh, capacity, 1e-9)

	cond, err := d.RequestSizing(coilcooling.SizingRequest{
		Category:              coilcooling.AutoCalculateSizing,
		Value:                 coilcooling.AutoSize,
		ConstantUsedForSizing: 20000.0,
		FractionUsedForSizing: 0.000114,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.28, cond, 1e-12)

	rows := d.report()
	require.Len(t, rows, 3)
	assert.Equal(t, "run-1", rows[2].RunID)
	assert.Equal(t, "AutoCalculate", rows[2].Category)
	assert.True(t, rows[2].Autosized)
}

func TestDesignSizerSHRCorrelation(t *testing.T) {
	d := NewDesignSizer(testDesign(), coilcooling.MoistAir{}, quietLogger(), "")

	cases := []struct {
		flow, capacity float64
		want           float64
	}{
		{1.0, 20000.0, 0.431 + 6086.0*5.0e-5},
		{1.0, 10000.0, 0.431 + 6086.0*6.041e-5},
		{1.0, 40000.0, 0.431 + 6086.0*4.027e-5},
	}
	for _, tc := range cases {
		shr, err := d.RequestSizing(coilcooling.SizingRequest{
			Category:              coilcooling.CoolingSHRSizing,
			Value:                 coilcooling.AutoSize,
			FlowUsedForSizing:     tc.flow,
			CapacityUsedForSizing: tc.capacity,
		})
		require.NoError(t, err)
		assert.InDelta(t, tc.want, shr, 1e-12)
	}

	_, err := d.RequestSizing(coilcooling.SizingRequest{Category: coilcooling.CoolingSHRSizing, Value: coilcooling.AutoSize})
	assert.Error(t, err)
}

func TestDesignSizerLiteralValue(t *testing.T) {
	lg := quietLogger()
	d := NewDesignSizer(testDesign(), coilcooling.MoistAir{}, lg, "")

	// 設計値と 10% 以内
	v, err := d.RequestSizing(coilcooling.SizingRequest{
		ComponentType: coilcooling.ModeObjectType,
		Category:      coilcooling.CoolingAirflowSizing,
		Value:         1.05,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.05, v)
	assert.Empty(t, lg.Warnings())

	v, err = d.RequestSizing(coilcooling.SizingRequest{
		ComponentType: coilcooling.ModeObjectType,
		Category:      coilcooling.CoolingAirflowSizing,
		Value:         1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	assert.Len(t, lg.Warnings(), 1)

	// 速度段の値は運転モードの割合なので比較しない
	_, err = d.RequestSizing(coilcooling.SizingRequest{
		ComponentType: coilcooling.SpeedObjectType,
		Category:      coilcooling.CoolingAirflowSizing,
		Value:         0.5,
	})
	require.NoError(t, err)
	assert.Len(t, lg.Warnings(), 1)
}

func TestDesignSizerWithoutDesignFlow(t *testing.T) {
	design := testDesign()
	design.AirFlowRate = 0.0
	d := NewDesignSizer(design, coilcooling.MoistAir{}, quietLogger(), "")

	_, err := d.RequestSizing(coilcooling.SizingRequest{Category: coilcooling.CoolingAirflowSizing, Value: coilcooling.AutoSize})
	assert.Error(t, err)

	// 入力値があれば設計値は不要
	v, err := d.RequestSizing(coilcooling.SizingRequest{Category: coilcooling.CoolingAirflowSizing, Value: 0.8})
	require.NoError(t, err)
	assert.Equal(t, 0.8, v)
	assert.True(t, math.IsNaN(d.report()[0].DesignValue))
}
