package main

import (
	"fmt"
	"math"

	"coil_perf_calc/coilcooling"
	"coil_perf_calc/logger"
)

// 定格値の確定結果の1行
type SizingReportRow struct {
	RunID         string  `csv:"run_id"`
	ComponentType string  `csv:"component_type"`
	ComponentName string  `csv:"component_name"`
	Category      string  `csv:"category"`
	Label         string  `csv:"label"`
	Autosized     bool    `csv:"autosized"`
	DesignValue   float64 `csv:"design_value"`
	Value         float64 `csv:"value"`
}

/*
設計条件から定格値を確定する SizingAuthority。

	Notes:
		冷却風量: 設計風量
		冷却能力: 密度 x 風量 x (設計入口比エンタルピー - 設計出口比エンタルピー)
		顕熱比: 0.431 + 6086 x 風量能力比（風量能力比は 4.027e-5 から 6.041e-5 の範囲とする）
		自動計算: 定数 x 割合
		入力値はそのまま用いる。運転モードの入力値が設計値と 10% 以上異なる場合は警告する。
*/
type DesignSizer struct {
	design DesignData
	psy    coilcooling.Psychrometrics
	log    *logger.Logger
	run_id string
	rows   []SizingReportRow
}

func NewDesignSizer(design DesignData, psy coilcooling.Psychrometrics, log *logger.Logger, run_id string) *DesignSizer {
	return &DesignSizer{design: design, psy: psy, log: log, run_id: run_id}
}

func (d *DesignSizer) RequestSizing(req coilcooling.SizingRequest) (float64, error) {
	design, err := d.design_value(req)
	autosized := coilcooling.IsAutoSize(req.Value)
	if err != nil {
		if autosized {
			return 0, err
		}
		// 入力値がある場合は設計値が求まらなくてもよい
		design = math.NaN()
	}

	value := req.Value
	if autosized {
		value = design
	} else if req.ComponentType == coilcooling.ModeObjectType && !math.IsNaN(design) && design > 0.0 {
		if math.Abs(value-design)/design > get_sizing_mismatch_ratio() {
			d.log.Warnf("%s %q: %s: input value %g differs from design value %g", req.ComponentType, req.ComponentName, req.Label, value, design)
		}
	}

	d.log.Debugf("%s %q: %s = %g", req.ComponentType, req.ComponentName, req.Label, value)
	d.rows = append(d.rows, SizingReportRow{
		RunID:         d.run_id,
		ComponentType: req.ComponentType,
		ComponentName: req.ComponentName,
		Category:      req.Category.String(),
		Label:         req.Label,
		Autosized:     autosized,
		DesignValue:   design,
		Value:         value,
	})
	return value, nil
}

func (d *DesignSizer) design_value(req coilcooling.SizingRequest) (float64, error) {
	switch req.Category {
	case coilcooling.CoolingAirflowSizing:
		if d.design.AirFlowRate <= 0.0 {
			return 0, fmt.Errorf("design air flow rate must be positive for %s", req.Label)
		}
		return d.design.AirFlowRate, nil

	case coilcooling.CoolingCapacitySizing:
		flow := req.FlowUsedForSizing
		if flow <= 0.0 {
			flow = d.design.AirFlowRate
		}
		pb := get_std_pressure()
		rho := d.psy.RhoAirFnPbTdbW(pb, d.design.InletTemp, d.design.InletHumRat)
		h_in := d.psy.HFnTdbW(d.design.InletTemp, d.design.InletHumRat)
		h_out := d.psy.HFnTdbW(d.design.OutletTemp, d.design.OutletHumRat)
		q := rho * flow * (h_in - h_out)
		if q <= 0.0 {
			return 0, fmt.Errorf("design cooling capacity must be positive for %s (flow %g m3/s, inlet h %g, outlet h %g)", req.Label, flow, h_in, h_out)
		}
		return q, nil

	case coilcooling.AutoCalculateSizing:
		return req.ConstantUsedForSizing * req.FractionUsedForSizing, nil

	case coilcooling.CoolingSHRSizing:
		if req.FlowUsedForSizing <= 0.0 || req.CapacityUsedForSizing <= 0.0 {
			return 0, fmt.Errorf("flow and capacity must be positive for %s", req.Label)
		}
		ratio := req.FlowUsedForSizing / req.CapacityUsedForSizing
		ratio = math.Min(math.Max(ratio, get_min_flow_per_capacity()), get_max_flow_per_capacity())
		return 0.431 + 6086.0*ratio, nil

	default:
		return 0, fmt.Errorf("unsupported sizing category %s", req.Category)
	}
}

// 確定結果を取得する。
func (d *DesignSizer) report() []SizingReportRow {
	return d.rows
}
