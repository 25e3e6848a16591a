package main

import (
	"fmt"
	"os"
	"strings"

	"coil_perf_calc/coilcooling"

	"github.com/gocarina/gocsv"
)

// 制御スケジュールの1行
type ScheduleRow struct {
	InletTemp    float64 `csv:"inlet_temp"`     // 入口空気温度, degree C
	InletHumRat  float64 `csv:"inlet_hum_rat"`  // 入口空気絶対湿度, kg/kg(DA)
	MassFlowRate float64 `csv:"mass_flow_rate"` // 質量流量, kg/s
	PLR          float64 `csv:"plr"`            // 部分負荷率, -
	SpeedNumber  int     `csv:"speed_number"`   // 速度段番号
	SpeedRatio   float64 `csv:"speed_ratio"`    // 速度比, -
	FanMode      string  `csv:"fan_mode"`       // cycling / continuous
}

// 制御スケジュール
type Schedule struct {
	rows []*ScheduleRow
	fan  []coilcooling.FanOperation
}

/*
文字列から送風機の運転方法を求める。

	Notes:
		"cycling", "CycFanCycCoil" は発停運転、"continuous", "ContFanCycCoil" は連続運転。
		空文字は発停運転とする。
*/
func parse_fan_operation(s string) (coilcooling.FanOperation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cycling", "cycfancyccoil":
		return coilcooling.CyclingFan, nil
	case "continuous", "contfancyccoil":
		return coilcooling.ContinuousFan, nil
	default:
		return 0, fmt.Errorf("invalid fan mode %q", s)
	}
}

/*
制御スケジュールを読み込む。

	Args:
		file_path: 制御スケジュールのファイルのパス

	Returns:
		Schedule
*/
func load_schedule(file_path string) (*Schedule, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*ScheduleRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("schedule file `%s`: %w", file_path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("schedule file `%s` has no rows", file_path)
	}

	scd := &Schedule{rows: rows, fan: make([]coilcooling.FanOperation, len(rows))}
	for n, row := range rows {
		if scd.fan[n], err = parse_fan_operation(row.FanMode); err != nil {
			return nil, fmt.Errorf("schedule file `%s` row %d: %w", file_path, n+1, err)
		}
		if row.MassFlowRate < 0.0 || row.PLR < 0.0 || row.PLR > 1.0 || row.SpeedRatio < 0.0 || row.SpeedRatio > 1.0 {
			return nil, fmt.Errorf("schedule file `%s` row %d: flow, plr or speed ratio out of range", file_path, n+1)
		}
	}
	return scd, nil
}

// ステップ数を取得する。
func (self *Schedule) number_of_steps() int {
	return len(self.rows)
}

/*
ステップ n の入口空気の状態を求める。

	Args:
		n: ステップ
		psy: 湿り空気の状態量
		pb: 大気圧, Pa
*/
func (self *Schedule) inlet(n int, psy coilcooling.Psychrometrics, pb float64) coilcooling.AirNode {
	row := self.rows[n]
	return coilcooling.AirNode{
		MassFlowRate: row.MassFlowRate,
		Pressure:     pb,
		Temp:         row.InletTemp,
		HumRat:       row.InletHumRat,
		Enthalpy:     psy.HFnTdbW(row.InletTemp, row.InletHumRat),
	}
}
