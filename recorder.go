package main

import (
	"os"
	"path/filepath"

	"coil_perf_calc/coilcooling"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// 計算結果の1行
type ResultRow struct {
	Step              int     `csv:"step"`
	ElapsedHour       float64 `csv:"elapsed_hour"`         // 経過時間, h
	OutdoorTemp       float64 `csv:"outdoor_temp"`         // 外気温度, degree C
	InletTemp         float64 `csv:"inlet_temp"`           // 入口空気温度, degree C
	InletHumRat       float64 `csv:"inlet_hum_rat"`        // 入口空気絶対湿度, kg/kg(DA)
	MassFlowRate      float64 `csv:"mass_flow_rate"`       // 質量流量, kg/s
	PLR               float64 `csv:"plr"`                  // 部分負荷率, -
	SpeedNumber       int     `csv:"speed_number"`         // 計算に用いた速度段番号
	SpeedRatio        float64 `csv:"speed_ratio"`          // 速度比, -
	FanMode           string  `csv:"fan_mode"`             // 送風機の運転方法
	OutletTemp        float64 `csv:"outlet_temp"`          // 出口空気温度, degree C
	OutletHumRat      float64 `csv:"outlet_hum_rat"`       // 出口空気絶対湿度, kg/kg(DA)
	OutletEnthalpy    float64 `csv:"outlet_enthalpy"`      // 出口空気比エンタルピー, J/kg(DA)
	TotalCooling      float64 `csv:"total_cooling"`        // 全冷却熱量, W
	Power             float64 `csv:"power"`                // 消費電力, W
	RTF               float64 `csv:"rtf"`                  // 運転率, -
	EvapCondPumpPower float64 `csv:"evap_cond_pump_power"` // 蒸発式凝縮器ポンプ動力, W
}

// 計算結果の集計
type Summary struct {
	NumberOfSteps    int
	PeakPower        float64 // 最大消費電力, W
	MeanRTF          float64 // 平均運転率, -
	PumpEnergy       float64 // ポンプ消費電力量, kWh
	ElectricEnergy   float64 // 消費電力量（ポンプ動力を含む）, kWh
	TotalCoolingHeat float64 // 冷却熱量, kWh
	SeasonalCOP      float64 // 冷却熱量 / 消費電力量, -
}

type Recorder struct {
	itv  Interval
	rows []ResultRow
}

func NewRecorder(itv Interval) *Recorder {
	return &Recorder{itv: itv}
}

/*
ステップ n の計算結果を記録する。

	Args:
		n: ステップ
		env: 外気条件
		row: 制御スケジュール
		fan: 送風機の運転方法
		inlet: 入口空気の状態
		res: 運転モードの計算結果
*/
func (r *Recorder) record(
	n int,
	env coilcooling.Environment,
	row *ScheduleRow,
	fan coilcooling.FanOperation,
	inlet coilcooling.AirNode,
	res coilcooling.ModeResult,
) {
	r.rows = append(r.rows, ResultRow{
		Step:              n,
		ElapsedHour:       r.itv.elapsed_hour(n),
		OutdoorTemp:       env.OutDryBulbTemp(),
		InletTemp:         inlet.Temp,
		InletHumRat:       inlet.HumRat,
		MassFlowRate:      inlet.MassFlowRate,
		PLR:               row.PLR,
		SpeedNumber:       res.Speed.Number(),
		SpeedRatio:        row.SpeedRatio,
		FanMode:           fan.String(),
		OutletTemp:        res.Outlet.Temp,
		OutletHumRat:      res.Outlet.HumRat,
		OutletEnthalpy:    res.Outlet.Enthalpy,
		TotalCooling:      inlet.MassFlowRate * (inlet.Enthalpy - res.Outlet.Enthalpy),
		Power:             res.Power,
		RTF:               res.RTF,
		EvapCondPumpPower: res.EvapCondPumpPower,
	})
}

/*
記録した計算結果を集計する。

	Notes:
		電力量・熱量はステップの値にインターバル時間を乗じて積算する。
*/
func (r *Recorder) summarize() Summary {
	s := Summary{NumberOfSteps: len(r.rows)}
	if len(r.rows) == 0 {
		return s
	}

	col := func(f func(row ResultRow) float64) []float64 {
		ret := make([]float64, len(r.rows))
		for i, row := range r.rows {
			ret[i] = f(row)
		}
		return ret
	}

	power := col(func(row ResultRow) float64 { return row.Power })
	pump := col(func(row ResultRow) float64 { return row.EvapCondPumpPower })
	rtf := col(func(row ResultRow) float64 { return row.RTF })
	cooling := col(func(row ResultRow) float64 { return row.TotalCooling })

	dt := r.itv.get_time()
	s.PeakPower = floats.Max(power)
	s.MeanRTF = stat.Mean(rtf, nil)
	s.PumpEnergy = floats.Sum(pump) * dt / 1000.0
	s.ElectricEnergy = floats.Sum(power)*dt/1000.0 + s.PumpEnergy
	s.TotalCoolingHeat = floats.Sum(cooling) * dt / 1000.0
	if s.ElectricEnergy > 0.0 {
		s.SeasonalCOP = s.TotalCoolingHeat / s.ElectricEnergy
	}
	return s
}

// 計算結果を CSV 形式で保存する。
func (r *Recorder) save(path string) error {
	return save_csv(path, &r.rows)
}

func save_csv(path string, in interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gocsv.MarshalFile(in, file)
}
