package main

import (
	"fmt"
	"os"

	"coil_perf_calc/coilcooling"

	"github.com/gocarina/gocsv"
)

type WeatherDataRow struct {
	OutdoorTemp   float64 `csv:"outdoor_temp"`    // 外気温度, degree C
	OutdoorHumRat float64 `csv:"outdoor_hum_rat"` // 外気絶対湿度, kg/kg(DA)
	Pressure      float64 `csv:"pressure"`        // 大気圧, Pa (0 の場合は標準大気圧)
}

// 外気条件の時系列
type Weather struct {
	theta_o_ns []float64 // 外気温度, degree C, [n]
	x_o_ns     []float64 // 外気絶対湿度, kg/kg(DA), [n]
	p_o_ns     []float64 // 大気圧, Pa, [n]
}

/*
気象データを読み込む。

	Args:
		file_path: 気象データのファイルのパス

	Returns:
		Weather

	Notes:
		行数はステップ数に等しいものとする。
*/
func load_weather(file_path string) (*Weather, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*WeatherDataRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("weather file `%s`: %w", file_path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("weather file `%s` has no rows", file_path)
	}

	w := &Weather{
		theta_o_ns: make([]float64, len(rows)),
		x_o_ns:     make([]float64, len(rows)),
		p_o_ns:     make([]float64, len(rows)),
	}
	for n, row := range rows {
		w.theta_o_ns[n] = row.OutdoorTemp
		w.x_o_ns[n] = row.OutdoorHumRat
		w.p_o_ns[n] = row.Pressure
		if row.Pressure <= 0.0 {
			w.p_o_ns[n] = get_std_pressure()
		}
	}
	return w, nil
}

// データの数を取得する。
func (self *Weather) number_of_data() int {
	return len(self.theta_o_ns)
}

/*
ステップ n の外気条件を取得する。

	Notes:
		データの数を超えるステップは先頭から繰り返す。
*/
func (self *Weather) at(n int) coilcooling.ConstantEnvironment {
	i := n % self.number_of_data()
	return coilcooling.ConstantEnvironment{
		DryBulb:  self.theta_o_ns[i],
		HumRat:   self.x_o_ns[i],
		Pressure: self.p_o_ns[i],
	}
}

// weatherCursor は現在のステップの外気条件を返す Environment。
type weatherCursor struct {
	w *Weather
	n int
}

func (c *weatherCursor) OutDryBulbTemp() float64 { return c.w.at(c.n).DryBulb }
func (c *weatherCursor) OutHumRat() float64      { return c.w.at(c.n).HumRat }
func (c *weatherCursor) OutBaroPress() float64   { return c.w.at(c.n).Pressure }
