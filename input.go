package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"coil_perf_calc/coilcooling"
)

// NOTE: 構造体のフィールドに対応するJSONキーが存在しない場合、そのフィールドにはゼロ値が設定されます。
type InputData struct {
	Curves         []CurveData         `json:"curves"`
	OperatingModes []OperatingModeData `json:"operating_modes"`
	Speeds         []SpeedData         `json:"speeds"`
	Coil           CoilData            `json:"coil"`
	Design         DesignData          `json:"design"`
}

// Autosizable は数値、または "autosize" / "autocalculate" を受け付ける。
type Autosizable float64

func (a *Autosizable) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch strings.ToLower(s) {
		case "autosize", "autocalculate":
			*a = Autosizable(coilcooling.AutoSize)
			return nil
		default:
			return fmt.Errorf("invalid value %q (number, autosize or autocalculate)", s)
		}
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = Autosizable(v)
	return nil
}

type CurveData struct {
	Name         string      `json:"name"`
	CurveType    string      `json:"curve_type"`
	Coefficients []float64   `json:"coefficients"`
	Points       []PointData `json:"points"`
	MinX         float64     `json:"min_x"`
	MaxX         float64     `json:"max_x"`
	MinY         float64     `json:"min_y"`
	MaxY         float64     `json:"max_y"`
	MinOut       *float64    `json:"min_out"`
	MaxOut       *float64    `json:"max_out"`
}

type PointData struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
}

type OperatingModeData struct {
	Name                            string      `json:"name"`
	RatedGrossTotalCapacity         Autosizable `json:"rated_gross_total_capacity"`
	RatedEvaporatorAirFlowRate      Autosizable `json:"rated_evaporator_air_flow_rate"`
	RatedCondenserAirFlowRate       Autosizable `json:"rated_condenser_air_flow_rate"`
	MaxCyclingRate                  float64     `json:"max_cycling_rate"`
	EvaporationRateRatio            float64     `json:"evaporation_rate_ratio"`
	LatentCapacityTimeConstant      float64     `json:"latent_capacity_time_constant"`
	NominalTimeForCondensateRemoval float64     `json:"nominal_time_for_condensate_removal"`
	CondenserType                   string      `json:"condenser_type"`
	NominalEvaporativePumpPower     Autosizable `json:"nominal_evaporative_pump_power"`
	NominalSpeedNumber              int         `json:"nominal_speed_number"`
	Speeds                          []string    `json:"speeds"`
}

type SpeedData struct {
	Name                                  string      `json:"name"`
	GrossTotalCoolingCapacityFraction     float64     `json:"gross_total_cooling_capacity_fraction"`
	EvaporatorAirFlowRateFraction         float64     `json:"evaporator_air_flow_rate_fraction"`
	CondenserAirFlowRateFraction          float64     `json:"condenser_air_flow_rate_fraction"`
	GrossSensibleHeatRatio                Autosizable `json:"gross_sensible_heat_ratio"`
	GrossCOP                              float64     `json:"gross_cop"`
	EvaporativeCondenserEffectiveness     float64     `json:"evaporative_condenser_effectiveness"`
	EvaporativeCondenserPumpPowerFraction float64     `json:"evaporative_condenser_pump_power_fraction"`
	TotalCapacityFTempCurve               string      `json:"total_capacity_f_temp_curve"`
	TotalCapacityFFlowCurve               string      `json:"total_capacity_f_flow_curve"`
	EIRFTempCurve                         string      `json:"eir_f_temp_curve"`
	EIRFFlowCurve                         string      `json:"eir_f_flow_curve"`
	PartLoadFractionCurve                 string      `json:"part_load_fraction_curve"`
	SHRFTempCurve                         string      `json:"shr_f_temp_curve"`
	SHRFFlowCurve                         string      `json:"shr_f_flow_curve"`
}

/*
速度段の入力値を読み込む。

	Notes:
		gross_sensible_heat_ratio が無い場合は自動計算とする。
*/
func (sd *SpeedData) UnmarshalJSON(b []byte) error {
	type speedData SpeedData
	v := speedData{GrossSensibleHeatRatio: Autosizable(coilcooling.AutoSize)}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*sd = SpeedData(v)
	return nil
}

// 計算対象のコイル
type CoilData struct {
	Name          string `json:"name"`
	OperatingMode string `json:"operating_mode"`
}

// 設計条件
type DesignData struct {
	AirFlowRate  float64 `json:"air_flow_rate"`  // 設計風量, m3/s
	InletTemp    float64 `json:"inlet_temp"`     // 設計入口空気温度, degree C
	InletHumRat  float64 `json:"inlet_hum_rat"`  // 設計入口空気絶対湿度, kg/kg(DA)
	OutletTemp   float64 `json:"outlet_temp"`    // 設計出口空気温度, degree C
	OutletHumRat float64 `json:"outlet_hum_rat"` // 設計出口空気絶対湿度, kg/kg(DA)
}

/*
計算条件JSONファイルを読み込む。

	Args:
		file_path: 計算条件JSONファイルへのパス

	Returns:
		計算条件
*/
func load_input(file_path string) (*InputData, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	b, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var rd InputData
	if err := json.Unmarshal(b, &rd); err != nil {
		return nil, fmt.Errorf("input file `%s`: %w", file_path, err)
	}
	return &rd, nil
}

/*
曲線の入力値から曲線を生成する。

	Notes:
		coefficients が無く points がある場合は性能表から係数を求める。
		curve_type は linear, quadratic, cubic, biquadratic のいずれか。
*/
func (cd CurveData) build() (coilcooling.Curve, error) {
	bounds := coilcooling.Bounds{
		MinX: cd.MinX, MaxX: cd.MaxX,
		MinY: cd.MinY, MaxY: cd.MaxY,
		MinOut: cd.MinOut, MaxOut: cd.MaxOut,
	}

	if len(cd.Coefficients) == 0 && len(cd.Points) > 0 {
		return cd.fit()
	}

	c := func(n int) ([]float64, error) {
		if len(cd.Coefficients) != n {
			return nil, fmt.Errorf("curve %q: %s requires %d coefficients, %d given", cd.Name, cd.CurveType, n, len(cd.Coefficients))
		}
		return cd.Coefficients, nil
	}

	switch strings.ToLower(cd.CurveType) {
	case "linear":
		k, err := c(2)
		if err != nil {
			return nil, err
		}
		return &coilcooling.Linear{C1: k[0], C2: k[1], Bounds: bounds}, nil
	case "quadratic":
		k, err := c(3)
		if err != nil {
			return nil, err
		}
		return &coilcooling.Quadratic{C1: k[0], C2: k[1], C3: k[2], Bounds: bounds}, nil
	case "cubic":
		k, err := c(4)
		if err != nil {
			return nil, err
		}
		return &coilcooling.Cubic{C1: k[0], C2: k[1], C3: k[2], C4: k[3], Bounds: bounds}, nil
	case "biquadratic":
		k, err := c(6)
		if err != nil {
			return nil, err
		}
		return &coilcooling.Biquadratic{C1: k[0], C2: k[1], C3: k[2], C4: k[3], C5: k[4], C6: k[5], Bounds: bounds}, nil
	default:
		return nil, fmt.Errorf("curve %q: invalid curve type %q", cd.Name, cd.CurveType)
	}
}

func (cd CurveData) fit() (coilcooling.Curve, error) {
	points := make([]coilcooling.CurvePoint, len(cd.Points))
	for i, p := range cd.Points {
		points[i] = coilcooling.CurvePoint{X: p.X, Y: p.Y, Value: p.Value}
	}

	var (
		c   coilcooling.Curve
		err error
	)
	switch strings.ToLower(cd.CurveType) {
	case "quadratic":
		c, err = coilcooling.FitQuadratic(points)
	case "cubic":
		c, err = coilcooling.FitCubic(points)
	case "biquadratic":
		c, err = coilcooling.FitBiquadratic(points)
	default:
		return nil, fmt.Errorf("curve %q: curve type %q cannot be fitted from points", cd.Name, cd.CurveType)
	}
	if err != nil {
		return nil, fmt.Errorf("curve %q: %w", cd.Name, err)
	}
	return c, nil
}

/*
計算条件から Registry を生成する。

	Notes:
		名前の重複・曲線の係数の誤りはエラーとする。
		名前の参照先の有無は運転モードの生成時に確認する。
*/
func (rd *InputData) registry() (*coilcooling.Registry, error) {
	reg := coilcooling.NewRegistry()

	for _, cd := range rd.Curves {
		c, err := cd.build()
		if err != nil {
			return nil, err
		}
		if err := reg.AddCurve(cd.Name, c); err != nil {
			return nil, err
		}
	}

	for _, md := range rd.OperatingModes {
		err := reg.AddOperatingMode(coilcooling.OperatingModeInput{
			Name:                            md.Name,
			RatedGrossTotalCapacity:         float64(md.RatedGrossTotalCapacity),
			RatedEvaporatorAirFlowRate:      float64(md.RatedEvaporatorAirFlowRate),
			RatedCondenserAirFlowRate:       float64(md.RatedCondenserAirFlowRate),
			MaxCyclingRate:                  md.MaxCyclingRate,
			EvaporationRateRatio:            md.EvaporationRateRatio,
			LatentCapacityTimeConstant:      md.LatentCapacityTimeConstant,
			NominalTimeForCondensateRemoval: md.NominalTimeForCondensateRemoval,
			CondenserType:                   md.CondenserType,
			NominalEvaporativePumpPower:     float64(md.NominalEvaporativePumpPower),
			NominalSpeedNumber:              md.NominalSpeedNumber,
			SpeedNames:                      md.Speeds,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, sd := range rd.Speeds {
		err := reg.AddSpeed(coilcooling.SpeedInput{
			Name:                                  sd.Name,
			GrossTotalCoolingCapacityFraction:     sd.GrossTotalCoolingCapacityFraction,
			EvaporatorAirFlowRateFraction:         sd.EvaporatorAirFlowRateFraction,
			CondenserAirFlowRateFraction:          sd.CondenserAirFlowRateFraction,
			GrossSensibleHeatRatio:                float64(sd.GrossSensibleHeatRatio),
			GrossCOP:                              sd.GrossCOP,
			EvaporativeCondenserEffectiveness:     sd.EvaporativeCondenserEffectiveness,
			EvaporativeCondenserPumpPowerFraction: sd.EvaporativeCondenserPumpPowerFraction,
			TotalCapacityFTempCurve:               sd.TotalCapacityFTempCurve,
			TotalCapacityFFlowCurve:               sd.TotalCapacityFFlowCurve,
			EIRFTempCurve:                         sd.EIRFTempCurve,
			EIRFFlowCurve:                         sd.EIRFFlowCurve,
			PartLoadFractionCurve:                 sd.PartLoadFractionCurve,
			SHRFTempCurve:                         sd.SHRFTempCurve,
			SHRFFlowCurve:                         sd.SHRFFlowCurve,
		})
		if err != nil {
			return nil, err
		}
	}

	return reg, nil
}
