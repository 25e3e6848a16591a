package coilcooling

import "fmt"

// AirNode は空気側ノードの状態。
type AirNode struct {
	MassFlowRate float64 // 質量流量, kg/s
	Pressure     float64 // 圧力, Pa
	Temp         float64 // 乾球温度, degree C
	HumRat       float64 // 絶対湿度, kg/kg(DA)
	Enthalpy     float64 // 比エンタルピー, J/kg(DA)
}

// FanOperation は送風機の運転方法。
type FanOperation int

const (
	CyclingFan    FanOperation = iota + 1 // CycFanCycCoil : 送風機・圧縮機ともに発停
	ContinuousFan                         // ContFanCycCoil : 送風機連続・圧縮機発停
)

func (f FanOperation) String() string {
	switch f {
	case CyclingFan:
		return "CycFanCycCoil"
	case ContinuousFan:
		return "ContFanCycCoil"
	default:
		return fmt.Sprintf("FanOperation(%d)", int(f))
	}
}

// Environment は外気の状態を提供する。
type Environment interface {
	OutDryBulbTemp() float64 // 外気乾球温度, degree C
	OutHumRat() float64      // 外気絶対湿度, kg/kg(DA)
	OutBaroPress() float64   // 大気圧, Pa
}

// Reporter は設定上の警告・エラーを受け取る。logger.Logger が満たす。
type Reporter interface {
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type discardReporter struct{}

func (discardReporter) Warnf(string, ...interface{})  {}
func (discardReporter) Errorf(string, ...interface{}) {}
