package coilcooling

import (
	"fmt"
	"strings"
)

// CondenserType は凝縮器の冷却方式。
type CondenserType int

const (
	AirCooled CondenserType = iota + 1
	EvaporativelyCooled
)

func (c CondenserType) String() string {
	switch c {
	case AirCooled:
		return "AirCooled"
	case EvaporativelyCooled:
		return "EvaporativelyCooled"
	default:
		return fmt.Sprintf("CondenserType(%d)", int(c))
	}
}

/*
文字列から凝縮器の冷却方式を求める。

	Notes:
		大文字小文字は区別しない。既定値は無く、一致しない場合はエラーとする。
*/
func ParseCondenserType(s string) (CondenserType, error) {
	switch {
	case strings.EqualFold(s, "AirCooled"):
		return AirCooled, nil
	case strings.EqualFold(s, "EvaporativelyCooled"):
		return EvaporativelyCooled, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCondenserType, s)
	}
}

// OperatingModeInput は運転モードの入力値。
type OperatingModeInput struct {
	Name                            string
	RatedGrossTotalCapacity         float64 // W または AutoSize
	RatedEvaporatorAirFlowRate      float64 // m3/s または AutoSize
	RatedCondenserAirFlowRate       float64 // m3/s または AutoSize
	MaxCyclingRate                  float64 // cycles/hr
	EvaporationRateRatio            float64 // -
	LatentCapacityTimeConstant      float64 // s
	NominalTimeForCondensateRemoval float64 // s
	CondenserType                   string
	NominalEvaporativePumpPower     float64 // W または AutoSize
	NominalSpeedNumber              int     // 0 の場合は最高速
	SpeedNames                      []string
}

// SpeedInput は速度段の入力値。各割合は公称速度段に対する値。
type SpeedInput struct {
	Name                                  string
	GrossTotalCoolingCapacityFraction     float64
	EvaporatorAirFlowRateFraction         float64
	CondenserAirFlowRateFraction          float64
	GrossSensibleHeatRatio                float64 // - または AutoSize
	GrossCOP                              float64 // W/W
	EvaporativeCondenserEffectiveness     float64 // -
	EvaporativeCondenserPumpPowerFraction float64 // -
	TotalCapacityFTempCurve               string
	TotalCapacityFFlowCurve               string
	EIRFTempCurve                         string
	EIRFFlowCurve                         string
	PartLoadFractionCurve                 string
	SHRFTempCurve                         string // 省略可
	SHRFFlowCurve                         string // 省略可
}

/*
入力オブジェクトを名前で保持する。

	Notes:
		読み込み時に一度だけ登録し、以降は参照のみを行う。
		名前の照合は大文字小文字を区別しない。
*/
type Registry struct {
	modes  map[string]OperatingModeInput
	speeds map[string]SpeedInput
	curves map[string]Curve
}

func NewRegistry() *Registry {
	return &Registry{
		modes:  make(map[string]OperatingModeInput),
		speeds: make(map[string]SpeedInput),
		curves: make(map[string]Curve),
	}
}

func registryKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func (r *Registry) AddOperatingMode(in OperatingModeInput) error {
	k := registryKey(in.Name)
	if _, ok := r.modes[k]; ok {
		return fmt.Errorf("%w: operating mode %q", ErrDuplicateObject, in.Name)
	}
	r.modes[k] = in
	return nil
}

func (r *Registry) AddSpeed(in SpeedInput) error {
	k := registryKey(in.Name)
	if _, ok := r.speeds[k]; ok {
		return fmt.Errorf("%w: speed %q", ErrDuplicateObject, in.Name)
	}
	r.speeds[k] = in
	return nil
}

func (r *Registry) AddCurve(name string, c Curve) error {
	k := registryKey(name)
	if _, ok := r.curves[k]; ok {
		return fmt.Errorf("%w: curve %q", ErrDuplicateObject, name)
	}
	r.curves[k] = c
	return nil
}

func (r *Registry) OperatingMode(name string) (OperatingModeInput, error) {
	in, ok := r.modes[registryKey(name)]
	if !ok {
		return OperatingModeInput{}, fmt.Errorf("%w: operating mode %q", ErrObjectNotFound, name)
	}
	return in, nil
}

func (r *Registry) Speed(name string) (SpeedInput, error) {
	in, ok := r.speeds[registryKey(name)]
	if !ok {
		return SpeedInput{}, fmt.Errorf("%w: speed %q", ErrObjectNotFound, name)
	}
	return in, nil
}

func (r *Registry) Curve(name string) (Curve, error) {
	c, ok := r.curves[registryKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: curve %q", ErrObjectNotFound, name)
	}
	return c, nil
}

// 省略可能な曲線。空文字の場合は nil を返す。
func (r *Registry) optionalCurve(name string) (Curve, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	return r.Curve(name)
}
