package coilcooling

// AutoSize は入力値が自動計算の対象であることを表す。
const AutoSize = -99999.0

// 標準大気圧（海面）, Pa
func get_std_pressure() float64 {
	return 101325.0
}

// 定格入口空気乾球温度, degree C (80 F)
func get_rated_inlet_air_temp() float64 {
	return 26.6667
}

// 定格入口空気絶対湿度, kg/kg(DA) (80 F db / 67 F wb)
func get_rated_inlet_air_hum_rat() float64 {
	return 0.0111847
}

// 定格入口空気湿球温度, degree C (67 F)
func get_rated_inlet_wet_bulb_temp() float64 {
	return 19.4444
}

// 定格外気温度, degree C (95 F)
func get_rated_outdoor_air_temp() float64 {
	return 35.0
}

// 定格全冷却能力当たりの凝縮器風量, m3/s/W (850 cfm/ton)
func get_cond_air_flow_per_capacity() float64 {
	return 0.000114
}

// 定格全冷却能力当たりの蒸発式凝縮器ポンプ動力, W/W (15 W/ton)
func get_evap_pump_power_per_capacity() float64 {
	return 0.004266
}

// 部分負荷率曲線の下限値
func get_min_plf() float64 {
	return 0.7
}

// IsAutoSize は値が AutoSize を表すかどうかを判定する。
func IsAutoSize(v float64) bool {
	return v == AutoSize
}
