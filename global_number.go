package main

// 標準大気圧, Pa
func get_std_pressure() float64 {
	return 101325.0
}

// 顕熱比の相関式に用いる風量能力比の下限, m3/s/W
func get_min_flow_per_capacity() float64 {
	return 4.027e-5
}

// 顕熱比の相関式に用いる風量能力比の上限, m3/s/W
func get_max_flow_per_capacity() float64 {
	return 6.041e-5
}

// 入力値と設計値の差の許容割合, -
func get_sizing_mismatch_ratio() float64 {
	return 0.1
}
