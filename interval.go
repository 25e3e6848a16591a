package main

import "fmt"

// インターバル
type Interval string

// インターバル
const (
	IntervalH1  Interval = "1h"
	IntervalM30 Interval = "30m"
	IntervalM15 Interval = "15m"
)

// 文字列からインターバルを求める。
func ParseInterval(s string) (Interval, error) {
	switch i := Interval(s); i {
	case IntervalH1, IntervalM30, IntervalM15:
		return i, nil
	default:
		return "", fmt.Errorf("invalid interval %q (1h, 30m, 15m)", s)
	}
}

/*
1時間を分割するステップ数を求める。

	Returns:
		1時間を分割するステップ数

	Notes:
		1時間: 1
		30分: 2
		15分: 4
*/
func (i Interval) get_n_hour() int {
	switch i {
	case IntervalH1:
		return 1
	case IntervalM30:
		return 2
	case IntervalM15:
		return 4
	default:
		panic("invalid interval")
	}
}

/*
1時間を分割するステップに応じてインターバル時間を取得する。

	Returns:
		インターバル時間, h
*/
func (i Interval) get_time() float64 {
	return 1.0 / float64(i.get_n_hour())
}

/*
1時間を分割するステップに応じてインターバル時間を取得する。

	Returns:
		インターバル時間, s
*/
func (i Interval) get_delta_t() float64 {
	return 3600.0 * i.get_time()
}

// ステップ n の経過時間, h
func (i Interval) elapsed_hour(n int) float64 {
	return float64(n) * i.get_time()
}
