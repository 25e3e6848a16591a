package coilcooling

// SpeedIndex は速度段の 0 始まりの添字。呼び出し側の速度段番号は 1 始まり。
type SpeedIndex int

/*
速度段番号から添字を求める。

	Args:
		speedNum: 速度段番号（1 始まり）
		n: 速度段の数

	Returns:
		添字（0 始まり）

	Notes:
		1 未満の番号は最低速、n を超える番号は最高速とする。
		n が 0 以下の場合は 0 を返す。
*/
func SpeedIndexFor(speedNum, n int) SpeedIndex {
	if speedNum < 1 || n < 1 {
		return 0
	}
	// 1 未満とは異なり、n を超える番号は最低速ではなく最高速に丸める。
	if speedNum > n {
		return SpeedIndex(n - 1)
	}
	return SpeedIndex(speedNum - 1)
}

// Number は 1 始まりの速度段番号を返す。
func (i SpeedIndex) Number() int {
	return int(i) + 1
}

// Lower は1段下の添字を返す。最低速の場合はそのまま。
func (i SpeedIndex) Lower() SpeedIndex {
	if i <= 0 {
		return 0
	}
	return i - 1
}
