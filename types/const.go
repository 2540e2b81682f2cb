package types

import "math"

// 终端特殊取值
var (
	OpenCircuit  = math.Inf(1) // 开路(无穷大终端电阻)
	ShortCircuit = 0.0         // 短路
)

// 默认参数常量定义
var (
	Tolerance          = 1e-3    // 波幅截断容差
	SingleTolerance    = 1e-2    // 单段反射收敛容差
	MaxEvents          = 1000000 // 最大处理事件数
	SingleMaxIteration = 25      // 单段最大反射次数
)

// IsOpen 是否为开路终端
func IsOpen(r float64) bool { return math.IsInf(r, 1) }

// IsShort 是否为短路终端
func IsShort(r float64) bool { return r == 0 }
