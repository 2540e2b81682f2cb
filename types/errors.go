package types

import "errors"

// 错误分类
var (
	// ErrInvalidParameter 参数非法,在仿真开始前拒绝
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrBudgetExceeded 在容差衰减之前达到事件或时间上限
	ErrBudgetExceeded = errors.New("did not converge within budget")
)
