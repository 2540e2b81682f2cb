package coeff

import (
	"fmt"
	"strings"

	"bewley/types"
)

// ReferenceMode 波幅截断使用的参考值
type ReferenceMode uint8

const (
	ReferenceDefault ReferenceMode = iota // 由物理量决定
	ReferenceSteady                       // 使用稳态值
	ReferenceInitial                      // 使用初始值
)

// String 返回参考模式名称
func (m ReferenceMode) String() string {
	switch m {
	case ReferenceSteady:
		return "steady"
	case ReferenceInitial:
		return "initial"
	default:
		return "default"
	}
}

// ParseReference 解析参考模式名称
func ParseReference(name string) (ReferenceMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return ReferenceDefault, nil
	case "steady":
		return ReferenceSteady, nil
	case "initial":
		return ReferenceInitial, nil
	}
	return ReferenceDefault, fmt.Errorf("%w: unknown tolerance reference %q", types.ErrInvalidParameter, name)
}

// Quantity 被追踪的物理量策略
// 提供初始注入值、稳态值以及默认的截断参考
type Quantity interface {
	Name() string                   // 物理量名称
	Unit() string                   // 单位
	Check(p types.Params) error     // 物理量相关的参数检查
	Initial(p types.Params) float64 // 初始注入值
	Steady(p types.Params) float64  // 稳态参考值
	Reference() ReferenceMode       // 默认截断参考
}

// 物理量定义
var (
	Voltage Quantity = voltage{}
	Current Quantity = current{}
)

// ParseQuantity 通过名称获取物理量
func ParseQuantity(name string) (Quantity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "v", "voltage":
		return Voltage, nil
	case "i", "current":
		return Current, nil
	}
	return nil, fmt.Errorf("%w: unknown quantity %q", types.ErrInvalidParameter, name)
}

// voltage 电压
type voltage struct{}

func (voltage) Name() string             { return "voltage" }
func (voltage) Unit() string             { return "V" }
func (voltage) Check(types.Params) error { return nil }
func (voltage) Reference() ReferenceMode { return ReferenceSteady }

// Initial 源内阻与第0段阻抗分压,写成 Vs/(1+Rs/Z0) 避免大阻抗溢出
func (voltage) Initial(p types.Params) float64 { return p.Source / (1 + p.Rs/p.Z0) }

// Steady 开路时等于源值,短路时为0
func (voltage) Steady(p types.Params) float64 {
	switch {
	case types.IsOpen(p.Rt):
		return p.Source
	case types.IsShort(p.Rt):
		return 0
	}
	return p.Source / (1 + p.Rs/p.Rt)
}

// current 电流
// 初始值沿用 Vs/(Rs+Rt) 分压形式,与电压的首时刻分压不同
type current struct{}

func (current) Name() string             { return "current" }
func (current) Unit() string             { return "A" }
func (current) Reference() ReferenceMode { return ReferenceInitial }

// Check 源内阻与终端同时为0时分母为0
func (current) Check(p types.Params) error {
	if p.Rs+p.Rt == 0 {
		return fmt.Errorf("%w: source and termination resistance are both zero", types.ErrInvalidParameter)
	}
	return nil
}

func (c current) Initial(p types.Params) float64 { return c.Steady(p) }

func (current) Steady(p types.Params) float64 {
	if types.IsOpen(p.Rt) {
		return 0
	}
	return p.Source / (p.Rs + p.Rt)
}
