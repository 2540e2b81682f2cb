package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NetList 参数卡片字段
type NetList []string

// FromFloats 将浮点数转换为 NetList
func FromFloats(values ...float64) NetList {
	result := make(NetList, len(values))
	for i, v := range values {
		result[i] = FormatFloat(v)
	}
	return result
}

// FormatFloat 格式化浮点数,开路写作 open
func FormatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "open"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Name 卡片名称(大写)
func (value NetList) Name() string {
	if len(value) == 0 {
		return ""
	}
	return strings.ToUpper(value[0])
}

// Args 卡片参数
func (value NetList) Args() NetList {
	if len(value) < 2 {
		return NetList{}
	}
	return value[1:]
}

// Int 严格解析整数
func (value NetList) Int(i int) (int, error) {
	if i >= len(value) {
		return 0, fmt.Errorf("missing field %d", i+1)
	}
	v, err := Float(value[i])
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("field %q is not an integer", value[i])
	}
	return int(v), nil
}

// Float64 严格解析浮点数,支持工程单位后缀
func (value NetList) Float64(i int) (float64, error) {
	if i >= len(value) {
		return 0, fmt.Errorf("missing field %d", i+1)
	}
	return Float(value[i])
}

// Resistance 解析电阻,open/inf 为开路,short 为短路
func (value NetList) Resistance(i int) (float64, error) {
	if i >= len(value) {
		return 0, fmt.Errorf("missing field %d", i+1)
	}
	switch strings.ToLower(value[i]) {
	case "open", "inf", "infinity", "oc":
		return math.Inf(1), nil
	case "short", "sc":
		return 0, nil
	}
	return Float(value[i])
}

// suffix 工程单位后缀,按长度优先匹配
var suffix = []struct {
	name  string
	scale float64
}{
	{"meg", 1e6},
	{"mil", 25.4e-6},
	{"t", 1e12},
	{"g", 1e9},
	{"k", 1e3},
	{"m", 1e-3},
	{"u", 1e-6},
	{"µ", 1e-6},
	{"n", 1e-9},
	{"p", 1e-12},
	{"f", 1e-15},
}

// Float 解析数值,如 50, 1e-9, 2.5n, 10meg
func Float(s string) (float64, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if v, err := strconv.ParseFloat(str, 64); err == nil {
		return v, nil
	}
	for _, sf := range suffix {
		if num, ok := strings.CutSuffix(str, sf.name); ok && num != "" {
			if v, err := strconv.ParseFloat(num, 64); err == nil {
				return v * sf.scale, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid number %q", s)
}
