// Package load 解析参数卡片文件.
//
// 每行一张卡片,首字段为卡片名,大小写不敏感:
//
//	VS 1            # 源激励值
//	T 1n 2n         # 两段单程延时 T0 T1
//	Z 50 75         # 两段特性阻抗 Z0 Z1
//	RS 25           # 源内阻
//	RT open         # 终端电阻,open/short 或数值
//	TOL 1e-3        # 波幅截断容差
//	MAXEVENTS 1e5   # 最大处理事件数
//	MAXTIME 100n    # 最大仿真时间
//	QUANTITY voltage
//	REFERENCE steady
//	TITLE 标题文本
//
// 以 # 或 // 开头的行为注释,行内 # 之后的内容忽略.
// .value 名称 值 定义变量,之后的卡片可以直接使用变量名.
// 其他以 . 开头的指令被跳过.
package load

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"bewley/coeff"
	"bewley/lattice"
	"bewley/types"
	"bewley/utils"
)

// tokenValue 变量定义指令
const tokenValue = ".value"

// Config 一次仿真的完整配置
type Config struct {
	Title     string              // 标题
	Params    types.Params        // 物理参数
	Quantity  coeff.Quantity      // 物理量
	Reference coeff.ReferenceMode // 截断参考
	MaxEvents int                 // 最大处理事件数
	MaxTime   float64             // 最大仿真时间
}

// NewConfig 默认配置
func NewConfig() *Config {
	return &Config{
		Params:    types.Params{Tolerance: types.Tolerance},
		Quantity:  coeff.Voltage,
		MaxEvents: types.MaxEvents,
	}
}

// Options 转换为仿真选项
func (c *Config) Options() []lattice.Option {
	return []lattice.Option{
		lattice.WithQuantity(c.Quantity),
		lattice.WithReference(c.Reference),
		lattice.WithMaxEvents(c.MaxEvents),
		lattice.WithMaxTime(c.MaxTime),
	}
}

// File 加载参数文件
func File(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// String 从字符串加载
func String(s string) (*Config, error) { return Parse(strings.NewReader(s)) }

// card 卡片处理函数
type card struct {
	args  int
	apply func(cfg *Config, args utils.NetList) error
}

// cards 卡片映射
var cards = map[string]card{
	"VS": {1, func(cfg *Config, a utils.NetList) (err error) {
		cfg.Params.Source, err = a.Float64(0)
		return err
	}},
	"T": {2, func(cfg *Config, a utils.NetList) (err error) {
		if cfg.Params.Delay0, err = a.Float64(0); err != nil {
			return err
		}
		cfg.Params.Delay1, err = a.Float64(1)
		return err
	}},
	"Z": {2, func(cfg *Config, a utils.NetList) (err error) {
		if cfg.Params.Z0, err = a.Float64(0); err != nil {
			return err
		}
		cfg.Params.Z1, err = a.Float64(1)
		return err
	}},
	"RS": {1, func(cfg *Config, a utils.NetList) (err error) {
		cfg.Params.Rs, err = a.Float64(0)
		return err
	}},
	"RT": {1, func(cfg *Config, a utils.NetList) (err error) {
		cfg.Params.Rt, err = a.Resistance(0)
		return err
	}},
	"TOL": {1, func(cfg *Config, a utils.NetList) (err error) {
		cfg.Params.Tolerance, err = a.Float64(0)
		return err
	}},
	"MAXEVENTS": {1, func(cfg *Config, a utils.NetList) (err error) {
		cfg.MaxEvents, err = a.Int(0)
		return err
	}},
	"MAXTIME": {1, func(cfg *Config, a utils.NetList) (err error) {
		cfg.MaxTime, err = a.Float64(0)
		return err
	}},
	"QUANTITY": {1, func(cfg *Config, a utils.NetList) (err error) {
		cfg.Quantity, err = coeff.ParseQuantity(a[0])
		return err
	}},
	"REFERENCE": {1, func(cfg *Config, a utils.NetList) (err error) {
		cfg.Reference, err = coeff.ParseReference(a[0])
		return err
	}},
	"TITLE": {0, func(cfg *Config, a utils.NetList) error {
		cfg.Title = strings.Join(a, " ")
		return nil
	}},
}

// required 必须出现的卡片
var required = []string{"VS", "T", "Z", "RS", "RT"}

// Parse 解析参数卡片
func Parse(r io.Reader) (*Config, error) {
	cfg := NewConfig()
	vars := map[string]string{}
	seen := map[string]bool{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := fieldsOf(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		// 解析指令
		if fields[0][0] == '.' {
			if strings.EqualFold(fields[0], tokenValue) {
				if len(fields) != 3 {
					return nil, fmt.Errorf("line %d: %w: .value needs a name and a value", line, types.ErrInvalidParameter)
				}
				vars[strings.ToLower(fields[1])] = fields[2]
			}
			continue
		}
		name := fields.Name()
		c, ok := cards[name]
		if !ok {
			return nil, fmt.Errorf("line %d: %w: unknown card %q", line, types.ErrInvalidParameter, fields[0])
		}
		args := fields.Args()
		if len(args) < c.args {
			return nil, fmt.Errorf("line %d: %w: %s needs %d values, got %d", line, types.ErrInvalidParameter, name, c.args, len(args))
		}
		// 变量替换
		for i, a := range args {
			if v, ok := vars[strings.ToLower(a)]; ok {
				args[i] = v
			}
		}
		if err := c.apply(cfg, args); err != nil {
			return nil, fmt.Errorf("line %d: %w: %s: %v", line, types.ErrInvalidParameter, name, err)
		}
		seen[name] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for _, name := range required {
		if !seen[name] {
			return nil, fmt.Errorf("%w: missing %s card", types.ErrInvalidParameter, name)
		}
	}
	return cfg, nil
}

// fieldsOf 拆分字段并去掉注释
func fieldsOf(line string) utils.NetList {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
		return nil
	}
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return utils.NetList(strings.Fields(line))
}

// Export 导出参数卡片
func Export(w io.Writer, cfg *Config) error {
	writer := bufio.NewWriter(w)
	if cfg.Title != "" {
		fmt.Fprintf(writer, "TITLE %s\n", cfg.Title)
	}
	p := cfg.Params
	fmt.Fprintf(writer, "VS %s\n", utils.FormatFloat(p.Source))
	fmt.Fprintf(writer, "T %s\n", strings.Join(utils.FromFloats(p.Delay0, p.Delay1), " "))
	fmt.Fprintf(writer, "Z %s\n", strings.Join(utils.FromFloats(p.Z0, p.Z1), " "))
	fmt.Fprintf(writer, "RS %s\n", utils.FormatFloat(p.Rs))
	fmt.Fprintf(writer, "RT %s\n", utils.FormatFloat(p.Rt))
	fmt.Fprintf(writer, "TOL %s\n", utils.FormatFloat(p.Tolerance))
	fmt.Fprintf(writer, "MAXEVENTS %d\n", cfg.MaxEvents)
	if cfg.MaxTime > 0 {
		fmt.Fprintf(writer, "MAXTIME %s\n", utils.FormatFloat(cfg.MaxTime))
	}
	if cfg.Quantity != nil {
		fmt.Fprintf(writer, "QUANTITY %s\n", cfg.Quantity.Name())
	}
	if cfg.Reference != coeff.ReferenceDefault {
		fmt.Fprintf(writer, "REFERENCE %s\n", cfg.Reference)
	}
	return writer.Flush()
}

// ExportFile 导出到文件
func ExportFile(filename string, cfg *Config) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Export(file, cfg)
}
