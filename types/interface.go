package types

import "fmt"

// Interface 传输线上的物理界面
type Interface uint8

// 界面常量定义
// A 近端(源端), B 结点左侧, C 结点右侧, D 远端(终端)
const (
	InterfaceA Interface = iota // 近端,来自第0段的波
	InterfaceB                  // 结点,来自第0段的波
	InterfaceC                  // 结点,来自第1段的波
	InterfaceD                  // 远端,来自第1段的波
)

// interfaceName 界面名称
var interfaceName = [...]string{
	InterfaceA: "A",
	InterfaceB: "B",
	InterfaceC: "C",
	InterfaceD: "D",
}

// String 返回界面名称
func (i Interface) String() string {
	if i.Valid() {
		return interfaceName[i]
	}
	return fmt.Sprintf("Interface(%d)", uint8(i))
}

// Valid 是否为已定义界面
func (i Interface) Valid() bool { return int(i) < len(interfaceName) }
