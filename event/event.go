// Package event 波包事件与按时间排序的调度队列.
package event

import (
	"fmt"

	"bewley/types"
)

// Event 待处理的波包
// 到达时间、目标界面和带符号的幅值,入队后不再修改
type Event struct {
	Time      float64         // 到达时间
	Interface types.Interface // 目标界面
	Magnitude float64         // 幅值
	seq       uint64          // 入队序号
}

// New 创建事件
func New(t float64, it types.Interface, magnitude float64) Event {
	return Event{Time: t, Interface: it, Magnitude: magnitude}
}

// Seq 入队序号,未入队的事件为0
func (e Event) Seq() uint64 { return e.seq }

// Less 按 (时间, 序号) 比较
func (e Event) Less(o Event) bool {
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	return e.seq < o.seq
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%g(%g)", e.Interface, e.Time, e.Magnitude)
}
