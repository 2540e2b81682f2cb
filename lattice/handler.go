package lattice

import (
	"bewley/event"
	"bewley/types"
)

// handler 界面处理函数
// 更新对应波形并生成反射/透射子事件
type handler func(s *state, e event.Event)

// handlers 按界面索引
var handlers = [...]handler{
	types.InterfaceA: handleNear,
	types.InterfaceB: handleJunctionLeft,
	types.InterfaceC: handleJunctionRight,
	types.InterfaceD: handleFar,
}

// handleNear 近端: 反射回结点
func handleNear(s *state, e event.Event) {
	x, c := e.Magnitude, &s.c
	s.near.Step(e.Time, x*(1+c.RhoA))
	s.spawn(e.Time+s.p.Delay0, types.InterfaceB, x*c.RhoA)
}

// handleJunctionLeft 结点(来自第0段): 反射回近端,透射到远端
func handleJunctionLeft(s *state, e event.Event) {
	x, c := e.Magnitude, &s.c
	s.central.Step(e.Time, x*(1+c.RhoB))
	s.spawn(e.Time+s.p.Delay0, types.InterfaceA, x*c.RhoB)
	s.spawn(e.Time+s.p.Delay1, types.InterfaceD, x*c.TB)
}

// handleJunctionRight 结点(来自第1段): 反射回远端,透射到近端
func handleJunctionRight(s *state, e event.Event) {
	x, c := e.Magnitude, &s.c
	s.central.Step(e.Time, x*(1+c.RhoC))
	s.spawn(e.Time+s.p.Delay1, types.InterfaceD, x*c.RhoC)
	s.spawn(e.Time+s.p.Delay0, types.InterfaceA, x*c.TC)
}

// handleFar 远端: 反射回结点
func handleFar(s *state, e event.Event) {
	x, c := e.Magnitude, &s.c
	s.far.Step(e.Time, x*(1+c.RhoD))
	s.spawn(e.Time+s.p.Delay1, types.InterfaceC, x*c.RhoD)
}
