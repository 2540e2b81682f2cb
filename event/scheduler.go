package event

import "container/heap"

// Scheduler 时间优先队列
// 以 (时间, 入队序号) 作为复合键,相同时间按入队顺序弹出
type Scheduler struct {
	items  queue  // 堆
	seq    uint64 // 自增序号
	popped int    // 已弹出数量
}

// NewScheduler 创建队列
func NewScheduler() *Scheduler {
	return &Scheduler{items: make(queue, 0, 16)}
}

// Push 入队,为事件分配序号
func (s *Scheduler) Push(e Event) {
	s.seq++
	e.seq = s.seq
	heap.Push(&s.items, e)
}

// Pop 弹出时间最早的事件
func (s *Scheduler) Pop() (Event, bool) {
	if len(s.items) == 0 {
		return Event{}, false
	}
	s.popped++
	return heap.Pop(&s.items).(Event), true
}

// Peek 查看队首
func (s *Scheduler) Peek() (Event, bool) {
	if len(s.items) == 0 {
		return Event{}, false
	}
	return s.items[0], true
}

// Len 待处理数量
func (s *Scheduler) Len() int { return len(s.items) }

// Empty 是否为空
func (s *Scheduler) Empty() bool { return len(s.items) == 0 }

// Pushed 累计入队数量
func (s *Scheduler) Pushed() uint64 { return s.seq }

// Popped 累计弹出数量
func (s *Scheduler) Popped() int { return s.popped }

// queue 实现 heap.Interface
type queue []Event

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].Less(q[j]) }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(Event)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}
