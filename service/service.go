package service

import (
	"eyes/logging"
)

var logger = logging.GetSugar()

// PortState 表示一次探测之后端口的归类
type PortState uint8

const (
	StateUnknown PortState = iota
	StateOpen
	StateClosed
	StateTimeout
	StateError
)

func (s PortState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateTimeout:
		return "timeout"
	case StateError:
		return "error"
	}
	return "unknown"
}

// PortResult 表示一个端口的探测结果
// 每个端口恰好产生一个，由 ScanEngine 发出、下游消费
type PortResult struct {
	Port  uint16
	State PortState
	Err   error
}
