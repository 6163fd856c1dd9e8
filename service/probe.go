package service

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"
)

// ProbePort 对 (ip, port) 做一次 TCP 连接尝试并归类结果
// 只试一次，不重试；无论哪条路径退出都不持有套接字
func ProbePort(ctx context.Context, ip string, port uint16, timeout time.Duration) PortResult {
	addr := net.JoinHostPort(ip, strconv.Itoa(int(port)))

	// 连上就马上关，不需要 keep-alive
	dialer := net.Dialer{Timeout: timeout, KeepAlive: -1}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err == nil {
		_ = conn.Close()
		return PortResult{Port: port, State: StateOpen}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return PortResult{Port: port, State: StateTimeout}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return PortResult{Port: port, State: StateClosed}
	}
	return PortResult{Port: port, State: StateError, Err: err}
}
