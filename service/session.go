package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ScanConfig 一次扫描的全部参数，构造之后不再修改
type ScanConfig struct {
	Target      string
	IP          string
	Ports       []uint16
	Concurrency uint
	Timeout     time.Duration
	Rate        uint
	Verbose     bool
}

// NewScanConfig 校验外部输入并构造 ScanConfig
// 端口表达式非法、目标解析失败、并发或超时为零都在这里挡下来，
// 此时一个连接都还没发起
func NewScanConfig(target, portSpec string, concurrency, timeoutSeconds, rateLimit uint, verbose bool) (ScanConfig, error) {
	if concurrency == 0 {
		return ScanConfig{}, errors.New("concurrency must be a positive integer")
	}
	if timeoutSeconds == 0 {
		return ScanConfig{}, errors.New("timeout must be a positive number of seconds")
	}
	ports, err := ParsePortSpec(portSpec)
	if err != nil {
		return ScanConfig{}, err
	}
	ip, err := resolveTarget(target)
	if err != nil {
		return ScanConfig{}, err
	}
	return ScanConfig{
		Target:      target,
		IP:          ip,
		Ports:       ports,
		Concurrency: concurrency,
		Timeout:     time.Duration(timeoutSeconds) * time.Second,
		Rate:        rateLimit,
		Verbose:     verbose,
	}, nil
}

// ScanSession 把一次扫描的配置和它的准入结构绑在一起
// 信号量和限速器按会话创建，同一进程里的多个会话互不干扰
type ScanSession struct {
	ID      string
	cfg     ScanConfig
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewScanSession 创建一个新的扫描会话
func NewScanSession(cfg ScanConfig) *ScanSession {
	s := &ScanSession{
		ID:  uuid.NewString(),
		cfg: cfg,
		sem: semaphore.NewWeighted(int64(cfg.Concurrency)),
	}
	if cfg.Rate > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), int(cfg.Rate))
	}
	return s
}
