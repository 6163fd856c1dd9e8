package service

import (
	"context"
	"sync"
	"time"

	"eyes/config/constant"
)

// probeFunc 抽出来是为了在测试里换掉真正的 TCP 探测
type probeFunc func(ctx context.Context, ip string, port uint16, timeout time.Duration) PortResult

type ScanEngine struct {
	// 引擎状态
	Status constant.EngineStatus

	// 所属会话
	session *ScanSession

	// 存放主线程的 wg
	mainWaitGroup *sync.WaitGroup

	// 接受探测任务的队列
	portJobChan *chan uint16

	// 存放探测结果的队列
	outcomeChan *chan PortResult

	// 实际执行探测的函数
	probe probeFunc
}

// NewScanEngine 创建新的 ScanEngine
func NewScanEngine(session *ScanSession, mainWaitGroup *sync.WaitGroup, portJobChan *chan uint16, outcomeChan *chan PortResult) *ScanEngine {
	return &ScanEngine{
		Status:        constant.EngineInit,
		session:       session,
		mainWaitGroup: mainWaitGroup,
		portJobChan:   portJobChan,
		outcomeChan:   outcomeChan,
		probe:         ProbePort,
	}
}

// Run 启动 Scan Engine
// 同一时刻未归类的探测数不会超过会话的并发上限，
// 队列耗尽且所有在飞的探测退出后才关闭结果队列
func (engine *ScanEngine) Run(ctx context.Context) {

	defer func() {
		engine.mainWaitGroup.Done()
		close(*engine.outcomeChan)
		engine.Status = constant.EngineStop
	}()

	engine.Status = constant.EngineRunning

	// 引擎自己控制自己协程组的 waitGroup
	var waitGroup sync.WaitGroup
	for {
		port, opened := <-*engine.portJobChan
		if !opened {
			break
		}

		// 先拿到准入名额再起协程，这样在飞的探测数永远不超过上限
		if err := engine.session.sem.Acquire(ctx, 1); err != nil {
			logger.Warnf("[ScanEngine] Session %s admission stopped: %v", engine.session.ID, err)
			break
		}

		waitGroup.Add(1)
		go engine.worker(ctx, port, &waitGroup)
	}

	// 等待所有的 worker 运行完成，取消时它们也会很快返回并释放套接字
	waitGroup.Wait()
	logger.Debugf("[ScanEngine] Session %s exit.", engine.session.ID)
}

func (engine *ScanEngine) worker(ctx context.Context, port uint16, wg *sync.WaitGroup) {
	// 名额要等结果发出去（或者确定丢弃）之后才能还回去
	defer wg.Done()
	defer engine.session.sem.Release(1)

	if engine.session.limiter != nil {
		if err := engine.session.limiter.Wait(ctx); err != nil {
			return
		}
	}

	result := engine.probe(ctx, engine.session.cfg.IP, port, engine.session.cfg.Timeout)

	// 会话被取消后结果一律丢弃，这个端口不会再有第二次结果
	if ctx.Err() != nil {
		return
	}
	select {
	case <-ctx.Done():
	case *engine.outcomeChan <- result:
		logger.Debugf("[ScanEngine] %d/tcp -> %s", result.Port, result.State)
	}
}
