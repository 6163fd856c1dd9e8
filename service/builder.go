package service

import (
	"context"
	"sync"

	"eyes/config/constant"
)

// PortFeeder 生产探测任务的引擎，把会话里的端口集合灌进工作队列
type PortFeeder struct {

	// 引擎状态
	Status constant.EngineStatus

	// 所属会话
	session *ScanSession

	// 存放主线程的 wg
	mainWaitGroup *sync.WaitGroup

	// 待探测的端口放到这个 channel 中
	portJobChan *chan uint16
}

// NewPortFeeder 构造一个新的 PortFeeder
func NewPortFeeder(session *ScanSession, mainWg *sync.WaitGroup, portJobChan *chan uint16) *PortFeeder {
	return &PortFeeder{
		Status:        constant.EngineInit,
		session:       session,
		mainWaitGroup: mainWg,
		portJobChan:   portJobChan,
	}
}

// Run 启动 PortFeeder 引擎
func (f *PortFeeder) Run(ctx context.Context) {
	defer f.mainWaitGroup.Done()
	f.worker(ctx)
}

func (f *PortFeeder) worker(ctx context.Context) {
	defer func() {
		logger.Debugf("PortFeeder defer() called.")
		close(*f.portJobChan)
		f.Status = constant.EngineStop
	}()

	f.Status = constant.EngineRunning
	var queuedCount uint = 0

	// 把任务塞到队列里，会话被取消时立刻停止投喂
	for _, port := range f.session.cfg.Ports {
		select {
		case <-ctx.Done():
			logger.Warnf("Session %s aborted, %d jobs were added before that.", f.session.ID, queuedCount)
			return
		case *f.portJobChan <- port:
			queuedCount += 1
		}
	}

	logger.Debugf("Session %s: %d jobs were successfully added.", f.session.ID, queuedCount)
}
