package service

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"eyes/config/constant"
)

// 开放端口在终端里标绿
const (
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
)

type ReportEngine struct {
	// 引擎状态
	Status constant.EngineStatus

	// 存放主线程的 wait group
	mainWaitGroup *sync.WaitGroup

	// 存放自己的 wait group
	waitGroup *sync.WaitGroup

	// 接受结果的队列
	outcomeChan *chan PortResult

	// 结果输出的目的地，正常跑是 stdout，测试里是 buffer
	out io.Writer

	// verbose 打开后 closed/timeout 也会输出
	verbose bool

	// 是否带 ANSI 颜色
	color bool
}

// NewReportEngine 创建一个新的 ReportEngine
func NewReportEngine(mainWaitGroup *sync.WaitGroup, outcomeChan *chan PortResult, out io.Writer, verbose bool, color bool) *ReportEngine {
	var waitGroup sync.WaitGroup
	return &ReportEngine{
		Status:        constant.EngineInit,
		mainWaitGroup: mainWaitGroup,
		waitGroup:     &waitGroup,
		outcomeChan:   outcomeChan,
		out:           out,
		verbose:       verbose,
		color:         color,
	}
}

// Run 启动 ReportEngine
func (engine *ReportEngine) Run() {
	defer func() {
		engine.mainWaitGroup.Done()
	}()

	engine.waitGroup.Add(1)
	go engine.worker()
	engine.waitGroup.Wait()

	logger.Debugf("ReportEngine exit.")
}

// worker 真正的工作函数
// 结果按到达顺序逐行输出；流关闭后补一行结束标记
func (engine *ReportEngine) worker() {
	defer engine.waitGroup.Done()

	tag := "[ReportEngine]"
	logger.Debugf("%s worker start.", tag)

	engine.Status = constant.EngineRunning
	writer := bufio.NewWriter(engine.out)

	for {
		result, opened := <-*engine.outcomeChan
		if !opened {
			break
		}

		line := engine.renderLine(result)
		if line == "" {
			continue
		}
		_, _ = writer.WriteString(line)
		_ = writer.Flush()
	}

	// 不管扫完还是被取消，结束标记都要有
	_, _ = writer.WriteString("[eyes] Finished scan\n")
	_ = writer.Flush()

	engine.Status = constant.EngineStop
	logger.Debugf("%s worker stop.", tag)
}

// renderLine 按 verbose 设置决定一条结果输出成什么，返回空串表示不输出
// error 结果不受 verbose 控制，永远输出
func (engine *ReportEngine) renderLine(result PortResult) string {
	switch result.State {
	case StateOpen:
		state := result.State.String()
		if engine.color {
			state = colorGreen + state + colorReset
		}
		return fmt.Sprintf("%d: %s\n", result.Port, state)
	case StateError:
		return fmt.Sprintf("%d: error: %v\n", result.Port, result.Err)
	default:
		if engine.verbose {
			return fmt.Sprintf("%d: %s\n", result.Port, result.State)
		}
	}
	return ""
}
