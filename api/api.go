package api

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"eyes/config"
	"eyes/config/constant"
	"eyes/logging"
	"eyes/service"
)

var logger = logging.GetSugar()
var appConfig = config.GetAppConfig()

// ScanRequest 一次扫描请求，没填的参数用默认值
type ScanRequest struct {
	Target         string `json:"target" binding:"required"`
	Ports          string `json:"ports"`
	Concurrency    uint   `json:"concurrency"`
	TimeoutSeconds uint   `json:"timeout_seconds"`
	Rate           uint   `json:"rate"`
}

// PortEntry 响应里单个端口的结论
type PortEntry struct {
	Port  uint16 `json:"port"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// ScanResponse 一次扫描的完整结果，按端口号排好序
type ScanResponse struct {
	SessionID  string      `json:"session_id"`
	Target     string      `json:"target"`
	IP         string      `json:"ip"`
	DurationMS int64       `json:"duration_ms"`
	Results    []PortEntry `json:"results"`
}

// NewRouter 注册路由，测试的时候直接对 router 调 ServeHTTP
func NewRouter() *gin.Engine {
	router := gin.Default()

	scanGroup := router.Group("/api")
	{
		scanGroup.POST("/scans", ScanHandler)
	}

	return router
}

// RunServer 启动 HTTP API
func RunServer(addr string) error {
	if !appConfig.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewRouter().Run(addr)
}

// ScanHandler 同步跑完一次扫描再返回
// 每个请求是一个独立会话，互相不挤占并发名额；客户端断开连接就取消扫描
func ScanHandler(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if req.Ports == "" {
		req.Ports = constant.DefaultPortSpec
	}
	if req.Concurrency == 0 {
		req.Concurrency = constant.DefaultConcurrency
	}
	if req.TimeoutSeconds == 0 {
		req.TimeoutSeconds = constant.DefaultTimeoutSeconds
	}

	cfg, err := service.NewScanConfig(req.Target, req.Ports, req.Concurrency, req.TimeoutSeconds, req.Rate, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := service.NewScanSession(cfg)
	logger.Infof("Session %s: scanning %d ports on %s for %s", session.ID, len(cfg.Ports), cfg.IP, c.ClientIP())
	startTime := time.Now()

	ctx := c.Request.Context()
	portJobChan := make(chan uint16, 64)
	outcomeChan := make(chan service.PortResult, 4)

	var waitGroup sync.WaitGroup

	scanEngine := service.NewScanEngine(session, &waitGroup, &portJobChan, &outcomeChan)
	waitGroup.Add(1)
	go scanEngine.Run(ctx)

	feeder := service.NewPortFeeder(session, &waitGroup, &portJobChan)
	waitGroup.Add(1)
	go feeder.Run(ctx)

	results := make([]PortEntry, 0, len(cfg.Ports))
	for result := range outcomeChan {
		entry := PortEntry{Port: result.Port, State: result.State.String()}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		}
		results = append(results, entry)
	}
	waitGroup.Wait()

	if ctx.Err() != nil {
		logger.Warnf("Session %s cancelled by client.", session.ID)
		return
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Port < results[j].Port
	})

	c.JSON(http.StatusOK, ScanResponse{
		SessionID:  session.ID,
		Target:     cfg.Target,
		IP:         cfg.IP,
		DurationMS: time.Since(startTime).Milliseconds(),
		Results:    results,
	})
}
