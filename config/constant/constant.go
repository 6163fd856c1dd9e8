package constant

type EngineStatus int8

const (
	EngineInit    EngineStatus = 0
	EngineRunning EngineStatus = 1
	EngineStop    EngineStatus = 2
)

// 扫描参数的默认值，CLI 和 HTTP API 共用
const (
	DefaultPortSpec       string = "1-1024"
	DefaultConcurrency    uint   = 1000
	DefaultTimeoutSeconds uint   = 3
	DefaultServeAddr      string = ":8080"
)
