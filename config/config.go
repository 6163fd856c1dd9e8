package config

type AppConfig struct {
	Target string
	Ports  string

	Concurrency uint
	Timeout     uint
	Rate        uint

	Verbose bool

	ServeAddr string

	Debug bool
}

var appConfig AppConfig

func GetAppConfig() *AppConfig {
	return &appConfig
}
