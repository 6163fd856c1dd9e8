package cmd

import (
	"context"
	"eyes/api"
	"eyes/config"
	"eyes/config/constant"
	"eyes/logging"
	"eyes/service"
	"fmt"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var logger = logging.GetSugar()
var appConfig = config.GetAppConfig()

func RunApp() error {
	// -v 留给 verbose 用，--version 不再占用短参数
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}

	app := &cli.App{
		Name:      "eyes",
		Usage:     "TCP connect port scanner",
		ArgsUsage: "<target>",
		Action:    MainAction,
		Version:   "0.1.0",
		Flags: []cli.Flag{

			&cli.StringFlag{
				Name:        "ports",
				Usage:       "List of ports to scan, e.g. 22,80,8000-8100",
				Destination: &appConfig.Ports,
				Value:       constant.DefaultPortSpec,
				Aliases:     []string{"p"},
			},

			&cli.UintFlag{
				Name:        "concurrency",
				Usage:       "Number of simultaneous connection attempts",
				Destination: &appConfig.Concurrency,
				Value:       constant.DefaultConcurrency,
				Aliases:     []string{"c"},
			},

			&cli.UintFlag{
				Name:        "timeout",
				Usage:       "Connection timeout in seconds",
				Destination: &appConfig.Timeout,
				Value:       constant.DefaultTimeoutSeconds,
				Aliases:     []string{"t"},
			},

			&cli.UintFlag{
				Name:        "rate",
				Usage:       "Maximum connection attempts per second, 0 means unlimited",
				Destination: &appConfig.Rate,
				Value:       0,
				Aliases:     []string{"r"},
			},

			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "Display detailed information",
				Destination: &appConfig.Verbose,
				Aliases:     []string{"v"},
			},

			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Debug mode",
				Value:       false,
				Destination: &appConfig.Debug,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Expose the scanner as an HTTP API",
				Action: ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "addr",
						Usage:       "Listen address of the API server",
						Destination: &appConfig.ServeAddr,
						Value:       constant.DefaultServeAddr,
						Aliases:     []string{"a"},
					},
				},
			},
		},
		Before: func(c *cli.Context) error {
			// 初始化日志系统
			debug := c.Bool("debug")
			logging.InitLogger(debug)
			return nil
		},
	}

	return app.Run(os.Args)
}

func MainAction(c *cli.Context) error {

	// 程序的真正入口，组装扫描会话并启动各个引擎
	logger.Debugf("appConfig: %+v", appConfig)

	if c.NArg() < 1 {
		_ = cli.ShowAppHelp(c)
		return fmt.Errorf("the target argument is required")
	}
	if c.NArg() > 1 {
		return fmt.Errorf("only one target can be scanned at a time")
	}
	appConfig.Target = c.Args().First()

	cfg, err := service.NewScanConfig(
		appConfig.Target,
		appConfig.Ports,
		appConfig.Concurrency,
		appConfig.Timeout,
		appConfig.Rate,
		appConfig.Verbose,
	)
	if err != nil {
		return err
	}

	session := service.NewScanSession(cfg)
	logger.Infof("Session %s: scanning %d ports on %s", session.ID, len(cfg.Ports), cfg.IP)

	if cfg.Verbose {
		fmt.Printf("[eyes] Scanning %d ports on %s\n", len(cfg.Ports), cfg.IP)
		fmt.Printf("[eyes] Concurrency: %d\n", cfg.Concurrency)
		fmt.Printf("[eyes] Timeout: %d\n", appConfig.Timeout)
	}

	// Ctrl-C 和 SIGTERM 都走取消流程，让在飞的探测尽快收尾
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 端口队列可以设置的大一点
	portJobChan := make(chan uint16, 64)
	outcomeChan := make(chan service.PortResult, 4)

	var mainWg sync.WaitGroup

	// 启动 report engine，结果只进 stdout，日志都在 stderr
	useColor := isatty.IsTerminal(os.Stdout.Fd())
	reportEngine := service.NewReportEngine(&mainWg, &outcomeChan, os.Stdout, cfg.Verbose, useColor)
	mainWg.Add(1)
	go reportEngine.Run()

	// 启动 scan engine
	scanEngine := service.NewScanEngine(session, &mainWg, &portJobChan, &outcomeChan)
	mainWg.Add(1)
	go scanEngine.Run(ctx)

	// 启动 port feeder
	portFeeder := service.NewPortFeeder(session, &mainWg, &portJobChan)
	mainWg.Add(1)
	go portFeeder.Run(ctx)

	mainWg.Wait()

	if ctx.Err() != nil {
		logger.Warnf("Session %s aborted by signal.", session.ID)
	}
	logger.Debugf("MainAction end")
	return nil
}

func ServeAction(c *cli.Context) error {
	logger.Infof("Starting scan API server on %s", appConfig.ServeAddr)
	return api.RunServer(appConfig.ServeAddr)
}
