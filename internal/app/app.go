package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/router"
	"github.com/storefront-next/internal/worker"

	"go.uber.org/zap"
)

const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// App 聚合本进程的两个服务面：HTTP API 与队列 worker。
// 按启动模式装配，至少存在其一。
type App struct {
	log        *zap.SugaredLogger
	httpServer *http.Server
	workerSrv  *worker.Service
	container  *provider.Container
}

// Build 按模式装配应用
func Build(cfg *config.Config, mode string, log *zap.SugaredLogger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if log == nil {
		log = logger.S()
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	a := &App{log: log, container: container}

	if mode == ModeAll || mode == ModeAPI {
		a.httpServer = &http.Server{
			Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
			Handler: router.SetupRouter(cfg, container),
		}
	}
	if mode == ModeAll || mode == ModeWorker {
		// all 模式下队列关闭时仅跑 HTTP，worker 模式下则视为配置错误
		if cfg.Queue.Enabled {
			srv, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, err
			}
			a.workerSrv = srv
		} else if mode == ModeWorker {
			return nil, errors.New("queue disabled, worker mode unavailable")
		}
	}
	if a.httpServer == nil && a.workerSrv == nil {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	return a, nil
}

// Run 装配并运行应用，阻塞至收到信号或任一服务退出
func Run(opts Options) error {
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}

	a, err := Build(opts.Config, opts.Mode, opts.Logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}

	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Host+":"+opts.Config.Server.Port,
		"mode", opts.Mode,
	)
	return a.run(ctx, opts.ShutdownTimeout)
}

func (a *App) run(ctx context.Context, stopTimeout time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	if a.httpServer != nil {
		go func() {
			a.log.Infow("http_listen", "addr", a.httpServer.Addr)
			err := a.httpServer.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			errCh <- err
		}()
	}
	if a.workerSrv != nil {
		go func() {
			a.log.Infow("worker_listen")
			errCh <- a.workerSrv.Start(ctx)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-errCh:
		runErr = err
	}

	a.shutdown(stopTimeout)
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (a *App) shutdown(stopTimeout time.Duration) {
	if stopTimeout <= 0 {
		stopTimeout = defaultShutdownTimeout
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(stopCtx); err != nil {
			a.log.Errorw("http_shutdown_failed", "error", err)
		}
	}
	if a.workerSrv != nil {
		if err := a.workerSrv.Stop(stopCtx); err != nil {
			a.log.Errorw("worker_shutdown_failed", "error", err)
		}
	}
	if err := a.container.Close(); err != nil {
		a.log.Errorw("container_close_failed", "error", err)
	}
}
