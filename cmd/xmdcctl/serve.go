package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xmdc/pkg/config/xconf"
	"github.com/omeyang/xmdc/pkg/context/xlocal"
	"github.com/omeyang/xmdc/pkg/context/xpropagate"
	"github.com/omeyang/xmdc/pkg/lifecycle/xrun"
	"github.com/omeyang/xmdc/pkg/observability/xlog"
	"github.com/omeyang/xmdc/pkg/observability/xmdclog"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second
	requestIDEntry         = "requestId"
)

func createServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "启动演示 HTTP 服务",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "监听地址", Value: defaultAddr},
			&cli.DurationFlag{Name: "shutdown-timeout", Usage: "优雅关闭超时", Value: defaultShutdownTimeout},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			src, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := xmdclog.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Close() }()

			srv := &http.Server{
				Addr:              cmd.String("addr"),
				Handler:           newHandler(logger),
				ReadHeaderTimeout: 5 * time.Second,
			}
			services := []func(context.Context) error{
				xrun.HTTPServer(srv, cmd.Duration("shutdown-timeout")),
			}
			if pool, ok := logger.Scheduler().(xrun.Shutdowner); ok {
				services = append(services, xrun.Shutdown(pool, cmd.Duration("shutdown-timeout")))
			}
			if src.Path() != "" {
				w, err := xconf.Watch(src, reloadLevel(logger, cmd.String("section")))
				if err != nil {
					return err
				}
				services = append(services, func(ctx context.Context) error {
					<-ctx.Done()
					err := w.Stop()
					<-w.Done()
					return err
				})
			}
			return xrun.RunWithOptions(ctx, []xrun.Option{xrun.WithName("xmdcctl")}, services...)
		},
	}
}

// newHandler 回显请求在 worker store 中可见的诊断条目
func newHandler(logger *xmdclog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var snapshot map[string]string
		err := logger.Restorer().Run(r.Context(), nil, func(ctx context.Context) error {
			if store, ok := xlocal.FromContext(ctx); ok {
				snapshot = store.Snapshot()
			}
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		_ = logger.Info(r.Context(), "request handled", slog.String("path", r.URL.Path))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snapshot)
	})
	return xpropagate.HTTPMiddleware(
		xpropagate.WithRequestIDEntry(logger.ContextKey(), requestIDEntry),
	)(mux)
}

// reloadLevel 配置变更后只调整后端级别，其余字段需要重启生效
func reloadLevel(logger *xmdclog.Logger, section string) xconf.WatchCallback {
	return func(src xconf.Config, err error) {
		ctx := context.Background()
		if err != nil {
			_ = logger.Warn(ctx, "config reload failed", slog.Any("error", err))
			return
		}
		cfg, err := xmdclog.LoadConfig(src, section)
		if err != nil {
			_ = logger.Warn(ctx, "config reload rejected", slog.Any("error", err))
			return
		}
		if cfg.Backend == nil || cfg.Backend.Level == "" {
			return
		}
		leveler, ok := logger.Backend().(xlog.Leveler)
		if !ok {
			return
		}
		level, err := xlog.ParseLevel(cfg.Backend.Level)
		if err != nil {
			return
		}
		leveler.SetLevel(level)
		_ = logger.Info(ctx, "log level reloaded", slog.String("level", level.String()))
	}
}
