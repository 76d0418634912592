package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xmdc/pkg/config/xconf"
	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/observability/xlog"
	"github.com/omeyang/xmdc/pkg/observability/xmdclog"
)

func createCommands() []*cli.Command {
	return []*cli.Command{
		createEncodeCommand(),
		createDecodeCommand(),
		createConfigCommand(),
		createLogCommand(),
		createServeCommand(),
	}
}

func createEncodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "把条目编码为传输头",
		ArgsUsage: "<name=value>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "载体 key，缺省为默认 key"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdEncode(cmd.Root().Writer, cmd.String("key"), cmd.Args().Slice())
		},
	}
}

func createDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "解析传输头值",
		ArgsUsage: "<value>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return usagef("decode 需要一个参数")
			}
			return cmdDecode(cmd.Root().Writer, cmd.Args().First())
		},
	}
}

func createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "打印生效的配置",
		Action: func(_ context.Context, cmd *cli.Command) error {
			src, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return cmdConfig(cmd.Root().Writer, src, cmd.String("section"), cfg)
		},
	}
}

func createLogCommand() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "在恢复的诊断条目下输出一条日志",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "载体 key，缺省为配置中的 key"},
			&cli.StringSliceFlag{Name: "entry", Aliases: []string{"e"}, Usage: "name=value 条目，可重复"},
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "日志级别", Value: "info"},
			&cli.StringFlag{Name: "marker", Aliases: []string{"m"}, Usage: "日志标记"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return usagef("log 需要日志消息")
			}
			level, err := xlog.ParseLevel(cmd.String("level"))
			if err != nil {
				return usagef("%v", err)
			}
			entries, err := parseEntries(cmd.StringSlice("entry"))
			if err != nil {
				return err
			}
			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			req := logRequest{
				key:     cmd.String("key"),
				entries: entries,
				level:   level,
				marker:  cmd.String("marker"),
				message: strings.Join(cmd.Args().Slice(), " "),
			}
			return cmdLog(ctx, cmd.Root().Writer, cfg, req)
		},
	}
}

// loadConfig 读取配置文件（可缺省）并叠加环境变量
func loadConfig(cmd *cli.Command) (xconf.Config, xmdclog.Config, error) {
	opts := []xconf.Option{xconf.WithEnvPrefix(cmd.String("env-prefix"))}

	var (
		src xconf.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		src, err = xconf.New(path, opts...)
	} else {
		src, err = xconf.NewFromBytes(nil, xconf.FormatYAML, opts...)
	}
	if err != nil {
		return nil, xmdclog.Config{}, err
	}
	cfg, err := xmdclog.LoadConfig(src, cmd.String("section"))
	if err != nil {
		return nil, xmdclog.Config{}, err
	}
	return src, cfg, nil
}

func parseEntries(args []string) (map[string]string, error) {
	entries := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, usagef("条目格式应为 name=value: %q", arg)
		}
		entries[name] = value
	}
	return entries, nil
}

func carrierFor(key string, entries map[string]string) (xmdc.MDC, error) {
	if key == "" {
		return xmdc.New(entries), nil
	}
	if err := xmdc.ValidateKey(key); err != nil {
		return xmdc.MDC{}, usagef("%v", err)
	}
	return xmdc.NewWithKey(key, entries), nil
}

func cmdEncode(w io.Writer, key string, args []string) error {
	entries, err := parseEntries(args)
	if err != nil {
		return err
	}
	m, err := carrierFor(key, entries)
	if err != nil {
		return err
	}
	v, err := xmdc.Encode(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %s\n", xmdc.HeaderName(m.Key()), v)
	return err
}

func cmdDecode(w io.Writer, value string) error {
	m, err := xmdc.Decode(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, m)
	return err
}

func cmdConfig(w io.Writer, src xconf.Config, section string, cfg xmdclog.Config) error {
	key := cfg.ContextKey
	if key == "" {
		key = xmdc.DefaultKey()
	}
	kind := cfg.Scheduler.Kind
	if kind == "" {
		kind = xmdclog.SchedulerDefault
	}
	backend := "default"
	if cfg.Backend != nil {
		backend = fmt.Sprintf("level=%s format=%s file=%q", orDash(cfg.Backend.Level), orDash(cfg.Backend.Format), cfg.Backend.File)
	}
	fmt.Fprintf(w, "context_key: %s\nscheduler: %s\nbackend: %s\n", key, kind, backend)

	if section == "" || !src.Client().Exists(section) {
		return nil
	}
	raw, err := src.Client().Cut(section).Marshal(yaml.Parser())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "---\n%s", raw)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type logRequest struct {
	key     string
	entries map[string]string
	level   xlog.Level
	marker  string
	message string
}

// cmdLog 未配置后端时输出到 w
func cmdLog(ctx context.Context, w io.Writer, cfg xmdclog.Config, req logRequest) error {
	var opts []xmdclog.Option
	if req.key != "" {
		opts = append(opts, xmdclog.WithContextKey(req.key))
	}
	if cfg.Backend == nil {
		backend, cleanup, err := xlog.New().SetOutput(w).SetName("xmdcctl").SetLevel(xlog.LevelTrace).Build()
		if err != nil {
			return err
		}
		defer func() { _ = cleanup() }()
		opts = append(opts, xmdclog.WithBackend(backend))
	}

	logger, err := xmdclog.NewFromConfig(cfg, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	ctx = xmdc.Put(ctx, xmdc.NewWithKey(logger.ContextKey(), req.entries))
	var marker *xlog.Marker
	if req.marker != "" {
		marker = xlog.GetMarker(req.marker)
	}
	return logger.Log(ctx, req.level, marker, nil, req.message)
}
