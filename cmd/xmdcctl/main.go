// xmdcctl 是诊断上下文载体的命令行工具。
//
// 用法:
//
//	xmdcctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（yaml/json），缺省使用默认配置
//	    --env-prefix  环境变量覆盖前缀 (默认: XMDC_)
//	    --section     配置所在节点 (默认: mdc)
//
// 命令:
//
//	encode   把 name=value 条目编码为传输头
//	decode   解析传输头值
//	config   打印生效的配置
//	log      在恢复的诊断条目下输出一条日志
//	serve    启动演示 HTTP 服务，配置文件变更时重载日志级别
//
// 退出码:
//
//	0: 成功
//	1: 执行失败
//	2: 参数错误
//
// 示例:
//
//	xmdcctl encode --key order orderId=o-1
//	xmdcctl decode 'order;orderId=o-1'
//	xmdcctl log --key order orderId=o-1 -- order created
//	xmdcctl -c app.yaml serve --addr :8080
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息，可通过 -ldflags 注入
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

const (
	defaultEnvPrefix = "XMDC_"
	defaultSection   = "mdc"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xmdcctl",
		Usage:     "诊断上下文载体命令行工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径",
			},
			&cli.StringFlag{
				Name:  "env-prefix",
				Usage: "环境变量覆盖前缀",
				Value: defaultEnvPrefix,
			},
			&cli.StringFlag{
				Name:  "section",
				Usage: "配置所在节点",
				Value: defaultSection,
			},
		},
		Commands: createCommands(),
		Authors:  []any{"XMDC Team"},
		// 退出码由 run 统一映射
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// usageError 参数错误，退出码 2
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
