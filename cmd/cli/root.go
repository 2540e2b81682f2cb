package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bewley"
	"bewley/coeff"
	"bewley/internal/logging"
	"bewley/internal/observability"
)

var (
	// 全局参数
	logLevel  string
	logFormat string
	tracing   bool

	// 覆盖参数文件
	quantity  string
	reference string
	tolerance float64
	maxEvents int
	maxTime   float64
)

var rootCmd = &cobra.Command{
	Use:   "bewley",
	Short: "两段传输线阶跃响应格形图仿真",
	Long: `计算两段级联无损传输线在阶跃源激励下近端、结点和远端的反射波形.

参数文件示例:
  VS 1
  T 1n 1n
  Z 50 75
  RS 50
  RT open

Examples:
  bewley run line.net --html line.html --plot line.png
  bewley single line.net --iterations 8
  bewley sweep line.net --axis rt --from 10 --to 200 --points 20
  bewley serve line.net --addr :8080`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "日志级别 debug|info|warn|error")
	flags.StringVar(&logFormat, "log-format", envOr("LOG_FORMAT", "text"), "日志格式 text|json")
	flags.BoolVar(&tracing, "trace", false, "输出 OpenTelemetry span")
	flags.StringVarP(&quantity, "quantity", "q", "", "物理量 voltage|current")
	flags.StringVar(&reference, "reference", "", "截断参考 steady|initial")
	flags.Float64Var(&tolerance, "tol", 0, "波幅截断容差")
	flags.IntVar(&maxEvents, "max-events", 0, "最大处理事件数")
	flags.Float64Var(&maxTime, "max-time", 0, "最大仿真时间")

	rootCmd.AddCommand(runCmd, singleCmd, sweepCmd, serveCmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// session 一次命令执行的公共环境
type session struct {
	ctx      context.Context
	log      logging.Logger
	sim      *bewley.Simulator
	shutdown func(context.Context) error
}

// newSession 加载参数文件并应用命令行覆盖
func newSession(cmd *cobra.Command, filename string) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logging.New(logging.Config{Level: logLevel, Format: logFormat, Output: cmd.ErrOrStderr()})
	ctx = logging.ContextWithLogger(ctx, log)
	tc := observability.TracingConfigFromEnv()
	tc.Enabled = tc.Enabled || tracing
	tc.Writer = cmd.ErrOrStderr()
	shutdown, err := observability.InitTracing(ctx, tc, log)
	if err != nil {
		return nil, err
	}

	sim, err := loadSimulator(filename, log)
	if err != nil {
		observability.ShutdownWithTimeout(ctx, shutdown, log)
		return nil, err
	}
	log.Debug(ctx, "parameters loaded", logging.String("file", filename), logging.String("title", sim.Title))
	return &session{ctx: ctx, log: log, sim: sim, shutdown: shutdown}, nil
}

// loadSimulator 加载参数文件并应用命令行覆盖
func loadSimulator(filename string, log logging.Logger) (*bewley.Simulator, error) {
	sim := bewley.NewSimulator()
	sim.Logger = log
	if err := sim.Load(filename); err != nil {
		return nil, err
	}
	var err error
	if quantity != "" {
		if sim.Quantity, err = coeff.ParseQuantity(quantity); err != nil {
			return nil, err
		}
	}
	if reference != "" {
		if sim.Reference, err = coeff.ParseReference(reference); err != nil {
			return nil, err
		}
	}
	if tolerance != 0 {
		sim.Params.Tolerance = tolerance
	}
	if maxEvents != 0 {
		sim.MaxEvents = maxEvents
	}
	if maxTime != 0 {
		sim.MaxTime = maxTime
	}
	return sim, nil
}

func (s *session) close() {
	observability.ShutdownWithTimeout(s.ctx, s.shutdown, s.log)
}
