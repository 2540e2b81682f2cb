package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"bewley/debug"
	"bewley/internal/logging"
	"bewley/internal/observability"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve <params-file>",
	Short: "在网页发布波形和 /metrics",
	Long:  "每次请求 / 时重新加载参数文件并仿真,/metrics 输出 Prometheus 指标.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer s.close()
		collector, err := observability.NewCollector(prometheus.NewRegistry())
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			sim, err := loadSimulator(args[0], s.log)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			sim.Observer = collector
			rec, err := sim.Record(r.Context())
			if rec == nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err != nil {
				s.log.Warn(r.Context(), "serving partial traces", logging.Err(err))
			}
			debug.NewCharts(rec).Handler(w, r)
		})

		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return s.ctx },
		}
		ctx, cancel := context.WithCancel(s.ctx)
		defer cancel()
		go func() {
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
		s.log.Info(s.ctx, "serving lattice charts", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "监听地址")
}
