package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lorad/internal/catalog"
	"lorad/internal/config"
	"lorad/internal/httpapi"
	"lorad/internal/registry"
	"lorad/internal/variant"
	"lorad/pkg/types"
)

// envDefault returns the environment value for key or fallback when unset.
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lorad",
		Short:         "Local LoRA collection manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newScanCmd())
	return root
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

func newServeCmd() *cobra.Command {
	var (
		cfgPath  string
		addr     string
		dirs     []string
		logLevel string
		timeout  int64
		corsOn   bool
		origins  []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Scan the model directories and serve the card catalog over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{
				Addr:      envDefault("LORAD_ADDR", ":8080"),
				ModelDirs: []string{"~/loras"},
				LogLevel:  envDefault("LORAD_LOG_LEVEL", "info"),
			}
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				mergeConfig(&cfg, loaded)
			}
			// Flags win over both file and env.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("model-dir") {
				cfg.ModelDirs = dirs
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("rescan-timeout-sec") {
				cfg.RescanTimeoutSec = timeout
			}
			if cmd.Flags().Changed("cors") {
				cfg.CORSEnabled = corsOn
			}
			if cmd.Flags().Changed("cors-origin") {
				cfg.CORSOrigins = origins
			}
			return runServe(cfg)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Optional config file (.yaml/.json/.toml)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address, e.g. :8080 (defaults LORAD_ADDR)")
	cmd.Flags().StringSliceVar(&dirs, "model-dir", []string{"~/loras"}, "Directory to scan for checkpoint files (repeatable)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error (defaults LORAD_LOG_LEVEL)")
	cmd.Flags().Int64Var(&timeout, "rescan-timeout-sec", 0, "Abort a rescan after this many seconds (0 disables)")
	cmd.Flags().BoolVar(&corsOn, "cors", false, "Enable CORS middleware")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", []string{"*"}, "Allowed CORS origins")
	return cmd
}

// mergeConfig copies every non-zero field of src over dst.
func mergeConfig(dst *config.Config, src config.Config) {
	if src.Addr != "" {
		dst.Addr = src.Addr
	}
	if len(src.ModelDirs) > 0 {
		dst.ModelDirs = src.ModelDirs
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.RescanTimeoutSec != 0 {
		dst.RescanTimeoutSec = src.RescanTimeoutSec
	}
	if src.CORSEnabled {
		dst.CORSEnabled = true
	}
	if len(src.CORSOrigins) > 0 {
		dst.CORSOrigins = src.CORSOrigins
	}
	if len(src.CORSMethods) > 0 {
		dst.CORSMethods = src.CORSMethods
	}
	if len(src.CORSHeaders) > 0 {
		dst.CORSHeaders = src.CORSHeaders
	}
}

func runServe(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)
	baseCtx, stopServe := context.WithCancel(context.Background())
	defer stopServe()

	cat := catalog.New(cfg.ModelDirs, logger)
	// Initial scan failure is not fatal: the server comes up not-ready and a
	// later POST /rescan can recover once the directories exist.
	if _, err := cat.Rescan(baseCtx); err != nil {
		logger.Warn().Err(err).Msg("initial scan failed")
	}

	httpapi.SetLogger(logger)
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetRescanTimeoutSeconds(cfg.RescanTimeoutSec)
	methods := cfg.CORSMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost}
	}
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, methods, cfg.CORSHeaders)

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(cat)}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Strs("dirs", cfg.ModelDirs).Msg("lorad listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	stopServe() // cancels in-flight rescans
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func newScanCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "scan [dir...]",
		Short: "Scan directories once and print the merged card list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := registry.LoadRoots(args)
			if err != nil {
				return err
			}
			cards := variant.NewEngine(nil).Merge(seeds)
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(types.CardsResponse{Cards: cards})
			}
			return printCards(cmd, cards)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print cards as JSON instead of a table")
	return cmd
}

func printCards(cmd *cobra.Command, cards []types.CardEntry) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer tw.Flush()
	if _, err := tw.Write([]byte("NAME\tVARIANTS\tBASE MODEL\tPATH\n")); err != nil {
		return err
	}
	for _, c := range cards {
		labels := make([]string, 0, len(c.Variants))
		for _, v := range c.Variants {
			labels = append(labels, v.Label)
		}
		name := c.Model.Name
		if name == "" {
			name = c.Model.FileName
		}
		row := name + "\t" + strings.Join(labels, ",") + "\t" + c.Model.BaseModel + "\t" + c.Model.Path + "\n"
		if _, err := tw.Write([]byte(row)); err != nil {
			return err
		}
	}
	return nil
}
