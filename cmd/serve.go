package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/assistant"
	"github.com/spigell/job-tracker/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "listen address (overrides server.addr)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := setup(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer d.close()

	logger := d.logger
	logger.Info("starting the job-tracker api", zap.String("version", version))

	accountSvc, applicationSvc, err := d.stores(ctx)
	if err != nil {
		logger.Fatal("preparing storage", zap.Error(err))
	}

	cfg := d.config.Server
	if cfg == nil {
		cfg = &ServerConfig{Addr: ":3001"}
	}

	srv := server.New(server.Config{
		Addr:           cfg.Addr,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
		Debug:          viper.GetBool("debug"),
	}, server.Deps{
		Accounts:     accountSvc,
		Applications: applicationSvc,
		Board:        d.board,
		Assistant:    d.assistant,
		History:      assistant.NewHistory(),
		Resumes:      d.resumes(),
		Logger:       logger,
	})

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}
