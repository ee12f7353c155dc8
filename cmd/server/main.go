package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/container"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx)
	if err != nil {
		config.Logger.WithError(err).Fatal("Falha ao iniciar")
	}
	c.Run(ctx)

	srv := &http.Server{
		Addr:              c.Config.HTTPAddr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			config.Logger.WithError(err).Error("Falha ao encerrar o servidor")
		}
	}()

	config.Logger.WithField("addr", srv.Addr).Info("MindPop API escutando")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		config.Logger.WithError(err).Fatal("Servidor parou")
	}
}
