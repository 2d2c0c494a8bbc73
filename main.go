package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/agent-orders-api/controllers"
	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/routes"
	"github.com/Kariqs/agent-orders-api/services"
	"github.com/Kariqs/agent-orders-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func init() {
	initializers.LoadEnv()
	cfg := initializers.LoadConfig()
	initializers.InitLogger(cfg)
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		zap.S().Warnf("Unknown APP_LOCATION %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

func wireServices(ctx context.Context, cfg *initializers.Config) *services.ReportScheduler {
	controllers.Location = location(cfg.Location)

	if cfg.S3Bucket != "" {
		store, err := utils.NewS3ImageStore(ctx, cfg.S3Bucket, cfg.S3PublicBase)
		if err != nil {
			zap.S().Errorf("S3 unavailable, storing images locally: %v", err)
			controllers.Images = &utils.LocalImageStore{Dir: cfg.ImagesDir}
		} else {
			controllers.Images = store
		}
	} else {
		controllers.Images = &utils.LocalImageStore{Dir: cfg.ImagesDir}
	}

	renderer := utils.NewPDFRenderer(utils.DetectChromePath(cfg.ChromePath))
	if renderer.Available() {
		controllers.Renderer = renderer
	} else {
		zap.S().Warn("Chrome not found, PDF endpoints disabled")
	}

	var mailer services.MailSender
	if cfg.MailEnabled() {
		mailer = utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.FromEmail, cfg.FromEmailPassword)
	}

	notifier := &services.OrderNotifier{Renderer: controllers.Renderer, Location: controllers.Location}
	if mailer != nil && cfg.OrderNotifyEmail != "" {
		notifier.Mailer = mailer
		notifier.To = []string{cfg.OrderNotifyEmail}
	}
	if cfg.OrderWebhookURL != "" {
		notifier.Webhook = utils.NewWebhookClient(cfg.OrderWebhookURL)
	}
	if err := notifier.Subscribe(services.Bus); err != nil {
		zap.S().Errorf("Failed to subscribe order notifier: %v", err)
	}

	if cfg.ReportCron == "" {
		return nil
	}
	scheduler := &services.ReportScheduler{DB: initializers.DB, Location: controllers.Location}
	if mailer != nil && cfg.ReportEmail != "" {
		scheduler.Mailer = mailer
		scheduler.To = []string{cfg.ReportEmail}
	}
	if err := scheduler.Start(cfg.ReportCron); err != nil {
		zap.S().Errorf("Daily report disabled: %v", err)
		return nil
	}
	return scheduler
}

func main() {
	cfg := initializers.Cfg
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)
	scheduler := wireServices(ctx, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.S().Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if scheduler != nil {
			scheduler.Stop()
		}
		err := srv.Shutdown(shutdownCtx)
		services.Bus.WaitAsync()
		return err
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("Server stopped: %v", err)
		return
	}
	zap.S().Info("Server stopped")
}
