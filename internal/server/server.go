package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/Stuart1162/fizzyjuice/internal/admin/application"
	"github.com/Stuart1162/fizzyjuice/internal/config"
	"github.com/Stuart1162/fizzyjuice/internal/infrastructure/mail"
	mongodoc "github.com/Stuart1162/fizzyjuice/internal/infrastructure/mongo"
	redisinfra "github.com/Stuart1162/fizzyjuice/internal/infrastructure/redis"
	stripeinfra "github.com/Stuart1162/fizzyjuice/internal/infrastructure/stripe"
	adminhttp "github.com/Stuart1162/fizzyjuice/internal/interfaces/http/admin"
	commonhttp "github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
	publichttp "github.com/Stuart1162/fizzyjuice/internal/interfaces/http/public"
	publicapp "github.com/Stuart1162/fizzyjuice/internal/public/application"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
	"github.com/Stuart1162/fizzyjuice/internal/scheduler"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *log.Logger
	client         *mongo.Client
	redis          *goredis.Client
	scheduler      *scheduler.Scheduler
	verifier       tokenVerifier
	resolver       publicapp.SessionResolver
	limiter        *commonhttp.IPRateLimiter
	publicHandler  *publichttp.Handler
	adminHandler   *adminhttp.Handler
	addr           string
	allowedOrigins []string
}

// Run はHTTPサーバーを起動し、Public/Adminのルーティングやミドルウェアを組み立てる。
func (s *Server) Run() error {
	if err := s.scheduler.Start(); err != nil {
		s.logger.Printf("scheduler start failed: %v", err)
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	router.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(s.verifier, s.resolver, s.logger))
		s.publicHandler.Register(r, commonhttp.RequireSession)
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(commonhttp.RequireSession)
			s.adminHandler.Register(admin)
		})
	})
	return router
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。空リストは全許可。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB (と設定されていれば Redis) への疎通確認を行う。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		if s.redis != nil {
			if err := s.redis.Ping(ctx).Err(); err != nil {
				commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  "redis: " + err.Error(),
				})
				return
			}
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// shutdown は scheduler を止め、Redis と MongoDB をタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	s.scheduler.Stop()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Printf("Redis 切断時にエラー: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と Mongo クライアントを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, client *mongo.Client) *Server {
	logger := cfg.ServerLog
	if logger == nil {
		logger = log.Default()
	}
	db := client.Database(cfg.MongoDatabase)
	c := cfg.Collections

	jobRepo := mongodoc.NewJobRepository(db, c.Jobs)
	adminJobRepo := mongodoc.NewAdminJobRepository(db, c.Jobs)
	prefsRepo := mongodoc.NewPrefsRepository(db, c.Prefs)
	savedRepo := mongodoc.NewSavedJobRepository(db, c.SavedJobs)
	metricsRepo := mongodoc.NewMetricsRepository(db, c.JobMetrics)
	pendingRepo := mongodoc.NewPendingPostRepository(db, c.PendingPosts)
	failedRepo := mongodoc.NewFailedNotificationRepository(db, c.FailedNotifications)

	srv := &Server{
		logger:         logger,
		client:         client,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		verifier: tokenVerifier{
			configs:  append([]config.JWTConfig(nil), cfg.JWTConfigs...),
			audience: cfg.JWTAudience,
		},
		limiter: commonhttp.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	// Redis は任意。無ければイベントは捨て、分析は毎回計算する。
	var events publicapp.EventPublisher = redisinfra.NoopPublisher{}
	var cache adminapp.AnalyticsCache
	if strings.TrimSpace(cfg.RedisURL) != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		rdb, err := redisinfra.NewClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Printf("redis unavailable, job events disabled: %v", err)
		} else {
			srv.redis = rdb
			events = redisinfra.NewEventPublisher(rdb, cfg.JobEventsChannel)
			cache = redisinfra.NewAnalyticsCache(rdb)
		}
	}

	var gateway publicapp.CheckoutGateway
	if strings.TrimSpace(cfg.StripeSecretKey) != "" {
		g, err := stripeinfra.NewGateway(stripeinfra.Config{
			SecretKey:  cfg.StripeSecretKey,
			UnitAmount: cfg.CheckoutUnitAmount,
		})
		if err != nil {
			logger.Printf("stripe gateway disabled: %v", err)
		} else {
			gateway = g
		}
	} else {
		logger.Printf("STRIPE_SECRET_KEY not set, checkout disabled")
	}

	sender := mail.NewResendSender(cfg.ResendEndpoint, cfg.ResendAPIKey, cfg.NotifyTimeout)
	notifier := mail.NewNotifier(sender, failedRepo, mail.Config{
		AdminEmails: cfg.AdminEmails,
		FromName:    cfg.NotifyFromName,
		FromEmail:   cfg.NotifyFromEmail,
	}, logger)

	deps := publicapp.JobDeps{
		Jobs:          jobRepo,
		Profiles:      prefsRepo,
		SavedJobs:     savedRepo,
		Metrics:       metricsRepo,
		Events:        events,
		Notifier:      notifier,
		Refs:          domain.NewRefGenerator(jobRepo.RefExists, nil),
		Logger:        logger,
		ArchiveDays:   cfg.ArchiveDays,
		NotifyTimeout: cfg.NotifyTimeout,
	}

	srv.resolver = publicapp.NewSessionResolver(prefsRepo, cfg.Superadmins)
	srv.publicHandler = publichttp.NewHandler(publichttp.Config{
		Logger:      logger,
		JobQueries:  publicapp.NewJobQueryService(deps),
		JobCommands: publicapp.NewJobCommandService(deps),
		SavedJobs:   publicapp.NewSavedJobService(jobRepo, savedRepo, metricsRepo, logger, nil, cfg.ArchiveDays),
		Metrics:     publicapp.NewMetricsService(jobRepo, metricsRepo, nil, cfg.ArchiveDays),
		Profiles:    publicapp.NewProfileService(prefsRepo, notifier, logger, nil, cfg.NotifyTimeout),
		Posting: publicapp.NewPostingService(deps, pendingRepo, gateway, publicapp.PostingConfig{
			PublicOrigin: cfg.PublicOrigin,
			Currency:     cfg.CheckoutCurrency,
		}),
		Limiter:     srv.limiter,
		ArchiveDays: cfg.ArchiveDays,
	})

	srv.adminHandler = adminhttp.NewHandler(adminhttp.Config{
		Logger: logger,
		Jobs: adminapp.NewJobService(adminapp.JobDeps{
			Jobs:        adminJobRepo,
			Metrics:     metricsRepo,
			SavedJobs:   savedRepo,
			Events:      events,
			Logger:      logger,
			ArchiveDays: cfg.ArchiveDays,
		}),
		Reports:     adminapp.NewReportService(adminJobRepo, metricsRepo, cfg.ArchiveDays, nil),
		Users:       adminapp.NewUserService(prefsRepo, adminJobRepo, savedRepo, logger),
		Analytics:   adminapp.NewAnalyticsService(prefsRepo, cache, logger, nil),
		ArchiveDays: cfg.ArchiveDays,
	})

	digest := adminapp.NewDigestService(adminJobRepo, notifier, logger)
	srv.scheduler = scheduler.New(digest, cfg.DraftDigestSchedule, cfg.Timeout, logger)

	return srv
}
