package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/auth"
	authrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/auth/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/category"
	categoryrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/category/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/customfield"
	customfieldrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/customfield/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement"
	engagementrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/monthlyrecord"
	monthlyrecordrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/monthlyrecord/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/note"
	noterepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/note/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/notification"
	notificationrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/notification/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/router"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/routine"
	routinerepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/routine/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/transaction"
	transactionrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/transaction/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/user"
	userrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/user/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/database"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	_ = godotenv.Load()

	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting projeto-x backend")

	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, mq, err := wire(ctx, sqlxDB, sugar)
	if err != nil {
		sugar.Fatalf("wiring: %v", err)
	}
	if mq != nil {
		defer mq.Close()
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		sugar.Infow("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}

// wire builds the repositories, services and handlers and mounts the routes.
func wire(ctx context.Context, db *sqlx.DB, sugar *zap.SugaredLogger) (http.Handler, *notification.MQClient, error) {
	users := userrepo.NewUserRepo(db)
	refresh := authrepo.NewRefreshRepo(db)
	sessions := engagementrepo.NewSessionRepo(db)
	ranks := engagementrepo.NewRankRepo(db)
	notifications := notificationrepo.NewNotificationRepo(db)
	categories := categoryrepo.NewCategoryRepo(db)
	notes := noterepo.NewNoteRepo(db)
	routines := routinerepo.NewRoutineRepo(db)
	customFields := customfieldrepo.NewCustomFieldRepo(db)
	monthlyRecords := monthlyrecordrepo.NewMonthlyRecordRepo(db)
	transactions := transactionrepo.NewTransactionRepo(db)

	type ensurer interface {
		EnsureTable(ctx context.Context) error
	}
	for _, r := range []ensurer{
		users, refresh, sessions, ranks, notifications,
		categories, notes, routines, customFields, monthlyRecords, transactions,
	} {
		if err := r.EnsureTable(ctx); err != nil {
			return nil, nil, fmt.Errorf("ensure table: %w", err)
		}
	}

	// live notification delivery is optional; without AMQP_URL they are persisted only
	var mq *notification.MQClient
	if mqCfg := notification.MQConfigFromEnv(); mqCfg.URL != "" {
		c, err := notification.DialMQ(mqCfg)
		if err != nil {
			sugar.Warnf("amqp dial failed, notifications will be persisted only: %v", err)
		} else {
			mq = c
		}
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "projeto-x"
	}
	tokens, err := auth.NewTokenService(db, issuer, 15*time.Minute)
	if err != nil {
		return nil, nil, fmt.Errorf("token service: %w", err)
	}

	notificationSvc := notification.NewService(notifications, mq, sugar)
	engagementSvc := engagement.NewService(sessions, ranks, notificationSvc, sugar)
	userSvc := user.NewService(users, engagementSvc, tokens, sugar)

	h := router.Handlers{
		Users:          user.NewHandler(userSvc, sugar),
		Engagement:     engagement.NewHandler(engagementSvc, sugar),
		Notifications:  notification.NewHandler(notificationSvc, sugar),
		Categories:     category.NewHandler(category.NewService(categories), sugar),
		Notes:          note.NewHandler(note.NewService(notes), sugar),
		Routines:       routine.NewHandler(routine.NewService(routines), sugar),
		CustomFields:   customfield.NewHandler(customfield.NewService(customFields), sugar),
		MonthlyRecords: monthlyrecord.NewHandler(monthlyrecord.NewService(monthlyRecords, categories), sugar),
		Transactions:   transaction.NewHandler(transaction.NewService(transactions), sugar),
	}

	return router.RegisterRoutes(h, tokens, sugar), mq, nil
}
