package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "lendpool-backend/internal/adapter/http"
	"lendpool-backend/internal/adapter/middleware"
	"lendpool-backend/internal/adapter/repository/mysql"
	"lendpool-backend/internal/config"
	fundingDomain "lendpool-backend/internal/domain/funding"
	loanDomain "lendpool-backend/internal/domain/loan"
	userDomain "lendpool-backend/internal/domain/user"
	"lendpool-backend/internal/infrastructure/cache"
	"lendpool-backend/internal/infrastructure/db"
	"lendpool-backend/internal/observability"
	fundingUC "lendpool-backend/internal/usecase/funding"
	"lendpool-backend/internal/usecase/kyc"
	"lendpool-backend/internal/usecase/loanapp"
	"lendpool-backend/internal/usecase/portfolio"
	"lendpool-backend/internal/usecase/scoring"
	walletUC "lendpool-backend/internal/usecase/wallet"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := gdb.AutoMigrate(
		&userDomain.User{}, &userDomain.WalletTransaction{},
		&loanDomain.Loan{}, &loanDomain.Installment{}, &loanDomain.AuditEntry{},
		&loanDomain.Notification{}, &loanDomain.Document{},
		&fundingDomain.Funding{}, &fundingDomain.Contribution{}, &fundingDomain.Return{},
	); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}

	users := mysql.NewUserRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	fundings := mysql.NewFundingRepository(gdb)
	unitOfWork := mysql.NewGormUoW(gdb)

	scorer := scoring.NewUsecase(users, loans, logger)
	applications := loanapp.NewUsecase(users, loans, scorer, logger)
	settlements := fundingUC.NewUsecase(unitOfWork, fundings, loans, logger)
	wallets := walletUC.NewUsecase(unitOfWork, users)
	kycFlows := kyc.NewUsecase(users)
	portfolios := portfolio.NewUsecase(users, loans, fundings)

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(applications, scorer)
	fundingHandler := httpadp.NewFundingHandler(settlements)
	walletHandler := httpadp.NewWalletHandler(wallets)
	kycHandler := httpadp.NewKYCHandler(kycFlows)
	portfolioHandler := httpadp.NewPortfolioHandler(portfolios)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	auth := middleware.Auth(cfg.JWTSecret)
	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	api := e.Group("/api", auth)
	api.POST("/loan/apply", loanHandler.Apply, idemp)
	api.POST("/loan/calculate/:user_id", loanHandler.CalculateScore)
	api.GET("/funding/open-loans", fundingHandler.OpenLoans)
	api.POST("/funding/:loan_id/invest", fundingHandler.Invest, idemp)
	api.POST("/wallet/deposit", walletHandler.Deposit, idemp)
	api.GET("/wallet", walletHandler.Get)
	api.POST("/kyc/submit", kycHandler.Submit)
	api.POST("/kyc/verify", kycHandler.Verify)
	api.GET("/kyc/status/:user_id", kycHandler.Status)
	api.GET("/users/:user_id/portfolio", portfolioHandler.Summary)

	addr := ":" + cfg.AppPort
	logger.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
