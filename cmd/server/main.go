package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"bugdash_backend/internal/app/di"
	"bugdash_backend/internal/app/router"
	authadapters "bugdash_backend/internal/feature/auth/adapters"
	authhandler "bugdash_backend/internal/feature/auth/transport/handler"
	authusecase "bugdash_backend/internal/feature/auth/usecase"
	bugadapters "bugdash_backend/internal/feature/bugs/adapters"
	bughandler "bugdash_backend/internal/feature/bugs/transport/handler"
	bugusecase "bugdash_backend/internal/feature/bugs/usecase"
	"bugdash_backend/internal/platform/config"
	infradb "bugdash_backend/internal/platform/db"
	"bugdash_backend/internal/platform/mail"
	infraredis "bugdash_backend/internal/platform/redis"
	"bugdash_backend/internal/platform/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB(cfg)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Using database refresh-token store.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	refreshRepo := di.NewRefreshTokenRepository(rdb, db)
	bugRepo := bugadapters.NewBugGorm(db)

	// Platform services
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, cfg.FrontendURL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, refreshRepo, tokens, cfg.RefreshTokenTTL, cfg.MaxRefreshTokens)
	resetUC := authusecase.NewPasswordResetUsecase(userRepo, mailer)
	bugUC := bugusecase.NewBugUsecase(bugRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	resetH := authhandler.NewPasswordResetHandler(resetUC)
	bugH := bughandler.NewBugHandler(bugUC)

	r := router.NewRouter(authH, resetH, bugH, token.AuthRequired(tokens, userRepo))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
