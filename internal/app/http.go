package app

import (
	"context"
	"net/http"

	"finlight-auth/internal/auth"
	"finlight-auth/internal/auth/handler"
	"finlight-auth/internal/auth/provider"
	"finlight-auth/internal/auth/provider/google"
	"finlight-auth/internal/auth/provider/kakao"
	"finlight-auth/internal/auth/resolver"
	"finlight-auth/internal/auth/token"
	"finlight-auth/internal/config"
	"finlight-auth/internal/logger"
	"finlight-auth/internal/middleware"
	"finlight-auth/internal/session"
	"finlight-auth/internal/user"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	issuer, err := token.NewIssuer(token.Config{
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  cfg.AccessTTL,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		return nil, nil, err
	}

	userStore := user.NewPGStore(infra.DB)
	sessionStore := session.NewRedisStore(infra.Redis.Client)
	identityResolver := resolver.NewStoreResolver(userStore)

	coordinator := auth.NewCoordinator(
		userStore,
		sessionStore,
		issuer,
		identityResolver,
	)

	var flows []provider.Flow

	if cfg.GoogleClientID != "" {
		googleFlow, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		flows = append(flows, googleFlow)
	}

	if cfg.KakaoClientID != "" {
		kakaoFlow, err := kakao.New(
			cfg.KakaoClientID,
			cfg.KakaoClientSecret,
			cfg.KakaoRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		flows = append(flows, kakaoFlow)
	}

	if len(flows) == 0 {
		logger.Warn("no oauth providers configured", nil)
	}

	registry := provider.NewRegistry(flows...)

	normalizers := provider.NewNormalizerSet(
		provider.GoogleNormalizer{},
		provider.KakaoNormalizer{},
	)

	cookieOpts := session.CookieOptions{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	authHandler := handler.NewHandler(
		coordinator,
		registry,
		normalizers,
		cookieOpts,
	)

	authMiddleware := middleware.NewAuthMiddleware(issuer)
	gate := middleware.GinRequireAuth(authMiddleware)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router, gate)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
