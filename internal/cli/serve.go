package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/julianstephens/habitual/internal/api"
	"github.com/julianstephens/habitual/internal/auth"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
)

type ServeCmd struct {
	Addr            string        `help:"Listen address." default:":8080" env:"HABITUAL_ADDR"`
	JWTSecret       string        `name:"jwt-secret" help:"Token signing secret. Falls back to the OS keyring, generating one when it is empty." env:"HABITUAL_JWT_SECRET"`
	AccessTTL       time.Duration `help:"Access token lifetime." default:"15m" env:"HABITUAL_ACCESS_TTL"`
	RefreshTTL      time.Duration `help:"Refresh token lifetime." default:"168h" env:"HABITUAL_REFRESH_TTL"`
	CORSOrigins     string        `name:"cors-origins" help:"Comma-separated allowed origins." default:"http://localhost:3000,http://localhost:5173" env:"HABITUAL_CORS_ORIGINS"`
	RedisAddr       string        `help:"Redis host:port for shared rate limit counters." env:"HABITUAL_REDIS_ADDR"`
	AuthRateLimit   int           `help:"Signup and login attempts per IP per minute. 0 disables." default:"5" env:"HABITUAL_AUTH_RATE_LIMIT"`
	ShutdownTimeout time.Duration `help:"How long to wait for in-flight requests on shutdown." default:"30s"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}

	secret, err := c.signingSecret()
	if err != nil {
		return err
	}
	tokens := auth.NewJWTManager(auth.JWTConfig{
		Secret:     secret,
		AccessTTL:  c.AccessTTL,
		RefreshTTL: c.RefreshTTL,
		Issuer:     constants.AppName,
	})
	authSvc := auth.NewService(ctx.Store, tokens, auth.NewPasswordHasher(ctx.BcryptCost))

	srv, err := api.New(api.Config{
		Addr:          c.Addr,
		CORSOrigins:   c.CORSOrigins,
		AuthRateLimit: c.AuthRateLimit,
		RedisAddr:     c.RedisAddr,
	}, ctx.Service(), authSvc)
	if err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() { listenErr <- srv.Listen() }()

	ctx.printf("habitual API listening on %s in %s (Ctrl+C to stop)\n", c.Addr, ctx.Location)

	wait := gfshutdown.GracefulShutdown(
		ctx.Ctx,
		c.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(shutdownCtx context.Context) error {
				logger.Info("Graceful shutdown initiated")
				return srv.Shutdown(shutdownCtx)
			},
		},
	)

	var code int
	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		// Listen returns as soon as the listener closes; let the drain finish.
		code = <-wait
	case code = <-wait:
	}
	if code != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", code)
	}
	logger.Info("Server stopped")
	return nil
}

// signingSecret prefers the flag, then the keyring.
func (c *ServeCmd) signingSecret() (string, error) {
	if c.JWTSecret != "" {
		return c.JWTSecret, nil
	}
	secret, created, err := keyring.EnsureSigningSecret()
	if err != nil {
		if errors.Is(err, keyring.ErrKeyringUnavailable) {
			return "", errors.New("no signing secret: pass --jwt-secret or set HABITUAL_JWT_SECRET")
		}
		return "", err
	}
	if created {
		logger.Info("Generated a new signing secret in the OS keyring")
	}
	return secret, nil
}
