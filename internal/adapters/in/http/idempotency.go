package http

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"checkout/internal/core/ports"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey      = "Idempotency-Key"
	HeaderIdempotentReplayed  = "Idempotent-Replayed"
	reasonIdempotencyConflict = "A request with this idempotency key is still being processed."

	releaseTimeout = 2 * time.Second
)

// NewIdempotencyMiddleware replays the first response to a POST request carrying
// an Idempotency-Key header. Keys are scoped to the actor. A second request for
// a key still in flight is rejected with 409. Responses with a 5xx status, and
// handlers that panic, release the key so the request can be retried.
func NewIdempotencyMiddleware(store ports.IdempotencyStore, ttl time.Duration, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(HeaderIdempotencyKey)
			if header == "" || c.Request().Method != http.MethodPost {
				return next(c)
			}

			actor, err := actorOf(c)
			if err != nil {
				return err
			}
			key := actor.UserID().String() + ":" + header
			ctx := c.Request().Context()

			if stored, err := store.Get(ctx, key); err != nil {
				return err
			} else if stored != nil {
				return replay(c, stored)
			}

			reserved, err := store.Reserve(ctx, key, ttl)
			if err != nil {
				return err
			}
			if !reserved {
				stored, err := store.Get(ctx, key)
				if err != nil {
					return err
				}
				if stored == nil {
					return echo.NewHTTPError(http.StatusConflict, reasonIdempotencyConflict)
				}
				return replay(c, stored)
			}

			recorder := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = recorder

			completed := false
			defer func() {
				if completed {
					return
				}
				// Also runs while a panic unwinds; ctx may already be cancelled.
				releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
				defer cancel()
				if err := store.Release(releaseCtx, key); err != nil {
					logger.Warn("releasing idempotency key", zap.String("key", key), zap.Error(err))
				}
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			if status >= http.StatusInternalServerError {
				return nil
			}

			response := ports.IdempotentResponse{
				StatusCode:  status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        recorder.body.Bytes(),
			}
			storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
			defer cancel()
			if err := store.Complete(storeCtx, key, response, ttl); err != nil {
				logger.Warn("storing idempotent response", zap.String("key", key), zap.Error(err))
				return nil
			}
			completed = true
			return nil
		}
	}
}

func replay(c echo.Context, stored *ports.IdempotentResponse) error {
	c.Response().Header().Set(HeaderIdempotentReplayed, "true")
	return c.Blob(stored.StatusCode, stored.ContentType, stored.Body)
}

type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
