package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"invoices/internal/adapters"
	"invoices/internal/domain"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	maxIdempotentBody = 1 << 16
)

// Idempotency replays the recorded response for a repeated Idempotency-Key. Only successful
// responses are recorded; a failed request releases its key so the client can retry.
// Requests without the header pass through untouched.
func Idempotency(cache adapters.IdempotencyCache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, maxIdempotentBody+1))
			if err != nil || len(body) > maxIdempotentBody {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			cacheKey := r.URL.Path + ":" + key
			bodyHash := hashBody(body)
			log := logrus.WithFields(logrus.Fields{"idempotency_key": key, "path": r.URL.Path})

			if entry, ok := cache.Get(cacheKey); ok {
				replay(w, entry, bodyHash, log)
				return
			}
			if !cache.Reserve(cacheKey, bodyHash) {
				log.Info("concurrent request detected")
				writeError(w, http.StatusConflict, "request with this idempotency key is already being processed")
				return
			}

			completed := false
			defer func() {
				if !completed {
					cache.Release(cacheKey)
				}
			}()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var recorded bytes.Buffer
			ww.Tee(&recorded)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status < 200 || status >= 300 {
				return
			}
			cache.Complete(cacheKey, domain.IdempotentResponse{
				BodyHash:   bodyHash,
				StatusCode: status,
				Header:     ww.Header().Clone(),
				Body:       recorded.Bytes(),
			}, ttl)
			completed = true
		})
	}
}

func replay(w http.ResponseWriter, entry domain.IdempotentResponse, bodyHash string, log *logrus.Entry) {
	if entry.BodyHash != bodyHash {
		log.Warn("idempotency key reused with a different request body")
		writeError(w, http.StatusUnprocessableEntity, "idempotency key conflict: request body does not match previous request")
		return
	}

	switch entry.Status {
	case domain.IdempotencyProcessing:
		log.Info("concurrent request detected")
		writeError(w, http.StatusConflict, "request with this idempotency key is already being processed")
	case domain.IdempotencyCompleted:
		log.Info("returning recorded response")
		for name, values := range entry.Header {
			w.Header()[name] = append([]string(nil), values...)
		}
		w.Header().Set(ReplayedHeader, "true")
		w.WriteHeader(entry.StatusCode)
		_, _ = w.Write(entry.Body)
	default:
		log.WithField("status", entry.Status).Error("unknown idempotency entry status")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func hashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
