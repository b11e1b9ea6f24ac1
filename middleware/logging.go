package middleware

import (
	"net/http"
	"time"

	"athletics-backend/respond"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rr *responseRecorder) Write(p []byte) (int, error) {
	if rr.status == 0 {
		rr.status = http.StatusOK
	}
	n, err := rr.ResponseWriter.Write(p)
	rr.bytes += n
	return n, err
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

// RequestLogger присваивает запросу id и кладёт logrus entry в контекст
func RequestLogger(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			start := time.Now()

			entry := log.WithFields(logrus.Fields{
				"http.req.path":   r.URL.Path,
				"http.req.method": r.Method,
				"http.req.id":     requestID,
			})
			w.Header().Set("X-Request-ID", requestID)

			rr := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rr, r.WithContext(respond.WithLogger(r.Context(), entry)))

			if rr.status == 0 {
				rr.status = http.StatusOK
			}
			entry.WithFields(logrus.Fields{
				"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
				"http.resp.status":  rr.status,
				"http.resp.bytes":   rr.bytes,
			}).Info("📨 request complete")
		})
	}
}
