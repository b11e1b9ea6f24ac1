package handlers

import (
	"context"
	"net/http"
	"time"

	"athletics-backend/respond"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"service":   "athletics-backend",
		"database":  "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			respond.Logger(r.Context()).WithError(err).Warn("⚠️ database ping failed")
			response["status"] = "degraded"
			response["database"] = "unreachable"
			respond.JSON(w, http.StatusServiceUnavailable, response)
			return
		}
	}

	respond.JSON(w, http.StatusOK, response)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `
<!DOCTYPE html>
<html>
<head>
    <title>Athletics Backend API</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 0;
            background: linear-gradient(135deg, #11998e 0%, #38ef7d 100%);
            min-height: 100vh;
            display: flex;
            justify-content: center;
            align-items: center;
        }
        .container {
            background: white;
            padding: 3rem;
            border-radius: 15px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.2);
            max-width: 680px;
        }
        h1 { color: #333; text-align: center; }
        .status {
            background: #4CAF50;
            color: white;
            padding: 0.5rem 1rem;
            border-radius: 25px;
            display: inline-block;
        }
        .endpoints {
            background: #f1f3f4;
            padding: 1rem;
            border-radius: 8px;
            margin-top: 1rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>🏃 Athletics Backend API</h1>
        <div class="status">✅ Server is running</div>
        <div class="endpoints">
            <p><strong>Public:</strong></p>
            <ul>
                <li><code>POST /api/v1/users/register</code></li>
                <li><code>POST /api/v1/users/login</code></li>
                <li><code>POST /api/v1/users/token</code></li>
            </ul>
            <p><strong>Bearer token required:</strong></p>
            <ul>
                <li><code>/api/v1/users/me</code>, <code>/api/v1/users/{id}</code></li>
                <li><code>/api/v1/athletes</code>, <code>/api/v1/athletes/me</code></li>
                <li><code>/api/v1/coaches</code>, <code>/api/v1/coaches/me/athletes</code></li>
                <li><code>/api/v1/jumps</code> with <code>/me</code>, <code>/me/statistics</code>, <code>/me/best</code>, <code>/athlete/{id}</code></li>
                <li><code>/api/v1/marks</code> with <code>/me</code>, <code>/me/statistics</code>, <code>/me/records</code>, <code>/athlete/{id}</code></li>
            </ul>
        </div>
    </div>
</body>
</html>`
	w.Write([]byte(html))
}
