package monitor

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
)

var startedAt = time.Now()

// RegisterMonitorPage mounts a small status page plus a JSON status feed.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(statusPage))
	})

	router.GET("/monitor/status", func(c *gin.Context) {
		dbStatus := "ok"
		if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}

		c.JSON(http.StatusOK, gin.H{
			"uptime_seconds": int(time.Since(startedAt).Seconds()),
			"database":       dbStatus,
			"environment":    os.Getenv("ENVIRONMENT"),
		})
	})
}

const statusPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Grant API Monitor</title>
  <style>
    body { font-family: sans-serif; background: #10141a; color: #dde3ea; padding: 2rem; }
    .card { background: #1a2029; border-radius: 8px; padding: 1rem 1.5rem; max-width: 480px; }
    .ok { color: #53d28c; }
    .down { color: #e46a6a; }
  </style>
</head>
<body>
  <h1>Grant Management API</h1>
  <div class="card">
    <p>Uptime: <span id="uptime">-</span>s</p>
    <p>Database: <span id="db">-</span></p>
  </div>
  <script>
    async function refresh() {
      const res = await fetch('/monitor/status');
      const data = await res.json();
      document.getElementById('uptime').textContent = data.uptime_seconds;
      const db = document.getElementById('db');
      db.textContent = data.database;
      db.className = data.database === 'ok' ? 'ok' : 'down';
    }
    refresh();
    setInterval(refresh, 5000);
  </script>
</body>
</html>`
