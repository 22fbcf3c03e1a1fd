package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const pingTimeout = 800 * time.Millisecond

type HealthCtrl struct {
	db      *gorm.DB
	started time.Time
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db, started: time.Now()} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

type healthResp struct {
	Status    string           `json:"status"`
	UptimeSec int              `json:"uptime_sec"`
	Checks    map[string]check `json:"checks"`
	Time      string           `json:"time"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// Health answers 200 "ok" when the database responds within the ping timeout,
// 503 "degraded" otherwise.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	db := h.pingDB(ctx)
	resp := healthResp{
		Status:    "ok",
		UptimeSec: int(time.Since(h.started).Seconds()),
		Checks:    map[string]check{"database": db},
		Time:      time.Now().UTC().Format(time.RFC3339),
	}
	code := http.StatusOK
	if !db.OK {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
