package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/realtime"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// RealtimeHandler streams a restaurant's booking events to its owner.
type RealtimeHandler struct {
	db       *gorm.DB
	broker   realtime.Broker
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(db *gorm.DB, broker realtime.Broker, allowedOrigins []string) *RealtimeHandler {
	allowed := map[string]bool{}
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &RealtimeHandler{
		db:     db,
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

func (h *RealtimeHandler) Stream(c *gin.Context) {
	var rest models.Restaurant
	if err := h.db.Where("owner_id = ?", currentUserID(c)).First(&rest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Forbidden(c, "no_restaurant", "You do not own a restaurant.")
			return
		}
		httperr.Internal(c, "failed_to_get_restaurant", "Could not load restaurant.")
		return
	}

	// Subscribe before upgrading so a broker failure is still a plain HTTP error.
	sub, err := h.broker.Subscribe(c.Request.Context(), rest.ID)
	if err != nil {
		log.Printf("realtime: subscribe %s: %v", rest.ID, err)
		httperr.Write(c, http.StatusServiceUnavailable, "realtime_unavailable", "Live updates are unavailable.")
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: upgrade: %v", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go readPump(conn, done)

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.Messages():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
