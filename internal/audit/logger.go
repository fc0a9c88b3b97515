package audit

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		RestaurantID: ev.RestaurantID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
	}

	return l.db.Create(&entry).Error
}

// Dispatch writes synchronously. Request paths use a Dispatcher instead.
func (l *Logger) Dispatch(ev Event) {
	if err := l.Log(ev); err != nil {
		log.Println("audit error:", err)
	}
}

var _ Sink = (*Logger)(nil)
