package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func TestDispatcherWritesQueuedEventsBeforeClose(t *testing.T) {
	db := openDB(t)
	d := NewDispatcher(New(db))

	user, booking := "owner-1", "b1"
	for i := 0; i < 5; i++ {
		d.Dispatch(Event{
			RestaurantID: "rest-1",
			UserID:       &user,
			Action:       "booking_accept",
			Entity:       "booking",
			EntityID:     &booking,
			Metadata:     map[string]any{"n": i},
		})
	}
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 5)
	assert.Equal(t, "rest-1", logs[0].RestaurantID)
	assert.Equal(t, "b1", *logs[0].EntityID)
	assert.JSONEq(t, `{"n":0}`, logs[0].Metadata)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	db := openDB(t)
	d := NewDispatcher(New(db))
	d.Dispatch(Event{RestaurantID: "rest-1", Action: "booking_created"})
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{RestaurantID: "rest-1", Action: "booking_executed"})
		d.Close()
	})

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoggerWithoutMetadata(t *testing.T) {
	db := openDB(t)
	New(db).Dispatch(Event{RestaurantID: "rest-1", Action: "payment_failed"})

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "", entry.Metadata)
	assert.Nil(t, entry.UserID)
}
