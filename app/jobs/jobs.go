// Package jobs defines the background jobs the store dispatches through
// the queue: Telegram notifications for new orders, contact submissions and
// PIN resets, plus payment-proof processing.
package jobs

import (
	"sync"

	"gorm.io/gorm"
)

var (
	dbMu sync.RWMutex
	db   *gorm.DB
)

// UseDB wires the database handle jobs load their records from.
// Called once at boot, before workers start.
func UseDB(handle *gorm.DB) {
	dbMu.Lock()
	defer dbMu.Unlock()
	db = handle
}

func conn() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}
