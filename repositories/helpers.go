package repositories

import (
	"time"

	"apparel-app/config"
)

func grnTxTimeout() time.Duration {
	if config.GRNTxTimeout <= 0 {
		return 10 * time.Second
	}
	return config.GRNTxTimeout
}

func nowDate() string {
	return time.Now().Format("2006-01-02")
}
