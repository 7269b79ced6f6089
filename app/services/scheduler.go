package services

import (
	"log"
	"time"
)

// StartScheduler starts the background task scheduler. It only reads: the
// engine itself has no background mutations, this is an app-level polling
// loop over the alert lists.
func StartScheduler(situations *SituationService) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 7:00 AM
			if now.Hour() == 7 && now.Minute() == 0 {
				log.Println("Refreshing payment alerts [07:00]...")

				alerts, err := situations.GetBatchAlerts()
				if err != nil {
					log.Printf("Error computing payment alerts: %v", err)
					continue
				}
				log.Printf("Payment alerts: %d students overdue, %d due within %d days",
					len(alerts.Overdue), len(alerts.DueSoon), dueSoonWindowDays)
			}
		}
	}()
}
