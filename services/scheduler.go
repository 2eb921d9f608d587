// services/scheduler.go
package services

import (
	"log"
	"time"

	"sponsor-dashboard-system/models"

	"github.com/go-co-op/gocron/v2"
)

func (s *ListingService) StartDeadlineScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: move published listings past their deadline into review
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var listings []models.Listing
			now := time.Now()
			err := s.DB.Where("status = ? AND deadline <= ? AND is_winners_announced = ?",
				models.ListingStatusPublished, now, false).
				Find(&listings).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, l := range listings {
				l.Status = models.ListingStatusReview
				if err := s.DB.Save(&l).Error; err != nil {
					log.Printf("[Scheduler] Failed to move listing %s into review: %v", l.ID, err)
				} else {
					log.Printf("[Scheduler] Listing in review: %s", l.Title)
				}
			}
		}),
	)
}
