package boot

import (
	"jcr/src/db"
	"jcr/src/lib"
	"jcr/src/models"
	"jcr/src/utils"
	"log"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Document{},
		&models.Car{},
		&models.FavoriteCar{},
		&models.Booking{},
		&models.CarImage{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the nightly earnings reconciliation. Incremental
// updates made during the day drift when bookings are edited or deleted by
// hand; the overnight pass rebuilds every car from its bookings.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateDailyJob(2, 30, ReconcileAllCarEarnings)
	if err != nil {
		log.Printf("Error scheduling reconciliation job: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled nightly earnings reconciliation: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

func ReconcileAllCarEarnings() {
	conn := db.GetDb()
	var carIDs []uint
	if err := conn.Model(&models.Car{}).Pluck("id", &carIDs).Error; err != nil {
		log.Printf("Error listing cars for reconciliation: %s\n", err.Error())
		return
	}
	var failed int
	for _, carID := range carIDs {
		err := conn.Transaction(func(tx *gorm.DB) error {
			_, err := utils.RecomputeCarEarnings(tx, carID)
			return err
		})
		if err != nil {
			failed++
			log.Printf("Error reconciling earnings for car %d: %s\n", carID, err.Error())
		}
	}
	log.Printf("Earnings reconciliation finished: %d cars, %d failed\n", len(carIDs), failed)
}
