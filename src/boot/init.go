package boot

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path"
	"triphub/src/common"
	"triphub/src/config"
	"triphub/src/db"
	"triphub/src/lib"
	"triphub/src/models"
	"triphub/src/settlement"
	"triphub/src/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Ticket{},
		&models.Booking{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker(ctx context.Context, env types.Environment) {
	go common.Consumers(ctx, env)
}

// InitScheduler starts the job that retries settlement of bookings parked
// in the pending state.
func InitScheduler(coordinator *settlement.Coordinator, lister settlement.PendingLister) {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	interval := config.SettlementRetryInterval()
	batch := config.SettlementRetryBatch()
	_, err = lib.CreateCronJob("settlement-retry", interval, func() {
		outcomes, err := coordinator.RetryPending(context.Background(), lister, interval, batch)
		if err != nil {
			log.Printf("[SettlementRetry] error listing pending bookings: %s\n", err.Error())
			return
		}
		if len(outcomes) > 0 {
			log.Printf("[SettlementRetry] retried %d bookings: %v\n", len(outcomes), outcomes)
		}
	})
	if err != nil {
		log.Printf("Error scheduling settlement retry: %s\n", err.Error())
		return
	}
	log.Println("Jobs in queue:", len(sched.Jobs()))
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("Error stopping Scheduler: %s\n", err.Error())
	}
}

// DownloadFirebaseCredentials fetches the admin SDK credentials from the
// secrets bucket unless they are already on disk.
func DownloadFirebaseCredentials(ctx context.Context) {
	filename := "admin-sdk-credentials.json"
	sdkFilePath := path.Join(os.Getenv("SECRETS_DIR"), filename)
	if _, err := os.Stat(sdkFilePath); !errors.Is(err, os.ErrNotExist) {
		return
	}
	log.Println("Firebase credentials not found. Downloading...")
	client := lib.AWSGetS3Client()
	if client == nil {
		return
	}
	object, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(os.Getenv("S3_SECRETS_BUCKET")),
		Key:    aws.String(filename),
	})
	if err != nil {
		log.Printf("[S3] Error retrieving object: %s\n", err.Error())
		return
	}
	defer object.Body.Close()
	file, err := os.Create(sdkFilePath)
	if err != nil {
		log.Printf("Could not create file %s: %s\n", filename, err.Error())
		return
	}
	defer file.Close()
	if _, err := io.Copy(file, object.Body); err != nil {
		log.Printf("Error writing to file: %s\n", err.Error())
		return
	}
	log.Println("Firebase credentials have been written")
}
