package background

import (
	"context"
	"log"
	"time"

	"tradeyard/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic marketplace housekeeping: completing
// bookings whose period ended and closing tenders past their deadline.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	bookingRepo repositories.BookingRepository
	tenderRepo  repositories.TenderRepository
}

func NewJobScheduler(bookingRepo repositories.BookingRepository, tenderRepo repositories.TenderRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		bookingRepo: bookingRepo,
		tenderRepo:  tenderRepo,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.completeExpiredBookings, context.Background()),
		gocron.WithName("complete-expired-bookings"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.closeExpiredTenders, context.Background()),
		gocron.WithName("close-expired-tenders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (js *JobScheduler) completeExpiredBookings(ctx context.Context) {
	n, err := js.bookingRepo.CompleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("Failed to complete expired bookings: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Completed %d expired bookings", n)
	}
}

func (js *JobScheduler) closeExpiredTenders(ctx context.Context) {
	n, err := js.tenderRepo.CloseExpired(ctx, time.Now())
	if err != nil {
		log.Printf("Failed to close expired tenders: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Closed %d expired tenders", n)
	}
}
