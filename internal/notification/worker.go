package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"carehome-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender implementation using the webpush
// library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers pushing bed-availability
// notices. A bed id is dispatched whenever a move vacates it.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case bedID := <-wp.jobs:
			wp.notifyBedAvailable(ctx, bedID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a vacated bed for notification.
func (wp *WorkerPool) Dispatch(bedID string) {
	wp.jobs <- bedID
}

// notifyBedAvailable fetches the subscriptions registered for the bed
// and pushes an availability notice to each.
func (wp *WorkerPool) notifyBedAvailable(ctx context.Context, bedID string) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_bed_mapping sbm ON sbm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("sbm.bed_id = ?", bedID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for bed %s: %v", bedID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for bed %s", len(subscriptions), bedID)

	message := fmt.Sprintf("Bed %s is now available.", wp.bedLabel(ctx, bedID))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// bedLabel adds the ward name to the bed id when it can be resolved.
func (wp *WorkerPool) bedLabel(ctx context.Context, bedID string) string {
	var row struct {
		WardName string
	}
	err := wp.db.WithContext(ctx).
		Table("beds").
		Select("wards.name AS ward_name").
		Joins("JOIN rooms ON rooms.id = beds.room_id").
		Joins("JOIN wards ON wards.id = rooms.ward_id").
		Where("beds.id = ?", bedID).
		Scan(&row).Error
	if err != nil || row.WardName == "" {
		if err != nil {
			log.Printf("Error resolving ward for bed %s: %v", bedID, err)
		}
		return bedID
	}
	return fmt.Sprintf("%s (%s)", bedID, row.WardName)
}

// sendNotification sends a single web push notification and prunes
// expired subscriptions.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
