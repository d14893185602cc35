package reminder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	authrepo "taskpro-backend/internal/auth/repository"
	"taskpro-backend/internal/kanban/domain"
	kanbanrepo "taskpro-backend/internal/kanban/repository"
	"taskpro-backend/internal/kanban/usecase"
	"taskpro-backend/pkg/fcm"
)

// Pusher delivers a notification to a set of devices and reports the tokens
// that were rejected.
type Pusher interface {
	SendToDevices(ctx context.Context, tokens []string, notification fcm.NotificationData) ([]string, error)
}

// Scheduler pushes a reminder for every card whose deadline falls on or before
// the current day, once per deadline.
type Scheduler struct {
	cards     kanbanrepo.CardRepository
	devices   authrepo.DeviceTokenRepository
	pusher    Pusher
	interval  time.Duration
	clientURL string
	now       func() time.Time

	started  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler creates a new scheduler
func NewScheduler(cards kanbanrepo.CardRepository, devices authrepo.DeviceTokenRepository, pusher Pusher, interval time.Duration, clientURL string) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		cards:     cards,
		devices:   devices,
		pusher:    pusher,
		interval:  interval,
		clientURL: clientURL,
		now:       time.Now,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start begins the scheduler loop. It is a no-op without a pusher or when
// already started.
func (s *Scheduler) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	if s.pusher == nil {
		log.Println("[Reminder] FCM client not available, scheduler disabled")
		close(s.done)
		return
	}

	log.Printf("[Reminder] Starting deadline reminder scheduler (interval: %s)", s.interval)

	go func() {
		defer close(s.done)
		s.RunOnce(context.Background())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunOnce(context.Background())
			case <-s.stopChan:
				log.Println("[Reminder] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler and waits for the current pass. It
// returns at once if Start was never called.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	if s.started.Load() {
		<-s.done
	}
}

// RunOnce sends reminders for every due card and returns how many cards it
// handled.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	cards, err := s.cards.FindDueReminders(ctx, usecase.EndOfDay(s.now()))
	if err != nil {
		log.Printf("[Reminder] Error finding due cards: %v", err)
		return 0
	}
	if len(cards) == 0 {
		return 0
	}

	log.Printf("[Reminder] Found %d cards with pending reminders", len(cards))

	for _, card := range cards {
		s.remind(ctx, card)

		// Marked regardless of delivery to avoid re-sending every tick.
		if err := s.cards.MarkReminderSent(ctx, card.ID); err != nil {
			log.Printf("[Reminder] Error marking reminder as sent for card %s: %v", card.ID, err)
		}
	}
	return len(cards)
}

func (s *Scheduler) remind(ctx context.Context, card *domain.Card) {
	tokens, err := s.devices.GetTokensByUserID(ctx, card.CreatedBy)
	if err != nil {
		log.Printf("[Reminder] Error getting device tokens for user %s: %v", card.CreatedBy, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	failedTokens, err := s.pusher.SendToDevices(ctx, tokenStrings, notificationFor(card, s.now(), s.clientURL))
	if err != nil {
		log.Printf("[Reminder] Error sending reminder for card %s: %v", card.ID, err)
		return
	}
	log.Printf("[Reminder] Sent reminder for card %s to %d devices", card.ID, len(tokenStrings)-len(failedTokens))

	for _, token := range failedTokens {
		if err := s.devices.DeleteToken(ctx, token); err != nil {
			log.Printf("[Reminder] Error deleting stale device token: %v", err)
		}
	}
}

func notificationFor(card *domain.Card, now time.Time, clientURL string) fcm.NotificationData {
	title := "Deadline today: " + card.Title
	if card.Deadline != nil && card.Deadline.Before(startOfToday(now)) {
		title = "Overdue: " + card.Title
	}

	body := card.Description
	if card.Deadline != nil {
		body = fmt.Sprintf("%s\nDeadline: %s", body, card.Deadline.In(now.Location()).Format("02/01/2006"))
	}

	link := ""
	if clientURL != "" {
		link = clientURL + "/home"
	}

	return fcm.NotificationData{
		Title: title,
		Body:  body,
		Link:  link,
		Data: map[string]string{
			"type":     "card_deadline",
			"card_id":  card.ID,
			"board_id": card.BoardID,
			"priority": string(card.Priority),
		},
	}
}

func startOfToday(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
