package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"main/model"
	"main/utils"
)

// UserStore resolves note owners for reminder delivery.
type UserStore interface {
	FindUserByID(ctx context.Context, userID string) (*model.User, error)
}

// ReminderQueue schedules a delivery job keyed by note to run at a future
// instant. At-most-once execution is not guaranteed; the periodic sweep
// compensates for lost jobs.
type ReminderQueue interface {
	Enqueue(jobID string, noteID string, userID string, runAt time.Time)
}

// TimerQueue is an in-process ReminderQueue backed by one timer per job.
// Re-enqueueing a job id replaces the pending timer, so the inline
// scheduling path and the sweep converge on a single job per note.
type TimerQueue struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	deliver func(noteID string, userID string)
}

func NewTimerQueue(deliver func(noteID string, userID string)) *TimerQueue {
	return &TimerQueue{
		timers:  make(map[string]*time.Timer),
		deliver: deliver,
	}
}

func (q *TimerQueue) Enqueue(jobID string, noteID string, userID string, runAt time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[jobID]; ok {
		timer.Stop()
	}

	delay := time.Until(runAt)
	if delay < 0 {
		delay = 0
	}

	q.timers[jobID] = time.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, jobID)
		q.mu.Unlock()
		q.deliver(noteID, userID)
	})
}

// Stop cancels every pending timer.
func (q *TimerQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for jobID, timer := range q.timers {
		timer.Stop()
		delete(q.timers, jobID)
	}
}

// ReminderScheduler drives the NoReminder -> Scheduled -> Delivered state
// machine: notes written with a future reminder get an inline deferred
// job, and a periodic sweep re-enqueues anything due and undelivered as
// the durability backstop.
type ReminderScheduler struct {
	notes         NoteStore
	users         UserStore
	cache         *NoteCache
	mailer        Mailer
	queue         ReminderQueue
	from          string
	sweepInterval time.Duration
	stop          chan struct{}
}

// NewReminderScheduler wires the scheduler. A nil queue gets an in-process
// TimerQueue delivering through this scheduler.
func NewReminderScheduler(notes NoteStore, users UserStore, cache *NoteCache,
	mailer Mailer, queue ReminderQueue, from string, sweepInterval time.Duration) *ReminderScheduler {

	s := &ReminderScheduler{
		notes:         notes,
		users:         users,
		cache:         cache,
		mailer:        mailer,
		queue:         queue,
		from:          from,
		sweepInterval: sweepInterval,
		stop:          make(chan struct{}),
	}
	if s.queue == nil {
		s.queue = NewTimerQueue(s.Deliver)
	}
	return s
}

func reminderJobID(noteID string) string {
	return "reminder:" + noteID
}

// Schedule enqueues a delivery job when the note carries an undelivered
// reminder strictly in the future. Past timestamps are left to the sweep.
func (s *ReminderScheduler) Schedule(note *model.Note, now time.Time) {
	if note.Reminder == nil || note.IsReminded {
		return
	}
	if !note.Reminder.After(now) {
		return
	}
	s.queue.Enqueue(reminderJobID(note.ID), note.ID, note.UserID, *note.Reminder)
	utils.RemindersScheduledTotal.Inc()
}

// Deliver executes one delivery job: re-fetch the note cache-first with a
// repository fallback, send the reminder email to the owner and persist
// is_reminded. Any failure is terminal for the job; the sweep retries
// undelivered reminders.
func (s *ReminderScheduler) Deliver(noteID string, userID string) {
	ctx := context.Background()

	note, err := s.cache.Get(ctx, userID, noteID)
	if err != nil {
		log.Printf("Reminder delivery: failed to fetch note %s: %v", noteID, err)
		utils.RemindersDeliveredTotal.WithLabelValues("failed").Inc()
		return
	}
	if note == nil {
		// The cached active list omits archived and trashed notes; their
		// reminders are still owed. Delivery is not user-facing, so going
		// to the repository here leaks nothing.
		note, err = s.notes.GetNote(ctx, noteID, userID)
		if err != nil {
			log.Printf("Reminder delivery: failed to fetch note %s: %v", noteID, err)
			utils.RemindersDeliveredTotal.WithLabelValues("failed").Inc()
			return
		}
	}
	if note == nil {
		log.Printf("Reminder delivery: note %s not found", noteID)
		utils.RemindersDeliveredTotal.WithLabelValues("skipped").Inc()
		return
	}
	if note.IsReminded || note.Reminder == nil {
		utils.RemindersDeliveredTotal.WithLabelValues("skipped").Inc()
		return
	}

	owner, err := s.users.FindUserByID(ctx, note.UserID)
	if err != nil || owner == nil {
		log.Printf("Reminder delivery: owner %s of note %s not found: %v", note.UserID, noteID, err)
		utils.RemindersDeliveredTotal.WithLabelValues("failed").Inc()
		return
	}

	subject := "Reminder"
	body := fmt.Sprintf("Reminder for Note: %s", note.Title)
	if err := s.mailer.Send(subject, body, s.from, []string{owner.Email}); err != nil {
		log.Printf("Reminder delivery: failed to send email for note %s: %v", noteID, err)
		utils.TrackError("mail")
		utils.RemindersDeliveredTotal.WithLabelValues("failed").Inc()
		return
	}

	if err := s.notes.MarkReminded(ctx, note.ID); err != nil {
		log.Printf("Reminder delivery: failed to mark note %s reminded: %v", noteID, err)
		utils.RemindersDeliveredTotal.WithLabelValues("failed").Inc()
		return
	}

	note.IsReminded = true
	for _, uid := range note.AffectedUsers() {
		s.cache.Replace(ctx, uid, note)
	}
	utils.RemindersDeliveredTotal.WithLabelValues("delivered").Inc()
}

// Sweep enqueues a delivery job for every due, undelivered reminder.
// Idempotent: delivered notes no longer match the query, and re-enqueueing
// a pending job replaces it.
func (s *ReminderScheduler) Sweep(ctx context.Context, now time.Time) {
	due, err := s.notes.DueReminders(ctx, now)
	if err != nil {
		log.Printf("Reminder sweep failed: %v", err)
		return
	}
	for _, note := range due {
		s.queue.Enqueue(reminderJobID(note.ID), note.ID, note.UserID, now)
	}
}

// Start runs the periodic sweep until Stop is called.
func (s *ReminderScheduler) Start() {
	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(context.Background(), time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *ReminderScheduler) Stop() {
	close(s.stop)
	if q, ok := s.queue.(*TimerQueue); ok {
		q.Stop()
	}
}
