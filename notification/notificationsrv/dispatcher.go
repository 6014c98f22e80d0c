package notificationsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/pkg/logx"
	"github.com/talentgate/portal/recruitment/subscriber"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// dispatchTimeout bounds the work done for a single event on the bus
// goroutine. Everything slower than a queue push or a single insert belongs
// to the workers.
const dispatchTimeout = 10 * time.Second

// Dispatcher translates lifecycle events into delivery jobs and staff
// notifications. Every step is isolated: one failing enqueue or insert is
// logged and never stops the remaining channels of the same event.
type Dispatcher struct {
	queue       notification.JobQueue
	subscribers subscriber.Repository
	store       notification.Store
	templates   notification.Templates
	maxAttempts int
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(
	queue notification.JobQueue,
	subscribers subscriber.Repository,
	store notification.Store,
	templates notification.Templates,
	maxAttempts int,
) *Dispatcher {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Dispatcher{
		queue:       queue,
		subscribers: subscribers,
		store:       store,
		templates:   templates,
		maxAttempts: maxAttempts,
	}
}

// Handle routes one event. Registered on the bus.
func (d *Dispatcher) Handle(event notification.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	switch e := event.(type) {
	case notification.VacancyCreated:
		d.handleVacancyCreated(ctx, e)
	case notification.ApplicationSubmitted:
		d.handleApplicationSubmitted(ctx, e)
	case notification.ApplicationStatusChanged:
		d.handleApplicationStatusChanged(ctx, e)
	case notification.InterviewScheduled:
		d.handleInterviewScheduled(ctx, e)
	case notification.BursaryApplicationSubmitted:
		d.handleBursarySubmitted(ctx, e)
	case notification.BursaryApplicationReviewed:
		d.handleBursaryReviewed(ctx, e)
	default:
		logx.Warnf("dispatcher: unhandled event kind %s", event.Kind())
	}
}

func (d *Dispatcher) handleVacancyCreated(ctx context.Context, e notification.VacancyCreated) {
	subs, err := d.subscribers.ListActiveByVacancyType(ctx, vacancy.VacancyType(e.VacancyType))
	if err != nil {
		logx.Errorf("dispatcher: list subscribers for %s: %v", e.VacancyType, err)
	}

	subject := d.templates.NewVacancySubject(string(e.VacancyTitle))
	body := d.templates.NewVacancyBody(string(e.VacancyTitle), string(e.VacancySlug), e.Deadline)
	for _, sub := range subs {
		d.enqueue(ctx, &notification.DeliveryJob{
			Channel:    notification.ChannelEmail,
			Kind:       e.Kind(),
			Recipients: []string{string(sub.Email)},
			Subject:    subject,
			Body:       body,
		})
	}

	d.notifyStaff(ctx, notification.GroupStaff, e.Kind(), e.VacancyID.String(),
		"New vacancy published",
		fmt.Sprintf("%s is now open for applications until %s.", e.VacancyTitle, e.Deadline.Format("02 January 2006")),
		map[string]string{
			"vacancy_id":    e.VacancyID.String(),
			"vacancy_slug":  string(e.VacancySlug),
			"vacancy_title": string(e.VacancyTitle),
		})
}

func (d *Dispatcher) handleApplicationSubmitted(ctx context.Context, e notification.ApplicationSubmitted) {
	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:    notification.ChannelEmail,
		Kind:       e.Kind(),
		Recipients: []string{string(e.ApplicantEmail)},
		Subject:    d.templates.ApplicationReceivedSubject(string(e.VacancyTitle)),
		Body:       d.templates.ApplicationReceivedBody(e.ApplicantName, string(e.VacancyTitle)),
	})

	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:     notification.ChannelSMS,
		Kind:        e.Kind(),
		PhoneNumber: string(e.ApplicantPhone),
		Message:     d.templates.ApplicationReceivedSMS(string(e.VacancyTitle)),
	})

	d.notifyStaff(ctx, notification.GroupRecruiter, e.Kind(), e.ApplicationID.String(),
		"New application received",
		fmt.Sprintf("%s applied for %s.", e.ApplicantName, e.VacancyTitle),
		map[string]string{
			"application_id": e.ApplicationID.String(),
			"vacancy_title":  string(e.VacancyTitle),
		})
}

func (d *Dispatcher) handleApplicationStatusChanged(ctx context.Context, e notification.ApplicationStatusChanged) {
	var body, sms string
	if e.NewStatus == "accepted" {
		body = d.templates.ApplicationAcceptedBody(e.ApplicantName, string(e.VacancyTitle))
		sms = d.templates.ApplicationAcceptedSMS(string(e.VacancyTitle))
	} else {
		body = d.templates.ApplicationRejectedBody(e.ApplicantName, string(e.VacancyTitle), e.ReviewComments)
		sms = d.templates.ApplicationRejectedSMS(string(e.VacancyTitle), e.ReviewComments)
	}

	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:    notification.ChannelEmail,
		Kind:       e.Kind(),
		Recipients: []string{string(e.ApplicantEmail)},
		Subject:    d.templates.ApplicationStatusSubject(string(e.VacancyTitle)),
		Body:       body,
	})

	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:     notification.ChannelSMS,
		Kind:        e.Kind(),
		PhoneNumber: string(e.ApplicantPhone),
		Message:     sms,
	})
}

func (d *Dispatcher) handleInterviewScheduled(ctx context.Context, e notification.InterviewScheduled) {
	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:    notification.ChannelEmail,
		Kind:       e.Kind(),
		Recipients: []string{string(e.ApplicantEmail)},
		Subject:    d.templates.InterviewSubject(string(e.VacancyTitle)),
		Body:       d.templates.InterviewBody(e.ApplicantName, string(e.VacancyTitle), e.InterviewID.String(), e.ScheduleDatetime),
	})

	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:     notification.ChannelSMS,
		Kind:        e.Kind(),
		PhoneNumber: string(e.ApplicantPhone),
		Message:     d.templates.InterviewSMS(string(e.VacancyTitle)),
	})

	d.notifyStaff(ctx, notification.GroupRecruiter, e.Kind(), e.InterviewID.String(),
		"Interview scheduled",
		fmt.Sprintf("Interview with %s for %s on %s.",
			e.ApplicantName, e.VacancyTitle, e.ScheduleDatetime.Format("Monday, 02 January 2006 at 15:04")),
		map[string]string{
			"interview_id":   e.InterviewID.String(),
			"application_id": e.ApplicationID.String(),
			"vacancy_title":  string(e.VacancyTitle),
		})
}

func (d *Dispatcher) handleBursarySubmitted(ctx context.Context, e notification.BursaryApplicationSubmitted) {
	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:    notification.ChannelEmail,
		Kind:       e.Kind(),
		Recipients: []string{string(e.ApplicantEmail)},
		Subject:    d.templates.BursaryReceivedSubject(e.BursaryYear),
		Body:       d.templates.BursaryReceivedBody(e.ApplicantName, e.BursaryYear),
	})

	d.notifyStaff(ctx, notification.GroupFinaid, e.Kind(), e.BursaryApplicationID.String(),
		"New bursary application",
		fmt.Sprintf("%s applied for the %s bursary programme.", e.ApplicantName, e.BursaryYear),
		map[string]string{
			"bursary_application_id": e.BursaryApplicationID.String(),
			"bursary_year":           e.BursaryYear,
		})
}

func (d *Dispatcher) handleBursaryReviewed(ctx context.Context, e notification.BursaryApplicationReviewed) {
	var body string
	if e.NewStatus == "accepted" {
		body = d.templates.BursaryAcceptedBody(e.ApplicantName, e.BursaryYear)
	} else {
		body = d.templates.BursaryRejectedBody(e.ApplicantName, e.BursaryYear)
	}

	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:    notification.ChannelEmail,
		Kind:       e.Kind(),
		Recipients: []string{string(e.ApplicantEmail)},
		Subject:    d.templates.BursarySubject(e.BursaryYear),
		Body:       body,
	})

	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:     notification.ChannelSMS,
		Kind:        e.Kind(),
		PhoneNumber: string(e.ApplicantPhone),
		Message:     d.templates.BursaryOutcomeSMS(e.BursaryYear, e.NewStatus),
	})

	d.notifyStaff(ctx, notification.GroupFinaid, e.Kind(), e.BursaryApplicationID.String(),
		"Bursary application reviewed",
		fmt.Sprintf("The %s bursary application of %s was %s.", e.BursaryYear, e.ApplicantName, e.NewStatus),
		map[string]string{
			"bursary_application_id": e.BursaryApplicationID.String(),
			"bursary_year":           e.BursaryYear,
			"status":                 e.NewStatus,
		})
}

// enqueue stamps identity and attempt bookkeeping, then pushes the job.
func (d *Dispatcher) enqueue(ctx context.Context, job *notification.DeliveryJob) {
	if job.Channel == notification.ChannelSMS && job.PhoneNumber == "" {
		return
	}

	job.ID = kernel.NewJobID(uuid.NewString())
	job.MaxAttempts = d.maxAttempts
	job.CreatedAt = time.Now()

	if err := d.queue.Enqueue(ctx, job); err != nil {
		logx.Errorf("dispatcher: enqueue %s job for %s: %v", job.Channel, job.Kind, err)
	}
}

// notifyStaff stores an in-portal notification and queues its broadcast.
// payload carries the event identifiers the broadcast emits as distinct
// JSON fields.
func (d *Dispatcher) notifyStaff(ctx context.Context, group notification.Group, kind notification.EventKind, objectID, subject, body string, payload map[string]string) {
	n := &notification.StaffNotification{
		ID:        kernel.NewNotificationID(uuid.NewString()),
		Group:     group,
		Kind:      kind,
		ObjectID:  objectID,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := d.store.Create(ctx, n); err != nil {
		logx.Errorf("dispatcher: store %s notification: %v", group, err)
	}

	d.enqueue(ctx, &notification.DeliveryJob{
		Channel:  notification.ChannelBroadcast,
		Kind:     kind,
		Group:    group,
		ObjectID: objectID,
		Payload:  payload,
		Subject:  subject,
		Body:     body,
	})
}
