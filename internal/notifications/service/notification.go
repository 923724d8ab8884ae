package service

import (
	"context"
	"fmt"
	"sync"

	"realty/internal/notifications/repository"
	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/events"
	"realty/pkg/kafka"
	"realty/pkg/model"
)

type NotificationService interface {
	// HandleMessage is the Kafka handler for appointment events. It writes
	// one inbox entry per participant and is safe to replay.
	HandleMessage(ctx context.Context, msg kafka.Message) error
	List(ctx context.Context, limit int, offset int64) ([]*model.Notification, int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	cfg  *config.Config
}

func NewNotificationService(repo repository.NotificationRepository, cfg *config.Config) NotificationService {
	return &notificationService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *notificationService) HandleMessage(ctx context.Context, msg kafka.Message) error {
	event, err := events.Decode(msg)
	if err != nil {
		return err
	}

	eventID := msg.GetEventID()
	if eventID == "" {
		return kafka.NewPermanentError("appointment event has no event id", kafka.ErrInvalidMessage)
	}

	for _, userID := range recipients(event.Appointment) {
		notification := &model.Notification{
			UserID:        userID,
			EventID:       eventID,
			Kind:          event.Type,
			Message:       describe(event),
			AppointmentID: event.Appointment.ID,
			Date:          event.Appointment.Date,
			Time:          event.Appointment.Time,
		}

		inserted, err := s.repo.Insert(ctx, notification)
		if err != nil {
			return kafka.NewTransientError("store notification", err)
		}
		if !inserted {
			s.cfg.Log.Debug("Notification already stored", "event_id", eventID, "user_id", userID)
		}
	}

	s.cfg.Log.Info("Appointment event delivered",
		"event_id", eventID,
		"type", event.Type,
		"appointment_id", event.Appointment.ID,
	)
	return nil
}

func (s *notificationService) List(ctx context.Context, limit int, offset int64) ([]*model.Notification, int64, error) {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, 0, apperrors.Unauthorized("Sign in to view notifications")
	}

	var count int64
	var notifications []*model.Notification
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, principal.UserID)
	}()

	go func() {
		defer wg.Done()
		notifications, errFind = s.repo.FindByUser(ctx, principal.UserID, limit, offset)
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, apperrors.Internal("Failed to count notifications", errCount)
	}
	if errFind != nil {
		return nil, 0, apperrors.Internal("Failed to list notifications", errFind)
	}
	return notifications, count, nil
}

func recipients(a model.Appointment) []string {
	var ids []string
	if a.ClientID != "" {
		ids = append(ids, a.ClientID)
	}
	if a.AgentID != "" && a.AgentID != a.ClientID {
		ids = append(ids, a.AgentID)
	}
	return ids
}

func describe(event events.AppointmentEvent) string {
	a := event.Appointment
	title := a.PropertyTitle
	if title == "" {
		title = "a property"
	}
	switch event.Type {
	case events.TypeAppointmentCancelled:
		return fmt.Sprintf("Your viewing of %s on %s at %s was cancelled", title, a.Date, a.Time)
	default:
		return fmt.Sprintf("Viewing of %s booked for %s at %s", title, a.Date, a.Time)
	}
}
