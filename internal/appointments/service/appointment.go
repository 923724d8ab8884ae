package service

import (
	"context"
	"errors"
	"sync"
	"time"

	appointmentserrors "realty/internal/appointments/errors"
	"realty/internal/appointments/repository"
	"realty/internal/appointments/validator"
	"realty/internal/availability"
	propertieserrors "realty/internal/properties/errors"
	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/events"
	"realty/pkg/model"
	"realty/pkg/sanitizer"
	"realty/pkg/validation"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	publishTimeout = 5 * time.Second
	storeName      = "Appointment store"
)

// Scope selects which slice of a caller's appointments to list.
type Scope int

const (
	// ScopeAll is the full history, newest first.
	ScopeAll Scope = iota
	// ScopeUpcoming holds records with timestamp >= now, oldest first.
	ScopeUpcoming
	// ScopePast holds records with timestamp < now, newest first.
	ScopePast
)

// PropertyLookup resolves the listing an appointment is booked against.
type PropertyLookup interface {
	FindByID(ctx context.Context, id string) (*model.Property, error)
}

type AppointmentService interface {
	Availability(ctx context.Context, propertyID, date string) (*model.Availability, error)
	Book(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error)
	Cancel(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	List(ctx context.Context, scope Scope, limit int, offset int64) ([]*model.Appointment, int64, error)
	Overview(ctx context.Context) (*model.AppointmentOverview, error)
}

type appointmentService struct {
	repo       repository.AppointmentRepository
	lockRepo   repository.AppointmentLockRepository
	properties PropertyLookup
	engine     *availability.Engine
	validator  *validator.AppointmentValidator
	publisher  events.Publisher
	cfg        *config.Config
	now        func() time.Time
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.AppointmentLockRepository,
	properties PropertyLookup,
	engine *availability.Engine,
	validator *validator.AppointmentValidator,
	publisher events.Publisher,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:       repo,
		lockRepo:   lockRepo,
		properties: properties,
		engine:     engine,
		validator:  validator,
		publisher:  publisher,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Availability derives the open slots of date for the property's agent from
// the store on every call.
func (s *appointmentService) Availability(ctx context.Context, propertyID, date string) (*model.Availability, error) {
	date = sanitizer.TrimAndNormalize(date)
	if date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
		}
	}

	property, err := s.lookupProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	result := &model.Availability{Date: date, AgentID: property.AgentID, Slots: []string{}}
	if date == "" {
		return result, nil
	}

	existing, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to read appointments for availability", "date", date, "error", err)
		return nil, apperrors.Unavailable(storeName)
	}

	result.Slots = s.engine.AvailableSlots(date, property.AgentID, existing)
	result.Exhausted = s.engine.Exhausted(property.AgentID, existing)
	return result, nil
}

func (s *appointmentService) Book(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, apperrors.Unauthorized("Sign in to book an appointment")
	}
	if !principal.Can(auth.CapBook) {
		return nil, apperrors.Forbidden("Your role cannot book appointments")
	}

	s.sanitizeRequest(req)
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, validation.AppError("Invalid appointment request", err)
	}
	if req.Date < s.today() {
		return nil, apperrors.InvalidInput("Cannot book an appointment on a past date")
	}

	property, err := s.lookupProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		PropertyID:    property.ID,
		PropertyTitle: property.Title,
		AgentID:       property.AgentID,
		AgentName:     property.AgentName,
		ClientID:      principal.UserID,
		ClientName:    principal.Email,
		Date:          req.Date,
		Time:          req.Time,
		Timestamp:     s.now().UnixMilli(),
	}

	release, err := s.acquireDateLock(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByDate(sessCtx, appointment.Date)
		if err != nil {
			s.cfg.Log.Error("Failed to read appointments for admission", "date", appointment.Date, "error", err)
			return apperrors.Unavailable(storeName)
		}

		if err := s.engine.Admit(appointment.Date, appointment.Time, appointment.AgentID, existing); err != nil {
			return admissionError(err)
		}

		if err := s.repo.Create(sessCtx, appointment); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return admissionError(availability.ErrSlotUnavailable)
			}
			s.cfg.Log.Error("Failed to insert appointment", "date", appointment.Date, "time", appointment.Time, "error", err)
			return apperrors.Unavailable(storeName)
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			s.cfg.Log.Error("Appointment transaction failed", "date", appointment.Date, "error", err)
			return nil, apperrors.Unavailable(storeName)
		}
		return nil, err
	}

	s.cfg.Log.Info("Appointment booked successfully",
		"id", appointment.ID,
		"property_id", appointment.PropertyID,
		"agent_id", appointment.AgentID,
		"client_id", appointment.ClientID,
		"date", appointment.Date,
		"time", appointment.Time,
	)
	s.publish(ctx, events.TypeAppointmentBooked, appointment, principal.UserID)
	return appointment, nil
}

// Cancel deletes the record outright. The engine is not consulted.
func (s *appointmentService) Cancel(ctx context.Context, id string) error {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return apperrors.Unauthorized("Sign in to cancel an appointment")
	}

	appointment, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	allowed := principal.Can(auth.CapCancelAny) ||
		(principal.Can(auth.CapCancelOwn) && appointment.Involves(principal.UserID))
	if !allowed {
		s.cfg.Log.Warn("Appointment cancellation denied", "id", id, "user_id", principal.UserID, "role", principal.Role)
		return apperrors.Forbidden("You cannot cancel this appointment")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Appointment", id)
		}
		s.cfg.Log.Error("Failed to delete appointment", "id", id, "error", err)
		return apperrors.Unavailable(storeName)
	}

	s.cfg.Log.Info("Appointment cancelled", "id", id, "by", principal.UserID, "date", appointment.Date, "time", appointment.Time)
	s.publish(ctx, events.TypeAppointmentCancelled, appointment, principal.UserID)
	return nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, apperrors.Unauthorized("Sign in to view appointments")
	}

	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.Can(auth.CapViewAll) && !appointment.Involves(principal.UserID) {
		return nil, apperrors.NotFoundWithID("Appointment", id)
	}
	return appointment, nil
}

func (s *appointmentService) List(ctx context.Context, scope Scope, limit int, offset int64) ([]*model.Appointment, int64, error) {
	q, err := s.queryFor(ctx, scope)
	if err != nil {
		return nil, 0, err
	}

	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, q)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", errCount)
			errCount = apperrors.Unavailable(storeName)
		}
	}()

	go func() {
		defer wg.Done()
		appointments, errFind = s.repo.Find(ctx, q, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list appointments", "error", errFind)
			errFind = apperrors.Unavailable(storeName)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return appointments, count, nil
}

// Overview splits every appointment visible to the caller against now.
func (s *appointmentService) Overview(ctx context.Context) (*model.AppointmentOverview, error) {
	upcoming, _, err := s.List(ctx, ScopeUpcoming, 0, 0)
	if err != nil {
		return nil, err
	}
	past, _, err := s.List(ctx, ScopePast, 0, 0)
	if err != nil {
		return nil, err
	}
	return &model.AppointmentOverview{Upcoming: upcoming, Past: past}, nil
}

func (s *appointmentService) queryFor(ctx context.Context, scope Scope) (repository.Query, error) {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return repository.Query{}, apperrors.Unauthorized("Sign in to view appointments")
	}
	if !principal.Can(auth.CapViewAll) && !principal.Can(auth.CapViewOwnAsClient) && !principal.Can(auth.CapViewOwnAsAgent) {
		return repository.Query{}, apperrors.Forbidden("Your role cannot view appointments")
	}

	q := repository.Query{Field: principal.Role.AppointmentFilter(), UserID: principal.UserID}
	now := s.now().UnixMilli()
	switch scope {
	case ScopeUpcoming:
		q.From = &now
		q.Ascending = true
	case ScopePast:
		q.Before = &now
	}
	return q, nil
}

func (s *appointmentService) find(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmentserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format")
		}
		s.cfg.Log.Error("Failed to retrieve appointment", "id", id, "error", err)
		return nil, apperrors.Unavailable(storeName)
	}
	return appointment, nil
}

func (s *appointmentService) lookupProperty(ctx context.Context, propertyID string) (*model.Property, error) {
	propertyID = sanitizer.TrimAndNormalize(propertyID)
	if propertyID == "" {
		return nil, apperrors.InvalidInput("property_id is required")
	}
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", propertyID)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid property ID format")
		}
		s.cfg.Log.Error("Failed to resolve property", "property_id", propertyID, "error", err)
		return nil, apperrors.Unavailable("Property store")
	}
	return property, nil
}

// acquireDateLock serializes admission for one date across instances. The
// returned func releases the lock and never fails the request.
func (s *appointmentService) acquireDateLock(ctx context.Context, date string) (func(), error) {
	lock := &model.AppointmentLock{
		ID:        repository.LockID(date),
		Owner:     uuid.NewString(),
		ExpiresAt: s.now().UTC().Add(s.cfg.AppointmentLockTTL),
	}

	if err := s.lockRepo.Acquire(ctx, lock); err != nil {
		if errors.Is(err, appointmentserrors.ErrLockHeld) {
			return nil, apperrors.Conflict("Another booking for this date is in progress. Please try again.")
		}
		s.cfg.Log.Error("Failed to acquire appointment lock", "lock_id", lock.ID, "error", err)
		return nil, apperrors.Unavailable(storeName)
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
		defer cancel()
		if err := s.lockRepo.Release(releaseCtx, lock.ID, lock.Owner); err != nil {
			s.cfg.Log.Warn("Failed to release appointment lock", "lock_id", lock.ID, "error", err)
		}
	}, nil
}

// publish is best effort: the write has already committed.
func (s *appointmentService) publish(ctx context.Context, eventType string, appointment *model.Appointment, actorID string) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := s.publisher.PublishAppointment(pubCtx, events.AppointmentEvent{
		Type:        eventType,
		Appointment: *appointment,
		ActorID:     actorID,
		OccurredAt:  s.now().UTC(),
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish appointment event",
			"type", eventType,
			"appointment_id", appointment.ID,
			"error", err,
		)
	}
}

func (s *appointmentService) sanitizeRequest(req *model.AppointmentRequest) {
	req.PropertyID = sanitizer.TrimAndNormalize(req.PropertyID)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.Time = sanitizer.NormalizeSlotLabel(req.Time)
}

func (s *appointmentService) today() string {
	return s.now().In(s.cfg.Location()).Format(time.DateOnly)
}

func admissionError(err error) error {
	switch {
	case errors.Is(err, availability.ErrCapacityExhausted):
		return apperrors.CapacityExhausted("No appointments left for this date")
	case errors.Is(err, availability.ErrSlotUnavailable):
		return apperrors.SlotUnavailable("This time slot is no longer available")
	default:
		return apperrors.Internal("Failed to admit appointment", err)
	}
}
