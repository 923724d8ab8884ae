package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"realty/internal/appointments/repository"
	appointments "realty/internal/appointments/service"
	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/model"
)

const (
	recentLimit = 5
	agentWindow = 7
)

type AppointmentCounter interface {
	Count(ctx context.Context, q repository.Query) (int64, error)
}

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type PropertyStats interface {
	CountSearch(ctx context.Context, filter model.PropertyFilter) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type DashboardService interface {
	// Dashboard returns a *model.ClientDashboard, *model.AgentDashboard or
	// *model.AdminDashboard depending on the caller's role.
	Dashboard(ctx context.Context) (any, error)
	Client(ctx context.Context) (*model.ClientDashboard, error)
	Agent(ctx context.Context) (*model.AgentDashboard, error)
	Admin(ctx context.Context) (*model.AdminDashboard, error)
}

type dashboardService struct {
	appointments appointments.AppointmentService
	counter      AppointmentCounter
	users        Counter
	properties   PropertyStats
	promotions   Counter
	cfg          *config.Config
	now          func() time.Time
}

func NewDashboardService(
	appointmentService appointments.AppointmentService,
	counter AppointmentCounter,
	users Counter,
	properties PropertyStats,
	promotions Counter,
	cfg *config.Config,
) DashboardService {
	return &dashboardService{
		appointments: appointmentService,
		counter:      counter,
		users:        users,
		properties:   properties,
		promotions:   promotions,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *dashboardService) Dashboard(ctx context.Context) (any, error) {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, apperrors.Unauthorized("Sign in to view your dashboard")
	}

	switch principal.Role {
	case auth.RoleAdmin:
		return s.Admin(ctx)
	case auth.RoleAgent:
		return s.Agent(ctx)
	case auth.RoleClient:
		return s.Client(ctx)
	default:
		return nil, apperrors.Forbidden("Your role has no dashboard")
	}
}

func (s *dashboardService) Client(ctx context.Context) (*model.ClientDashboard, error) {
	if err := requireCapability(ctx, auth.CapViewOwnAsClient); err != nil {
		return nil, err
	}

	_, total, err := s.appointments.List(ctx, appointments.ScopeAll, 1, 0)
	if err != nil {
		return nil, err
	}
	upcoming, _, err := s.appointments.List(ctx, appointments.ScopeUpcoming, recentLimit, 0)
	if err != nil {
		return nil, err
	}
	past, _, err := s.appointments.List(ctx, appointments.ScopePast, recentLimit, 0)
	if err != nil {
		return nil, err
	}

	return &model.ClientDashboard{Total: total, Upcoming: upcoming, Past: past}, nil
}

// Agent counts the agent's appointments per calendar day for the next seven
// days, starting today in the configured time zone.
func (s *dashboardService) Agent(ctx context.Context) (*model.AgentDashboard, error) {
	if err := requireCapability(ctx, auth.CapViewOwnAsAgent); err != nil {
		return nil, err
	}
	principal := auth.PrincipalFromContext(ctx)

	_, total, err := s.appointments.List(ctx, appointments.ScopeAll, 1, 0)
	if err != nil {
		return nil, err
	}
	upcoming, upcomingCount, err := s.appointments.List(ctx, appointments.ScopeUpcoming, recentLimit, 0)
	if err != nil {
		return nil, err
	}

	loc := s.cfg.Location()
	now := s.now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	days := make([]model.DayCount, agentWindow)
	for i := range days {
		dayStart := start.AddDate(0, 0, i)
		from := dayStart.UnixMilli()
		before := dayStart.AddDate(0, 0, 1).UnixMilli()

		count, err := s.counter.Count(ctx, repository.Query{
			Field:  auth.FilterByAgent,
			UserID: principal.UserID,
			From:   &from,
			Before: &before,
		})
		if err != nil {
			s.cfg.Log.Error("Failed to count agent appointments", "agent_id", principal.UserID, "error", err)
			return nil, apperrors.Internal("Failed to build dashboard", err)
		}
		days[i] = model.DayCount{Date: dayStart.Format(time.DateOnly), Count: count}
	}

	return &model.AgentDashboard{
		Total:         total,
		UpcomingCount: upcomingCount,
		Upcoming:      upcoming,
		NextSevenDays: days,
	}, nil
}

func (s *dashboardService) Admin(ctx context.Context) (*model.AdminDashboard, error) {
	if err := requireCapability(ctx, auth.CapViewAll); err != nil {
		return nil, err
	}

	dashboard := &model.AdminDashboard{}
	var mu sync.Mutex
	var errs []error
	var wg sync.WaitGroup

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	run(func() (err error) {
		dashboard.Users, err = s.users.Count(ctx)
		return err
	})
	run(func() (err error) {
		dashboard.Properties, err = s.properties.CountSearch(ctx, model.PropertyFilter{})
		return err
	})
	run(func() (err error) {
		dashboard.Appointments, err = s.counter.Count(ctx, repository.Query{})
		return err
	})
	run(func() (err error) {
		dashboard.Promotions, err = s.promotions.Count(ctx)
		return err
	})
	run(func() (err error) {
		dashboard.PropertyStatus, err = s.properties.CountByStatus(ctx)
		return err
	})
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		s.cfg.Log.Error("Failed to build admin dashboard", "error", err)
		return nil, apperrors.Internal("Failed to build dashboard", err)
	}
	return dashboard, nil
}

func requireCapability(ctx context.Context, c auth.Capability) error {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return apperrors.Unauthorized("Sign in to view your dashboard")
	}
	if !principal.Can(c) {
		return apperrors.Forbidden("This dashboard is not available for your role")
	}
	return nil
}
