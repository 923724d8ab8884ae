// Package availability derives bookable appointment slots for a date from the
// appointments already recorded for it. It performs no I/O and holds no state
// beyond its Policy.
package availability

import (
	"errors"
	"fmt"
	"realty/pkg/model"
	"slices"
)

var (
	ErrCapacityExhausted = errors.New("appointment capacity exhausted for date")
	ErrSlotUnavailable   = errors.New("requested slot is not available")
)

type Policy struct {
	// DailyCap is the maximum number of appointments on one date across all agents.
	DailyCap int
	// AgentCap is the maximum number of appointments one agent takes on one date.
	AgentCap  int
	FirstHour int
	LastHour  int
}

func DefaultPolicy() Policy {
	return Policy{
		DailyCap:  7,
		AgentCap:  3,
		FirstHour: 9,
		LastHour:  17,
	}
}

type Engine struct {
	policy Policy
	labels []string
}

func NewEngine(policy Policy) *Engine {
	labels := make([]string, 0, max(0, policy.LastHour-policy.FirstHour+1))
	for h := policy.FirstHour; h <= policy.LastHour; h++ {
		labels = append(labels, fmt.Sprintf("%02d:00", h))
	}
	return &Engine{policy: policy, labels: labels}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Labels returns every hourly label of the business day in ascending order.
func (e *Engine) Labels() []string {
	return slices.Clone(e.labels)
}

func (e *Engine) IsLabel(s string) bool {
	return slices.Contains(e.labels, s)
}

// Exhausted reports whether the daily cap or agentID's cap is already reached.
func (e *Engine) Exhausted(agentID string, existing []*model.Appointment) bool {
	if len(existing) >= e.policy.DailyCap {
		return true
	}
	agentCount := 0
	for _, a := range existing {
		if a.AgentID == agentID {
			agentCount++
		}
	}
	return agentCount >= e.policy.AgentCap
}

// AvailableSlots lists the unbooked labels for date, or nothing when either
// cap is reached. existing is trusted to hold exactly the appointments of date.
func (e *Engine) AvailableSlots(date, agentID string, existing []*model.Appointment) []string {
	if date == "" || e.Exhausted(agentID, existing) {
		return []string{}
	}

	taken := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		taken[a.Time] = struct{}{}
	}

	slots := make([]string, 0, len(e.labels))
	for _, label := range e.labels {
		if _, ok := taken[label]; !ok {
			slots = append(slots, label)
		}
	}
	return slots
}

// Admit decides whether an appointment at date/time with agentID may be
// recorded on top of existing. Capacity is checked before the slot itself.
func (e *Engine) Admit(date, time, agentID string, existing []*model.Appointment) error {
	if e.Exhausted(agentID, existing) {
		return ErrCapacityExhausted
	}
	if !slices.Contains(e.AvailableSlots(date, agentID, existing), time) {
		return ErrSlotUnavailable
	}
	return nil
}
