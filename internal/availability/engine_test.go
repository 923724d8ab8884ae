package availability

import (
	"errors"
	"fmt"
	"realty/pkg/model"
	"slices"
	"testing"
)

const testDate = "2025-03-10"

var allLabels = []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

func appt(agentID, time string) *model.Appointment {
	return &model.Appointment{AgentID: agentID, Date: testDate, Time: time}
}

func TestAvailableSlots_NoAppointments(t *testing.T) {
	e := NewEngine(DefaultPolicy())

	got := e.AvailableSlots(testDate, "A1", nil)
	if !slices.Equal(got, allLabels) {
		t.Errorf("AvailableSlots() = %v, want %v", got, allLabels)
	}
}

func TestAvailableSlots_DailyCap(t *testing.T) {
	e := NewEngine(DefaultPolicy())

	distributions := map[string][]string{
		"spread across agents": {"A1", "A2", "A3", "A4", "A5", "A6", "A7"},
		"two agents":           {"A1", "A1", "A2", "A2", "A3", "A3", "A4"},
		"none for target":      {"B1", "B2", "B3", "B4", "B5", "B6", "B7"},
	}

	for name, agents := range distributions {
		t.Run(name, func(t *testing.T) {
			existing := make([]*model.Appointment, 0, len(agents))
			for i, a := range agents {
				existing = append(existing, appt(a, allLabels[i]))
			}

			for _, target := range []string{"A1", "A9"} {
				got := e.AvailableSlots(testDate, target, existing)
				if got == nil || len(got) != 0 {
					t.Errorf("AvailableSlots(%s) = %#v, want empty non-nil slice", target, got)
				}
			}
		})
	}
}

func TestAvailableSlots_AgentCap(t *testing.T) {
	e := NewEngine(DefaultPolicy())
	existing := []*model.Appointment{
		appt("A1", "09:00"),
		appt("A1", "11:00"),
		appt("A1", "15:00"),
		appt("A2", "10:00"),
		appt("A3", "16:00"),
	}

	if got := e.AvailableSlots(testDate, "A1", existing); len(got) != 0 {
		t.Errorf("agent at cap: AvailableSlots() = %v, want []", got)
	}

	want := []string{"12:00", "13:00", "14:00", "17:00"}
	if got := e.AvailableSlots(testDate, "A2", existing); !slices.Equal(got, []string{"12:00", "13:00", "14:00", "17:00"}) {
		t.Errorf("A2: AvailableSlots() = %v, want %v", got, want)
	}
	if got := e.AvailableSlots(testDate, "A4", existing); !slices.Equal(got, want) {
		t.Errorf("agent with no appointments: AvailableSlots() = %v, want %v", got, want)
	}
}

func TestAvailableSlots_ExcludesTakenTime(t *testing.T) {
	e := NewEngine(DefaultPolicy())
	existing := []*model.Appointment{appt("A2", "13:00")}

	got := e.AvailableSlots(testDate, "A1", existing)
	if slices.Contains(got, "13:00") {
		t.Errorf("13:00 is booked and must be absent, got %v", got)
	}
	for _, label := range allLabels {
		if label != "13:00" && !slices.Contains(got, label) {
			t.Errorf("unbooked label %s missing from %v", label, got)
		}
	}
}

func TestAvailableSlots_Deterministic(t *testing.T) {
	e := NewEngine(DefaultPolicy())
	existing := []*model.Appointment{appt("A2", "15:00"), appt("A1", "10:00"), appt("A3", "12:00")}

	first := e.AvailableSlots(testDate, "A1", existing)
	second := e.AvailableSlots(testDate, "A1", existing)
	if !slices.Equal(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
	if !slices.IsSorted(first) {
		t.Errorf("slots must be ascending, got %v", first)
	}
}

func TestAvailableSlots_ConcreteScenarios(t *testing.T) {
	e := NewEngine(DefaultPolicy())

	seven := make([]*model.Appointment, 0, 7)
	for i := 0; i < 7; i++ {
		seven = append(seven, appt(fmt.Sprintf("A%d", i%4+1), allLabels[i]))
	}

	fiveWithA1Thrice := []*model.Appointment{
		appt("A1", "09:00"),
		appt("A1", "10:00"),
		appt("A1", "11:00"),
		appt("A3", "14:00"),
		appt("A4", "16:00"),
	}

	tests := []struct {
		name     string
		agentID  string
		existing []*model.Appointment
		want     []string
	}{
		{
			name:     "one booking by target agent, one by another",
			agentID:  "A1",
			existing: []*model.Appointment{appt("A1", "09:00"), appt("A2", "10:00")},
			want:     []string{"11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
		},
		{
			name:     "seven appointments across agents",
			agentID:  "A1",
			existing: seven,
			want:     []string{},
		},
		{
			name:     "target agent holds three of five",
			agentID:  "A1",
			existing: fiveWithA1Thrice,
			want:     []string{},
		},
		{
			name:     "other agent on the same day",
			agentID:  "A2",
			existing: fiveWithA1Thrice,
			want:     []string{"12:00", "13:00", "15:00", "17:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.AvailableSlots(testDate, tt.agentID, tt.existing)
			if !slices.Equal(got, tt.want) {
				t.Errorf("AvailableSlots() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailableSlots_EmptyDate(t *testing.T) {
	e := NewEngine(DefaultPolicy())
	if got := e.AvailableSlots("", "A1", nil); len(got) != 0 {
		t.Errorf("empty date should yield no slots, got %v", got)
	}
}

func TestAvailableSlots_CustomPolicy(t *testing.T) {
	e := NewEngine(Policy{DailyCap: 2, AgentCap: 5, FirstHour: 8, LastHour: 10})

	if got := e.AvailableSlots(testDate, "A1", nil); !slices.Equal(got, []string{"08:00", "09:00", "10:00"}) {
		t.Errorf("custom hours: got %v", got)
	}

	existing := []*model.Appointment{appt("A2", "08:00"), appt("A3", "09:00")}
	if got := e.AvailableSlots(testDate, "A1", existing); len(got) != 0 {
		t.Errorf("custom daily cap reached: got %v", got)
	}
}

func TestAdmit(t *testing.T) {
	e := NewEngine(DefaultPolicy())

	full := make([]*model.Appointment, 0, 7)
	for i := 0; i < 7; i++ {
		full = append(full, appt(fmt.Sprintf("A%d", i), allLabels[i]))
	}

	tests := []struct {
		name     string
		time     string
		agentID  string
		existing []*model.Appointment
		wantErr  error
	}{
		{"free slot", "11:00", "A1", []*model.Appointment{appt("A2", "10:00")}, nil},
		{"taken slot", "10:00", "A1", []*model.Appointment{appt("A2", "10:00")}, ErrSlotUnavailable},
		{"outside business hours", "18:00", "A1", nil, ErrSlotUnavailable},
		{"daily cap wins over taken slot", "09:00", "A9", full, ErrCapacityExhausted},
		{"agent cap", "17:00", "A1", []*model.Appointment{appt("A1", "09:00"), appt("A1", "10:00"), appt("A1", "11:00")}, ErrCapacityExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Admit(testDate, tt.time, tt.agentID, tt.existing)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Admit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	e := NewEngine(DefaultPolicy())
	labels := e.Labels()
	if !slices.Equal(labels, allLabels) {
		t.Errorf("Labels() = %v", labels)
	}
	labels[0] = "00:00"
	if !e.IsLabel("09:00") || e.IsLabel("00:00") || e.IsLabel("09:30") {
		t.Error("Labels() must return a copy and IsLabel must match only hourly labels")
	}
}
