package model

type ClientDashboard struct {
	Total    int64          `json:"total"`
	Upcoming []*Appointment `json:"upcoming"`
	Past     []*Appointment `json:"past"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type AgentDashboard struct {
	Total         int64          `json:"total"`
	UpcomingCount int64          `json:"upcoming_count"`
	Upcoming      []*Appointment `json:"upcoming"`
	NextSevenDays []DayCount     `json:"next_seven_days"`
}

type AdminDashboard struct {
	Users          int64            `json:"users"`
	Properties     int64            `json:"properties"`
	Appointments   int64            `json:"appointments"`
	Promotions     int64            `json:"promotions"`
	PropertyStatus map[string]int64 `json:"property_status"`
}
