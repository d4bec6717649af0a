package models

// DashboardSnapshot aggregates every collection for the initial page load.
type DashboardSnapshot struct {
	Pets      []*Pet           `json:"pets"`
	Drivers   []*Driver        `json:"drivers"`
	Rides     []*Ride          `json:"rides"`
	Incidents []*Incident      `json:"incidents"`
	Tickets   []*SupportTicket `json:"tickets"`
	Messages  []*ChatMessage   `json:"messages"`
}
