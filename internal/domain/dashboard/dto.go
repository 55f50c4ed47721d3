package dashboard

// DashboardResponse is the combined response for the HR dashboard
type DashboardResponse struct {
	Date       string                  `json:"date"`
	Month      string                  `json:"month"`
	Employees  EmployeeSummaryResponse `json:"employees"`
	Attendance AttendanceStatsResponse `json:"attendance"`
	Payments   PaymentTotalsResponse   `json:"payments"`
}

type EmployeeSummaryResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	New      int64 `json:"new"` // hired within 30 days
}

// AttendanceStatsResponse describes the selected day
type AttendanceStatsResponse struct {
	Present     int64 `json:"present"`
	Late        int64 `json:"late"`
	Absent      int64 `json:"absent"`
	Excused     int64 `json:"excused"`
	OnLeave     int64 `json:"on_leave"`
	NotRecorded int64 `json:"not_recorded"` // active employees with no row that day
}

// PaymentTotalsResponse covers the month of the selected day, up to and including it
type PaymentTotalsResponse struct {
	Salaries     string `json:"salaries"`
	Advances     string `json:"advances"`
	Bonuses      string `json:"bonuses"`
	Deductions   string `json:"deductions"`
	Purchases    string `json:"purchases"`
	PaymentCount int64  `json:"payment_count"`
}
