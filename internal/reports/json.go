package reports

import (
	"encoding/json"
)

// FormatWeeklyJSON formats a weekly report as JSON.
func FormatWeeklyJSON(report *WeeklyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatMonthlyJSON formats a monthly report as JSON.
func FormatMonthlyJSON(report *MonthlyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
