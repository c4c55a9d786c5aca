package models

// TimeSlot represents one teaching period on a given day. Period is the
// ordering proxy for how late in the day the slot falls; the start/end time
// strings are display-only and never parsed.
type TimeSlot struct {
	ID        string `json:"id" validate:"required"`
	Day       string `json:"day" validate:"required"`
	Period    int    `json:"period" validate:"required,min=1"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
