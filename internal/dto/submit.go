package dto

// SubmitRequest is the multipart form accompanying a model upload.
// Field-level validation happens in the submission service so that all
// problems can be reported back to the student at once.
type SubmitRequest struct {
	FirstName   string `form:"first_name"`
	LastName    string `form:"last_name"`
	Email       string `form:"email"`
	Discipline  string `form:"discipline"`
	ClassNumber string `form:"class_number"`

	Method  string `form:"method"`
	Color   string `form:"color"`
	Printer string `form:"printer"`

	AcknowledgedMinimumCharge bool `form:"acknowledged_minimum_charge"`
	ConfirmedScaled           bool `form:"confirmed_scaled"`
}

// SubmitResponse acknowledges a stored submission.
type SubmitResponse struct {
	ID          string `json:"id"`
	ShortID     string `json:"short_id"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
}
