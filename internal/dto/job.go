package dto

// ActionRequest is the minimal body for staff actions that only need
// attribution.
type ActionRequest struct {
	StaffName string `json:"staff_name" validate:"required"`
}

// ApproveRequest carries the slicer output entered during approval.
type ApproveRequest struct {
	StaffName string  `json:"staff_name" validate:"required"`
	WeightG   float64 `json:"weight_g" validate:"required,gt=0"`
	TimeHours float64 `json:"time_hours" validate:"required,gt=0"`
	// AuthoritativeFilename optionally promotes a sliced file produced
	// during review to be the file that gets printed.
	AuthoritativeFilename string `json:"authoritative_filename"`
}

// RejectRequest carries the staff-selected rejection reasons.
type RejectRequest struct {
	StaffName    string   `json:"staff_name" validate:"required"`
	Reasons      []string `json:"reasons"`
	CustomReason string   `json:"custom_reason"`
}

// ReviewRequest toggles the staff-viewed marker on a job.
type ReviewRequest struct {
	StaffName string `json:"staff_name" validate:"required"`
	Reviewed  bool   `json:"reviewed"`
}

// PaymentRequest records payment and pickup for a completed job.
type PaymentRequest struct {
	StaffName  string  `json:"staff_name" validate:"required"`
	Grams      float64 `json:"grams" validate:"required,gt=0"`
	TxnNo      string  `json:"txn_no" validate:"required"`
	PickedUpBy string  `json:"picked_up_by" validate:"required"`
}

// NotesRequest replaces the staff notes on a job.
type NotesRequest struct {
	StaffName string `json:"staff_name" validate:"required"`
	Notes     string `json:"notes"`
}

// CandidateFilesResponse lists sliced files eligible to become the
// authoritative file during approval.
type CandidateFilesResponse struct {
	Files       []string `json:"files"`
	Recommended string   `json:"recommended,omitempty"`
}
