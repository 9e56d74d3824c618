package domain

// StatusChangeRequest is the payload for a manual status change
type StatusChangeRequest struct {
	Status string `json:"status" validate:"required"`
}

// QuoteListResponse is the filtered collection plus its header summary
type QuoteListResponse struct {
	Quotes  []Quote `json:"quotes"`
	Summary Summary `json:"summary"`
}

// SendProposalResponse carries the persisted quote after a proposal send.
// DispatchError is set when the status change saved but the email dispatch
// webhook failed; the caller decides how loudly to surface it.
type SendProposalResponse struct {
	Quote         Quote  `json:"quote"`
	DispatchError string `json:"dispatchError,omitempty"`
}

// StatusInfo describes one lifecycle status for the frontend
type StatusInfo struct {
	ID    Status `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusInfos returns the full lifecycle in order with display metadata
func StatusInfos() []StatusInfo {
	statuses := AllStatuses()
	out := make([]StatusInfo, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, StatusInfo{ID: s, Label: s.Label(), Color: s.Color()})
	}
	return out
}

// DashboardMetrics summarizes the active pipeline for the overview widgets
type DashboardMetrics struct {
	ActiveCount      int     `json:"activeCount"`
	ActiveValue      float64 `json:"activeValue"`
	AverageValue     float64 `json:"averageValue"`
	ActiveValueText  string  `json:"activeValueText"`
	AverageValueText string  `json:"averageValueText"`
}
