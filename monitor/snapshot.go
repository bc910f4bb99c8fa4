package monitor

// Snapshot is a structured diagnostic view of a DualMonitor's current
// estimate. It carries JSON field tags for callers that serialize it;
// neither package live nor monitorlog renders it, and it is never
// rendered as text inside this package, per spec.md §9's "do not embed
// display logic in the federation."
type Snapshot struct {
	ID      string       `json:"id"`
	Verdict string       `json:"verdict"`
	Failed  bool         `json:"failed"`
	Phi     SideSnapshot `json:"phi"`
	NotPhi  SideSnapshot `json:"not_phi"`
}

// SideSnapshot is one SingleMonitor's diagnostic view.
type SideSnapshot struct {
	Status       string             `json:"status"`
	EstimateSize int                `json:"estimate_size"`
	Locations    []LocationSnapshot `json:"locations"`
}

// LocationSnapshot describes a single symbolic state in an estimate
// list: which location it occupies, how many DBMs its federation holds,
// and the automaton's clock dimension.
type LocationSnapshot struct {
	Location  int `json:"location"`
	ZoneCount int `json:"zone_count"`
	Dimension int `json:"dimension"`
}
