package domain

// Transition is one allowed edge of the wizard flow.
type Transition struct {
	From Screen `json:"from"`
	To   Screen `json:"to"`

	// Reason is the trigger recorded in TransitionEvent.Reason.
	Reason string `json:"reason"`
}

// Reasons reported by the controller.
const (
	ReasonStart           = "start"
	ReasonPreloadComplete = "preload_complete"
	ReasonSubmit          = "submit"
	ReasonGenerateDone    = "generate_done"
	ReasonGenerateFailed  = "generate_failed"
	ReasonCancel          = "cancel"
	ReasonEdit            = "edit"
)

// Flow lists every transition of the wizard. No edge leads back to Preloading.
var Flow = []Transition{
	{From: ScreenPreloading, To: ScreenCollecting, Reason: ReasonPreloadComplete},
	{From: ScreenCollecting, To: ScreenGenerating, Reason: ReasonSubmit},
	{From: ScreenGenerating, To: ScreenReviewing, Reason: ReasonGenerateDone},
	{From: ScreenGenerating, To: ScreenCollecting, Reason: ReasonGenerateFailed},
	{From: ScreenGenerating, To: ScreenCollecting, Reason: ReasonCancel},
	{From: ScreenReviewing, To: ScreenCollecting, Reason: ReasonEdit},
}

// CanTransition reports whether the flow has an edge from -> to triggered by reason.
func CanTransition(from, to Screen, reason string) bool {
	for _, t := range Flow {
		if t.From == from && t.To == to && t.Reason == reason {
			return true
		}
	}
	return false
}
