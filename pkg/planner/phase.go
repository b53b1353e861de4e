package planner

// Phase tags a waypoint's role within the push maneuver.
type Phase string

// The eight push phases, in execution order.
const (
	PhaseStart       Phase = "start"
	PhaseAboveBottle Phase = "above_bottle"
	PhaseApproach    Phase = "approach"
	PhasePreContact  Phase = "pre_contact"
	PhaseContact     Phase = "contact"
	PhasePushThrough Phase = "push_through"
	PhaseRetract     Phase = "retract"
	PhaseReturnHome  Phase = "return_home"
)

// Phases returns the fixed phase order of a push trajectory.
func Phases() []Phase {
	return []Phase{
		PhaseStart,
		PhaseAboveBottle,
		PhaseApproach,
		PhasePreContact,
		PhaseContact,
		PhasePushThrough,
		PhaseRetract,
		PhaseReturnHome,
	}
}

// NumPhases is the waypoint count of every push trajectory.
const NumPhases = 8
