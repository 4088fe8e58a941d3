package notifications

import "github.com/gimlet-io/rocketchat-notifier/pkg/model"

type Transition int

const (
	StillSuccessful Transition = iota
	BackToNormal
	Failed
	Unstable
)

func (t Transition) String() string {
	switch t {
	case BackToNormal:
		return "backToNormal"
	case Failed:
		return "failed"
	case Unstable:
		return "unstable"
	default:
		return "stillSuccessful"
	}
}

type Decision struct {
	ShouldNotify bool
	Transition   Transition
}

// Evaluate decides whether a build is worth a message and how the build moved
// relative to the previous one. A nil previous outcome means first build.
func Evaluate(current model.Outcome, previous *model.Outcome, notifyBackToNormalOnly bool) Decision {
	if isBackToNormal(current, previous) {
		return Decision{ShouldNotify: true, Transition: BackToNormal}
	}

	switch current {
	case model.Success:
		return Decision{ShouldNotify: !notifyBackToNormalOnly, Transition: StillSuccessful}
	case model.Failure:
		return Decision{ShouldNotify: true, Transition: Failed}
	case model.Unstable:
		return Decision{ShouldNotify: true, Transition: Unstable}
	default:
		return Decision{ShouldNotify: true, Transition: StillSuccessful}
	}
}

func isBackToNormal(current model.Outcome, previous *model.Outcome) bool {
	if previous == nil {
		return true
	}

	return current == model.Success &&
		(*previous == model.Failure || *previous == model.Unstable)
}
