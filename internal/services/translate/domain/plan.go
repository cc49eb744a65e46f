package domain

import "github.com/louisbranch/signbridge/internal/gesture"

// Action kinds distinguishing whole-phrase gestures from fingerspelled letters.
const (
	KindPhrase = "phrase"
	KindLetter = "letter"
)

// Action is one unit of translated output: a labeled, ordered step sequence.
type Action struct {
	Kind  string         `json:"kind"`
	Label string         `json:"label"`
	Steps []gesture.Step `json:"steps"`
}

// TimedStep places one gesture step on the playback timeline. Offsets are
// milliseconds from the start of the plan.
type TimedStep struct {
	StartOffsetMillis int    `json:"start_offset_ms"`
	EndOffsetMillis   int    `json:"end_offset_ms"`
	Kind              string `json:"kind"`
	Token             string `json:"token"`
}

// PhraseAction builds the output action for a whole-phrase match. Step order
// is preserved exactly; playback depends on the sequence.
func PhraseAction(phrase gesture.Phrase) Action {
	return Action{
		Kind:  KindPhrase,
		Label: phrase.DisplayName,
		Steps: gesture.CloneSteps(phrase.Steps),
	}
}

// LetterAction builds the output action for one fingerspelled letter.
func LetterAction(letter gesture.Letter) Action {
	return Action{
		Kind:  KindLetter,
		Label: letter.Letter,
		Steps: gesture.CloneSteps(letter.Steps),
	}
}

// TimedPlan walks an action list and accumulates hold durations into
// start/end offsets per step, for downstream renderers. The final end offset
// equals the total plan duration.
func TimedPlan(actions []Action) []TimedStep {
	var plan []TimedStep
	offset := 0
	for _, action := range actions {
		for _, step := range action.Steps {
			hold := step.HoldMillis
			if hold < 0 {
				hold = 0
			}
			plan = append(plan, TimedStep{
				StartOffsetMillis: offset,
				EndOffsetMillis:   offset + hold,
				Kind:              action.Kind,
				Token:             action.Label,
			})
			offset += hold
		}
	}
	return plan
}

// PlanDuration returns the total duration of a timed plan in milliseconds.
func PlanDuration(plan []TimedStep) int {
	if len(plan) == 0 {
		return 0
	}
	return plan[len(plan)-1].EndOffsetMillis
}
