package catalog

import "github.com/louisbranch/signbridge/internal/gesture"

// Builtin returns the phrase set seeded into an empty store. Entries are
// copied so callers cannot mutate the backing data.
func Builtin() []gesture.Phrase {
	out := make([]gesture.Phrase, len(builtinPhrases))
	for i, phrase := range builtinPhrases {
		phrase.Steps = gesture.CloneSteps(phrase.Steps)
		out[i] = phrase
	}
	return out
}

var builtinPhrases = []gesture.Phrase{
	{
		Key:         "PHRASE_HELLO",
		DisplayName: "hello",
		Steps: []gesture.Step{
			{Handshape: "flat-hand", Orientation: "palm-out", Location: "near-temple", Motion: "small-outward-wave", HoldMillis: 700},
		},
		Notes: "Flat hand starts near the temple and moves outward in a small wave.",
	},
	{
		Key:         "PHRASE_HOW_ARE_YOU",
		DisplayName: "how are you",
		Steps: []gesture.Step{
			{Handshape: "curved-hands", Orientation: "palm-down", Location: "chest", Motion: "twist-together", HoldMillis: 800},
			{Handshape: "index-point", Orientation: "palm-forward", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 500},
		},
		Notes: "Hands twist together for 'how', then point forward for 'you'.",
	},
	{
		Key:         "PHRASE_DO_YOU_KNOW_ASL",
		DisplayName: "do you know ASL",
		Steps: []gesture.Step{
			{Handshape: "flat-hand", Orientation: "palm-down", Location: "temple", Motion: "tap", HoldMillis: 500},
			{Handshape: "index-point", Orientation: "palm-forward", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 500},
			{Handshape: "a-s-l-sequence", Orientation: "varies", Location: "neutral-space", Motion: "spell", HoldMillis: 1200},
		},
		Notes: "Tap the forehead for 'know', point forward for 'you', then spell A-S-L.",
	},
	{
		Key:         "PHRASE_PLEASE",
		DisplayName: "please",
		Steps: []gesture.Step{
			{Handshape: "flat-hand", Orientation: "palm-in", Location: "chest", Motion: "circle-clockwise", HoldMillis: 800},
		},
		Notes: "Flat hand on the chest makes a clockwise circle.",
	},
	{
		Key:         "PHRASE_THANK_YOU",
		DisplayName: "thank you",
		Steps: []gesture.Step{
			{Handshape: "flat-hand", Orientation: "palm-in", Location: "chin", Motion: "move-forward", HoldMillis: 600},
		},
		Notes: "Flat hand moves from the chin forward, palm up.",
	},
	{
		Key:         "PHRASE_NICE_TO_MEET_YOU",
		DisplayName: "nice to meet you",
		Steps: []gesture.Step{
			{Handshape: "flat-hands", Orientation: "palm-in", Location: "neutral-space", Motion: "slide-right", HoldMillis: 700},
			{Handshape: "index-up", Orientation: "palm-in", Location: "neutral-space", Motion: "hands-meet", HoldMillis: 600},
		},
		Notes: "Left palm stays still, right slides across it, then both index fingers meet upright.",
	},
	{
		Key:         "PHRASE_SORRY",
		DisplayName: "sorry",
		Steps: []gesture.Step{
			{Handshape: "fist", Orientation: "palm-in", Location: "chest", Motion: "circle-clockwise", HoldMillis: 800},
		},
		Notes: "Fist over the chest moves in small clockwise circles.",
	},
	{
		Key:         "PHRASE_I_LOVE_YOU",
		DisplayName: "i love you",
		Steps: []gesture.Step{
			{Handshape: "i-love-you-shape", Orientation: "palm-forward", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 900},
		},
		Notes: "Thumb, index, and pinky extended (I+L+Y).",
	},
}
