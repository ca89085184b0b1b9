package quiz

import "math/rand/v2"

// ShuffleOptions returns a copy of q with its options in a random order and
// CorrectIndex pointing at the answer's new position. Pure: the input is not
// modified, and all randomness comes from rng.
func ShuffleOptions(q Question, rng *rand.Rand) Question {
	perm := rng.Perm(len(q.Options))

	out := q
	out.Options = make([]string, len(q.Options))
	for dst, src := range perm {
		out.Options[dst] = q.Options[src]
		if src == q.CorrectIndex {
			out.CorrectIndex = dst
		}
	}
	return out
}

// ShuffleOrder returns a new slice with the questions in a random order.
// The questions themselves are not modified.
func ShuffleOrder(qs []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(qs))
	for dst, src := range rng.Perm(len(qs)) {
		out[dst] = qs[src]
	}
	return out
}
