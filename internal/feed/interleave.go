package feed

import "math"

// tally tracks how many items each pool has contributed so far. Threading it
// through the merge keeps the decision rule free of ambient state.
type tally struct {
	followed int
	global   int
}

func (t tally) total() int { return t.followed + t.global }

// wantsFollowed reports whether the next slot should come from the followed
// pool: it must be under its per-page allotment and the running followed
// fraction must still be under the target share. An empty page is eligible.
func (t tally) wantsFollowed(allotment int) bool {
	if t.followed >= allotment {
		return false
	}
	if t.total() == 0 {
		return true
	}
	return float64(t.followed)/float64(t.total()) < followedShare
}

// interleave merges two (created_at desc, id desc) ordered pools into a single
// page of at most limit items, approximating the 70/30 followed/global split.
// When both pools are eligible the followed pool wins. The output is
// ratio-interleaved rather than globally timestamp-sorted; that ordering is
// part of the response contract.
func interleave(followed, global []Item, limit int) ([]Item, tally) {
	allotment := int(math.Ceil(followedShare * float64(limit)))

	out := make([]Item, 0, limit)
	var t tally
	fi, gi := 0, 0

	for len(out) < limit {
		takeFollowed := fi < len(followed) &&
			(gi >= len(global) || t.wantsFollowed(allotment))

		switch {
		case takeFollowed:
			out = append(out, followed[fi])
			fi++
			t.followed++
		case gi < len(global):
			out = append(out, global[gi])
			gi++
			t.global++
		default:
			// Both pools exhausted; the page stays short.
			return out, t
		}
	}
	return out, t
}

// candidateFetchLimit sizes one pool fetch: twice the pool's share of the page
// to give the merge slack, but never less than a full page so a lone pool can
// still fill it.
func candidateFetchLimit(share float64, limit int) int64 {
	n := 2 * int(math.Ceil(share*float64(limit)))
	if n < limit {
		n = limit
	}
	return int64(n)
}
