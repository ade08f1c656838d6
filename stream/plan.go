package stream

import (
	"fmt"
	"strings"
)

// SplitPolicy describes how an event is cut into fragments. Lengths gives the size of each
// leading fragment; whatever is left over always becomes the final fragment.
type SplitPolicy struct {
	Name    string
	Lengths []int
}

var (
	// PrimarySplit cuts an event into 10 bytes, 20 bytes and the rest.
	PrimarySplit = SplitPolicy{Name: "primary", Lengths: []int{10, 20}}

	// SentinelSplit separates "data: [" from the remainder of the sentinel frame.
	SentinelSplit = SplitPolicy{Name: "sentinel", Lengths: []int{7}}
)

func (p SplitPolicy) String() string {
	parts := make([]string, 0, len(p.Lengths)+1)
	for _, n := range p.Lengths {
		parts = append(parts, fmt.Sprint(n))
	}
	parts = append(parts, "rest")
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, "/"))
}

func (p SplitPolicy) clone() SplitPolicy {
	return SplitPolicy{Name: p.Name, Lengths: append([]int(nil), p.Lengths...)}
}

// Range is a half-open byte range [Start, End) within an event.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// FragmentPlan is the ordered list of byte ranges an event will be written as.
type FragmentPlan struct {
	Event  Event
	Ranges []Range
}

// Plan splits ev according to policy.
//
// Leading fragments never reach into the Delimiter: they are clamped to the event body, and
// any leading length that would produce an empty fragment is dropped. The final range always
// holds the complete Delimiter.
func Plan(ev Event, policy SplitPolicy) FragmentPlan {
	plan := FragmentPlan{Event: ev}
	limit := ev.BodyLen()
	pos := 0
	for _, n := range policy.Lengths {
		if n <= 0 {
			continue
		}
		end := pos + n
		if end > limit {
			end = limit
		}
		if end <= pos {
			break
		}
		plan.Ranges = append(plan.Ranges, Range{Start: pos, End: end})
		pos = end
	}
	if pos < ev.Len() {
		plan.Ranges = append(plan.Ranges, Range{Start: pos, End: ev.Len()})
	}
	return plan
}

// Fragments returns a copy of the bytes of each range, in order.
func (p FragmentPlan) Fragments() [][]byte {
	ret := make([][]byte, 0, len(p.Ranges))
	for _, r := range p.Ranges {
		ret = append(ret, append([]byte(nil), p.Event.slice(r)...))
	}
	return ret
}

// Lengths returns the size of each range, in order.
func (p FragmentPlan) Lengths() []int {
	ret := make([]int, 0, len(p.Ranges))
	for _, r := range p.Ranges {
		ret = append(ret, r.Len())
	}
	return ret
}
