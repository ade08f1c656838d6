package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func joinFragments(fragments [][]byte) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.Write(f)
	}
	return sb.String()
}

func TestPrimaryPlanForDefaultEvents(t *testing.T) {
	for i, ev := range DefaultShape().Events() {
		plan := Plan(ev, PrimarySplit)
		assert.Equal(t, []int{10, 20, 21}, plan.Lengths(), "event %d", i+1)

		fragments := plan.Fragments()
		assert.Equal(t, ev.String(), joinFragments(fragments))
		assert.NotContains(t, string(fragments[0]), "\n")
		assert.NotContains(t, string(fragments[1]), "\n")
		assert.True(t, strings.HasSuffix(string(fragments[2]), Delimiter))
	}
}

func TestPrimaryPlanFragmentText(t *testing.T) {
	plan := Plan(NewDataEvent("Event 1 - padding to make exactly 50 bytes!"), PrimarySplit)
	assert.Equal(t, []string{
		"data: Even",
		"t 1 - padding to mak",
		"e exactly 50 bytes!\n\n",
	}, fragmentStrings(plan))
}

func TestSentinelPlan(t *testing.T) {
	plan := Plan(NewDataEvent("[DONE]"), SentinelSplit)
	assert.Equal(t, []string{"data: [", "DONE]\n\n"}, fragmentStrings(plan))
}

func TestPlanRangesAreContiguous(t *testing.T) {
	ev := NewDataEvent("some payload that is reasonably long")
	plan := Plan(ev, SplitPolicy{Lengths: []int{3, 1, 8, 2}})
	pos := 0
	for _, r := range plan.Ranges {
		assert.Equal(t, pos, r.Start)
		assert.Greater(t, r.Len(), 0)
		pos = r.End
	}
	assert.Equal(t, ev.Len(), pos)
}

func TestPlanClampsShortEvents(t *testing.T) {
	// body is "data: hi" (8 bytes): the 10-byte fragment is cut to 8, the 20-byte one vanishes
	plan := Plan(NewDataEvent("hi"), PrimarySplit)
	assert.Equal(t, []string{"data: hi", "\n\n"}, fragmentStrings(plan))
}

func TestPlanNeverSplitsDelimiter(t *testing.T) {
	ev := NewDataEvent("abc")
	for n := 1; n <= ev.Len()+2; n++ {
		plan := Plan(ev, SplitPolicy{Lengths: []int{n}})
		fragments := fragmentStrings(plan)
		last := fragments[len(fragments)-1]
		assert.True(t, strings.HasSuffix(last, Delimiter), "split at %d", n)
		for _, f := range fragments[:len(fragments)-1] {
			assert.NotContains(t, f, "\n", "split at %d", n)
		}
		assert.Equal(t, ev.String(), strings.Join(fragments, ""))
	}
}

func TestPlanBareDelimiter(t *testing.T) {
	ev, _ := NewEvent([]byte(Delimiter))
	plan := Plan(ev, PrimarySplit)
	assert.Equal(t, []string{Delimiter}, fragmentStrings(plan))
}

func TestPlanSkipsNonPositiveLengths(t *testing.T) {
	plan := Plan(NewDataEvent("[DONE]"), SplitPolicy{Lengths: []int{0, -3, 7}})
	assert.Equal(t, []int{7, 7}, plan.Lengths())
}

func TestSplitPolicyString(t *testing.T) {
	assert.Equal(t, "primary(10/20/rest)", PrimarySplit.String())
}

func fragmentStrings(plan FragmentPlan) []string {
	var ret []string
	for _, f := range plan.Fragments() {
		ret = append(ret, string(f))
	}
	return ret
}
