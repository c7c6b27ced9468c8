package goals

// MilestoneThresholds is the fixed, ordered set of notified progress marks.
var MilestoneThresholds = []int{25, 50, 75, 90, 100}

// DetectMilestones returns, ascending, every threshold that currentProgress
// has reached and that is not in alreadyReached. A single big jump yields all
// intervening thresholds at once. Feeding the result back into alreadyReached
// makes repeated calls return nothing, which keeps recomputation passes
// idempotent.
func DetectMilestones(currentProgress float64, alreadyReached []int) []int {
	reached := make(map[int]bool, len(alreadyReached))
	for _, m := range alreadyReached {
		reached[m] = true
	}

	var crossed []int
	for _, threshold := range MilestoneThresholds {
		if float64(threshold) <= currentProgress && !reached[threshold] {
			crossed = append(crossed, threshold)
		}
	}
	return crossed
}

// NextMilestone returns the smallest unreached threshold above
// currentProgress, or false when every threshold is behind.
func NextMilestone(currentProgress float64, alreadyReached []int) (int, bool) {
	reached := make(map[int]bool, len(alreadyReached))
	for _, m := range alreadyReached {
		reached[m] = true
	}

	for _, threshold := range MilestoneThresholds {
		if float64(threshold) > currentProgress && !reached[threshold] {
			return threshold, true
		}
	}
	return 0, false
}
