package attendance

// Counts is a subject's cumulative attendance.
type Counts struct {
	Attended int
	Total    int
}

// Summary aggregates attendance over several subjects.
type Summary struct {
	Attended   int     `json:"attended"`
	Conducted  int     `json:"conducted"`
	Missed     int     `json:"missed"`
	Percentage float64 `json:"percentage"`
	OnTrack    bool    `json:"onTrack"`
}

// Summarize sums the counts and compares the overall ratio with globalTarget.
func Summarize(globalTarget float64, counts ...Counts) Summary {
	var sum Summary
	for _, c := range counts {
		sum.Attended += c.Attended
		sum.Conducted += c.Total
	}
	sum.Missed = sum.Conducted - sum.Attended
	sum.Percentage = Percentage(sum.Attended, sum.Conducted)
	sum.OnTrack = !BelowTarget(sum.Attended, sum.Conducted, globalTarget)
	return sum
}
