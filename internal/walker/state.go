package walker

import "time"

// missOutcome describes what a not-found response did to the cursor.
type missOutcome int

const (
	// missRetry means the cursor skipped backward within the same day.
	missRetry missOutcome = iota
	// missDayExhausted means the consecutive-miss budget ran out and the
	// rest of the day was abandoned.
	missDayExhausted
	// missHourUnderflow means the backward skip ran past hour 0 and the
	// rest of the day was abandoned.
	missHourUnderflow
)

// walkState is the mutable cursor and retry state of one walk. It is
// owned exclusively by the walker loop; day only ever decreases and
// dailyRetries only ever increases.
type walkState struct {
	day           time.Time
	hour          int
	hourlyRetries int
	dailyRetries  int
}

// newWalkState positions the cursor at the last hour of the end date.
func newWalkState(end time.Time) walkState {
	return walkState{day: end, hour: 23}
}

// fetched advances the cursor after a successful hour and clears the
// consecutive-miss count.
func (s *walkState) fetched() {
	s.hourlyRetries = 0
	s.hour--
}

// missed applies a not-found response. With the miss budget exhausted
// the day is abandoned and the miss count cleared for the next day.
// Otherwise the cursor skips back skip hours; if that runs past hour 0
// the day is abandoned as well, but the miss count carries over into the
// next day (long-standing behavior, kept for parity with earlier
// tooling; see DESIGN.md).
func (s *walkState) missed(maxHourly, skip int) missOutcome {
	s.hourlyRetries++

	if s.hourlyRetries >= maxHourly {
		s.day = s.day.AddDate(0, 0, -1)
		s.hour = 0
		s.hourlyRetries = 0
		s.dailyRetries++
		return missDayExhausted
	}

	s.hour -= skip
	if s.hour < 0 {
		s.day = s.day.AddDate(0, 0, -1)
		s.hour = 0
		s.dailyRetries++
		return missHourUnderflow
	}
	return missRetry
}

// dayDone reports whether the day was walked to the end, i.e. the hour
// cursor fell below 0 with no miss streak pending.
func (s *walkState) dayDone() bool {
	return s.hour < 0 && s.hourlyRetries == 0
}

// nextDay moves the cursor to the last hour of the previous day after a
// fully walked day.
func (s *walkState) nextDay() {
	s.day = s.day.AddDate(0, 0, -1)
	s.hour = 23
}
