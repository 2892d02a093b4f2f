package schedule

import "gitlab.com/touchbase/touchbase-service/internal/model"

// LastTouchpoint returns the touchpoint with the most recent contact date. The
// second return value is false if the slice is empty; a contact without
// touchpoints is a normal situation, not an error.
//
// Two touchpoints on the same date are resolved in favor of the larger id, so
// the latest inserted record wins no matter how the store ordered the slice.
// The input is never mutated.
func LastTouchpoint(touchpoints []model.Touchpoint) (model.Touchpoint, bool) {
	if len(touchpoints) == 0 {
		return model.Touchpoint{}, false
	}
	last := touchpoints[0]
	for _, tp := range touchpoints[1:] {
		if laterThan(tp, last) {
			last = tp
		}
	}
	return last, true
}

// laterThan compares two touchpoints by calendar date, then by id.
func laterThan(a, b model.Touchpoint) bool {
	da, db := Midnight(a.ContactDate), Midnight(b.ContactDate)
	if da.Equal(db) {
		return a.Id > b.Id
	}
	return da.After(db)
}

// GroupByContact splits a flat touchpoint slice into per-contact slices. The
// service loads touchpoints for a whole listing in one query and groups them
// here before aggregation.
func GroupByContact(touchpoints []model.Touchpoint) map[int64][]model.Touchpoint {
	grouped := make(map[int64][]model.Touchpoint)
	for _, tp := range touchpoints {
		grouped[tp.ContactId] = append(grouped[tp.ContactId], tp)
	}
	return grouped
}
