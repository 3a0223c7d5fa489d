package plan

import "testing"

func TestValidate(t *testing.T) {
	ok := &RunningPlan{Weeks: []WeeklyPlan{weekOf(1, 5), weekOf(2, 7)}}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid plan rejected: %v", err)
	}

	empty := &RunningPlan{}
	if err := empty.Validate(); err == nil {
		t.Error("plan with no weeks should be rejected")
	}

	badNumbers := &RunningPlan{Weeks: []WeeklyPlan{weekOf(1, 5), weekOf(3, 7)}}
	if err := badNumbers.Validate(); err == nil {
		t.Error("non-consecutive week numbers should be rejected")
	}

	startsAtTwo := &RunningPlan{Weeks: []WeeklyPlan{weekOf(2, 5)}}
	if err := startsAtTwo.Validate(); err == nil {
		t.Error("week numbering must start at 1")
	}

	longFirst := &RunningPlan{Weeks: []WeeklyPlan{weekOf(1, 8)}}
	if err := longFirst.Validate(); err == nil {
		t.Error("first week longer than 7 days should be rejected")
	}

	emptyFirst := &RunningPlan{Weeks: []WeeklyPlan{weekOf(1, 0), weekOf(2, 7)}}
	if err := emptyFirst.Validate(); err == nil {
		t.Error("empty first week should be rejected")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusUnset, StatusCompleted, StatusSkipped} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("done").Valid() {
		t.Error("unknown status should be invalid")
	}
}
