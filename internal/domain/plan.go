package domain

import (
	"encoding/json"
	"strings"
)

// Plan represents a subscription tier. Plans form a total order:
// a user on a higher plan can access everything a lower plan can.
type Plan int

const (
	PlanFree Plan = iota
	PlanBasic
	PlanStandard
	PlanPremium
	PlanTest // internal QA tier, sits above premium
)

// String returns the canonical plan identifier
func (p Plan) String() string {
	switch p {
	case PlanFree:
		return "free"
	case PlanBasic:
		return "basic"
	case PlanStandard:
		return "standard"
	case PlanPremium:
		return "premium"
	case PlanTest:
		return "test"
	default:
		return "free"
	}
}

// ParsePlan converts a plan identifier to a Plan.
// Unknown identifiers resolve to PlanFree so that bad catalog data
// can only ever under-gate, never lock users out.
func ParsePlan(s string) Plan {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return PlanBasic
	case "standard":
		return PlanStandard
	case "premium":
		return PlanPremium
	case "test":
		return PlanTest
	default:
		return PlanFree
	}
}

// Allows reports whether a user on plan p may access content requiring the given plan
func (p Plan) Allows(required Plan) bool {
	return p >= required
}

// MarshalJSON encodes the plan as its string identifier
func (p Plan) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a plan from its string identifier
func (p *Plan) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = ParsePlan(s)
	return nil
}

// CanAccessLesson reports whether a user on the given plan may play a lesson.
// A lesson with Locked=false is a free preview regardless of the course plan;
// Locked=true means the lesson is gated by the course's required plan.
func CanAccessLesson(userPlan Plan, course *Course, lesson *Lesson) bool {
	if lesson == nil || course == nil {
		return false
	}
	if !lesson.Locked {
		return true
	}
	return userPlan.Allows(course.Plan)
}

// CanAccessTrack reports whether a user on the given plan may play an ambience track
func CanAccessTrack(userPlan Plan, track *AmbienceTrack) bool {
	if track == nil {
		return false
	}
	return userPlan.Allows(track.Plan)
}
