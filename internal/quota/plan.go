package quota

import (
	"fmt"
	"strings"
)

// Plan is an account's subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Plans lists every tier in upgrade order.
var Plans = []Plan{PlanFree, PlanPro, PlanEnterprise}

// ParsePlan converts user input into a Plan.
func ParsePlan(s string) (Plan, error) {
	p := Plan(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return p, nil
	}
	return "", fmt.Errorf("unknown plan %q", s)
}

// Limited reports whether the plan has a generation cap.
func (p Plan) Limited() bool {
	return p == PlanFree
}

func (p Plan) String() string {
	return string(p)
}
