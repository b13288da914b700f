package ratelimit

// MatchRule returns the rule for action, or nil when the action is not
// limited.
func MatchRule(action string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].Action == action {
			return &rules[i]
		}
	}
	return nil
}
