package api

// PrimaryPrompt picks the prompt the upgrade modal displays: the first one
// with high urgency, else the first in list order, else nil so the caller
// falls back to its default copy.
func PrimaryPrompt(prompts []UpgradePrompt) *UpgradePrompt {
	for i := range prompts {
		if prompts[i].Urgency == "high" {
			return &prompts[i]
		}
	}
	if len(prompts) > 0 {
		return &prompts[0]
	}
	return nil
}
