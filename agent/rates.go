package agent

import (
	"context"
	"fmt"
	"time"
)

const ratesSystem = `You are a savings assistant for a retail customer in
Malaysia. Use Google Search to find the current promotional fixed deposit
rates offered by Malaysian banks. Reply in markdown: one table with columns
Bank, Tenure, Rate (% p.a.), Conditions, then a one-paragraph note on anything
time-limited. Only include offers you found a page for.`

// DepositRates asks for the promotional fixed-deposit rates of the current
// month. The answer is free-form markdown, meant to be rendered, not parsed.
func (s *Scout) DepositRates(ctx context.Context) (string, []Source, error) {
	month := time.Now().Format("January 2006")
	question := fmt.Sprintf("Best fixed deposit promotional rates in Malaysia as of %s.", month)
	content, grounding, err := s.ask(ctx, ratesSystem, question)
	if err != nil {
		return "", nil, fmt.Errorf("deposit rate lookup failed: %w", err)
	}
	return content.Parts[0].Text, sources(grounding), nil
}
