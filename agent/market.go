package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Quote is a market price found by the scout, with the pages that ground it.
type Quote struct {
	Price    decimal.Decimal
	Currency string // ISO 4217 code, upper case
	Sources  []Source
}

const quoteSystem = `You are a market data assistant. Use Google Search to find
the latest traded or published unit price of the instrument the user names.
Reply with a single JSON object and nothing else:
{"price": <number>, "currency": "<ISO 4217 code>"}.
If you cannot find a price, reply {"error": "<one line reason>"}.`

// Quote searches for the latest unit price of an instrument.
func (s *Scout) Quote(ctx context.Context, symbol, name string) (Quote, error) {
	question := fmt.Sprintf("Latest unit price of %s (%s).", name, symbol)
	content, grounding, err := s.ask(ctx, quoteSystem, question)
	if err != nil {
		return Quote{}, fmt.Errorf("quote lookup for %s failed: %w", symbol, err)
	}
	q, err := parseQuote(content.Parts[0].Text)
	if err != nil {
		return Quote{}, fmt.Errorf("quote lookup for %s failed: %w", symbol, err)
	}
	q.Sources = sources(grounding)
	return q, nil
}

// parseQuote extracts price and currency from the model's reply. The reply is
// requested as bare JSON but frequently arrives wrapped in a markdown fence,
// which is stripped first.
func parseQuote(reply string) (Quote, error) {
	dec := json.NewDecoder(strings.NewReader(stripFence(reply)))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return Quote{}, fmt.Errorf("reply is not JSON: %w", err)
	}

	if jval, err := jsonpath.Get("$.error", jobj); err == nil {
		return Quote{}, fmt.Errorf("model found no price: %v", first(jval))
	}

	jval, err := jsonpath.Get("$.price", jobj)
	if err != nil {
		return Quote{}, fmt.Errorf("reply has no price: %w", err)
	}
	price, err := asDecimal(first(jval))
	if err != nil {
		return Quote{}, fmt.Errorf("reply has an invalid price: %w", err)
	}
	if price.IsNegative() {
		return Quote{}, fmt.Errorf("reply has a negative price %s", price)
	}

	q := Quote{Price: price}
	if jval, err := jsonpath.Get("$.currency", jobj); err == nil {
		if cur, ok := first(jval).(string); ok {
			q.Currency = strings.ToUpper(strings.TrimSpace(cur))
		}
	}
	return q, nil
}

// first unwraps jsonpath results that come back as a one-element list.
func first(jval any) any {
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		return jlist[0]
	}
	return jval
}

func asDecimal(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number: %v (%T)", jval, jval)
	}
}

func stripFence(reply string) string {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "```") {
		return reply
	}
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
	return strings.TrimSpace(reply)
}
