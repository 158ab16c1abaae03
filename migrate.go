package wealthtrack

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// This file upgrades legacy book files. The predecessor web app exported its
// whole state as one schema-less JSON object; upgradeLegacyBook rewrites that
// object into the current layout so DecodeBook can read it. The upgrade is a
// pure byte transformation: it assigns no new ids except the synthetic
// purchase backfill and invents no amounts.

func upgradeLegacyBook(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("legacy book file is not a JSON object: %w", err)
	}

	out := map[string]any{
		"schema":         bookSchema,
		"investments":    upgradeSlice(doc["investments"], upgradeLegacyHolding),
		"sales":          upgradeSlice(doc["sales"], upgradeLegacySale),
		"dividends":      upgradeSlice(doc["dividends"], upgradeLegacyDividend),
		"fundSnapshots":  upgradeSlice(doc["fundSnapshots"], upgradeLegacySnapshot),
		"fixedDeposits":  upgradeSlice(doc["fixedDeposits"], upgradeLegacyDeposit),
		"fdMaturityLogs": upgradeSlice(doc["fdMaturityLogs"], upgradeLegacyMaturity),
	}
	// sections this tool stores but does not compute on pass through untouched
	for _, key := range []string{"transactions", "parentLogs", "taxItems", "salaryLogs"} {
		if v, ok := doc[key]; ok {
			out[key] = v
		}
	}
	return json.Marshal(out)
}

// upgradeSlice applies fn to every object of a legacy array. A missing or
// malformed section upgrades to an empty one.
func upgradeSlice(v any, fn func(map[string]any) map[string]any) []any {
	items, _ := v.([]any)
	out := make([]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, fn(m))
		}
	}
	return out
}

func upgradeLegacyHolding(src map[string]any) map[string]any {
	units := pick(src, "unitsHeld", "units")
	avgCost := pick(src, "purchasePrice", "averageCost")
	lastPurchase := pick(src, "purchaseDate", "lastPurchase")

	out := map[string]any{
		"id":           src["id"],
		"kind":         pick(src, "type", "kind"),
		"symbol":       src["symbol"],
		"name":         src["name"],
		"agent":        src["agent"],
		"currency":     DefaultCurrency,
		"units":        units,
		"averageCost":  avgCost,
		"lastPurchase": lastPurchase,
	}
	if v, ok := src["currentPrice"]; ok {
		out["currentPrice"] = v
	}
	if v, ok := src["lastUpdated"]; ok {
		out["lastPriceUpdate"] = v
	}
	if v, ok := src["notes"]; ok {
		out["notes"] = v
	}

	history, _ := src["purchaseHistory"].([]any)
	purchases := make([]any, 0, len(history))
	for _, it := range history {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		purchases = append(purchases, map[string]any{
			"id":        m["id"],
			"date":      m["date"],
			"units":     m["units"],
			"unitPrice": pick(m, "price", "unitPrice"),
			"cost":      m["cost"],
			"agent":     m["agent"],
		})
	}
	if len(purchases) == 0 {
		// holdings recorded before purchase histories existed get one
		// synthetic event carrying their whole position
		purchases = append(purchases, map[string]any{
			"id":        "legacy-" + asString(src["id"]),
			"date":      lastPurchase,
			"units":     units,
			"unitPrice": avgCost,
			"cost":      asDecimal(units).Mul(asDecimal(avgCost)),
			"agent":     src["agent"],
		})
	}
	out["purchases"] = purchases
	return out
}

func upgradeLegacySale(src map[string]any) map[string]any {
	return map[string]any{
		"id":        src["id"],
		"holdingId": pick(src, "investmentId", "holdingId"),
		"date":      src["date"],
		"units":     pick(src, "unitsSold", "units"),
		"unitPrice": pick(src, "pricePerUnit", "unitPrice"),
		"proceeds":  pick(src, "totalAmount", "proceeds"),
		"currency":  DefaultCurrency,
		"name":      pick(src, "itemName", "name"),
		"agent":     src["agent"],
	}
}

func upgradeLegacyDividend(src map[string]any) map[string]any {
	return map[string]any{
		"id":        src["id"],
		"holdingId": pick(src, "investmentId", "holdingId"),
		"date":      src["date"],
		"amount":    src["amount"],
		"currency":  DefaultCurrency,
		"unitsHeld": pick(src, "unitsHeldSnapshot", "unitsHeld"),
		"notes":     src["notes"],
	}
}

func upgradeLegacySnapshot(src map[string]any) map[string]any {
	return map[string]any{
		"id":         src["id"],
		"date":       src["date"],
		"totalCost":  src["totalCost"],
		"totalValue": src["totalValue"],
		"currency":   DefaultCurrency,
	}
}

func upgradeLegacyDeposit(src map[string]any) map[string]any {
	return map[string]any{
		"id":        src["id"],
		"bank":      src["bank"],
		"slip":      pick(src, "slipNumber", "slip"),
		"start":     pick(src, "startDate", "start"),
		"maturity":  pick(src, "endDate", "maturity"),
		"ratePct":   pick(src, "rate", "ratePct"),
		"principal": src["principal"],
		"currency":  DefaultCurrency,
		"remarks":   src["remarks"],
	}
}

func upgradeLegacyMaturity(src map[string]any) map[string]any {
	return map[string]any{
		"id":        src["id"],
		"date":      src["date"],
		"bank":      src["bank"],
		"slip":      pick(src, "slipNumber", "slip"),
		"principal": src["principal"],
		"interest":  pick(src, "interestEarned", "interest"),
		"ratePct":   pick(src, "rateSnapshot", "ratePct"),
		"currency":  DefaultCurrency,
		"year":      src["year"],
	}
}

// pick returns the first key present in the map.
func pick(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asDecimal converts a decoded legacy number, tolerating strings. Malformed
// values become zero; the migration never fails over one bad amount.
func asDecimal(v any) decimal.Decimal {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = n
	default:
		return decimal.Decimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}
	}
	return d
}
