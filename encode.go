package wealthtrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// bookSchema is the version written into every book file. Files without a
// schema field are legacy exports from the predecessor web app and are
// upgraded on read, see upgradeLegacyBook.
const bookSchema = 2

func init() {
	// amounts and quantities are numbers in the book file, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeBook writes the book as indented JSON with a stable field order.
func EncodeBook(w io.Writer, b *Book) error {
	ow := &jsonObjectWriter{}
	ow.Append("schema", bookSchema).
		Append("investments", nonNil(b.Ledger.holdings)).
		Append("sales", nonNil(b.Ledger.sales)).
		Append("dividends", nonNil(b.Ledger.dividends)).
		Append("fundSnapshots", nonNil(b.Ledger.snapshots)).
		Append("fixedDeposits", nonNil(b.Deposits)).
		Append("fdMaturityLogs", nonNil(b.Maturities)).
		Raw("transactions", b.Transactions).
		Raw("parentLogs", b.ParentLogs).
		Raw("taxItems", b.TaxItems).
		Raw("salaryLogs", b.SalaryLogs)

	data, err := ow.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", " "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// DecodeBook reads a book file. An empty reader yields an empty book; a file
// without a schema field is upgraded from the legacy layout first.
func DecodeBook(r io.Reader) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewBook(), nil
	}

	var probe struct {
		Schema int `json:"schema"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("book file is not valid JSON: %w", err)
	}
	if probe.Schema == 0 {
		if data, err = upgradeLegacyBook(data); err != nil {
			return nil, err
		}
	} else if probe.Schema > bookSchema {
		return nil, fmt.Errorf("book file has schema %d, this build reads up to %d", probe.Schema, bookSchema)
	}

	var raw struct {
		Investments    []*Holding          `json:"investments"`
		Sales          []SaleEvent         `json:"sales"`
		Dividends      []DividendEvent     `json:"dividends"`
		FundSnapshots  []ValuationSnapshot `json:"fundSnapshots"`
		FixedDeposits  []FixedDeposit      `json:"fixedDeposits"`
		FDMaturityLogs []MaturityLog       `json:"fdMaturityLogs"`
		Transactions   json.RawMessage     `json:"transactions"`
		ParentLogs     json.RawMessage     `json:"parentLogs"`
		TaxItems       json.RawMessage     `json:"taxItems"`
		SalaryLogs     json.RawMessage     `json:"salaryLogs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot decode book file: %w", err)
	}

	return &Book{
		Ledger: &Ledger{
			holdings:  raw.Investments,
			sales:     raw.Sales,
			dividends: raw.Dividends,
			snapshots: raw.FundSnapshots,
		},
		Deposits:     raw.FixedDeposits,
		Maturities:   raw.FDMaturityLogs,
		Transactions: raw.Transactions,
		ParentLogs:   raw.ParentLogs,
		TaxItems:     raw.TaxItems,
		SalaryLogs:   raw.SalaryLogs,
	}, nil
}

// nonNil keeps empty sections as [] rather than null in the book file.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (h *Holding) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", h.ID).
		Append("kind", h.Kind).
		Append("symbol", h.Symbol).
		Append("name", h.Name).
		Optional("agent", h.Agent).
		Append("currency", h.Currency).
		Append("units", h.Units).
		Append("averageCost", h.AvgCost.Decimal()).
		Append("lastPurchase", h.LastPurchase)
	if !h.CurrentPrice.IsZero() {
		w.Append("currentPrice", h.CurrentPrice.Decimal())
	}
	if !h.LastPriceUpdate.IsZero() {
		w.Append("lastPriceUpdate", h.LastPriceUpdate.UTC().Format(time.RFC3339))
	}
	w.Optional("notes", h.Notes)
	w.Append("purchases", nonNil(h.Purchases))
	return w.MarshalJSON()
}

func (h *Holding) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              string          `json:"id"`
		Kind            Kind            `json:"kind"`
		Symbol          string          `json:"symbol"`
		Name            string          `json:"name"`
		Agent           string          `json:"agent"`
		Currency        string          `json:"currency"`
		Units           Quantity        `json:"units"`
		AverageCost     decimal.Decimal `json:"averageCost"`
		LastPurchase    Date            `json:"lastPurchase"`
		CurrentPrice    decimal.Decimal `json:"currentPrice"`
		LastPriceUpdate string          `json:"lastPriceUpdate"`
		Notes           string          `json:"notes"`
		Purchases       []PurchaseEvent `json:"purchases"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Currency == "" {
		raw.Currency = DefaultCurrency
	}

	*h = Holding{
		ID:           raw.ID,
		Kind:         raw.Kind,
		Symbol:       raw.Symbol,
		Name:         raw.Name,
		Agent:        raw.Agent,
		Currency:     raw.Currency,
		Units:        raw.Units,
		AvgCost:      M(raw.AverageCost, raw.Currency),
		LastPurchase: raw.LastPurchase,
		CurrentPrice: M(raw.CurrentPrice, raw.Currency),
		Notes:        raw.Notes,
		Purchases:    raw.Purchases,
	}
	if raw.LastPriceUpdate != "" {
		at, err := time.Parse(time.RFC3339, raw.LastPriceUpdate)
		if err != nil {
			return fmt.Errorf("holding %q has invalid price update time %q: %w", h.ID, raw.LastPriceUpdate, err)
		}
		h.LastPriceUpdate = at
	}
	// purchase amounts are stored without a currency of their own
	for i := range h.Purchases {
		ev := &h.Purchases[i]
		ev.UnitPrice = M(ev.UnitPrice.Decimal(), h.Currency)
		ev.Cost = M(ev.Cost.Decimal(), h.Currency)
	}
	return nil
}

func (ev PurchaseEvent) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", ev.ID).
		Append("date", ev.Date).
		Append("units", ev.Units).
		Append("unitPrice", ev.UnitPrice.Decimal()).
		Append("cost", ev.Cost.Decimal()).
		Optional("agent", ev.Agent)
	return w.MarshalJSON()
}

func (ev *PurchaseEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		Date      Date            `json:"date"`
		Units     Quantity        `json:"units"`
		UnitPrice decimal.Decimal `json:"unitPrice"`
		Cost      decimal.Decimal `json:"cost"`
		Agent     string          `json:"agent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*ev = PurchaseEvent{
		ID:        raw.ID,
		Date:      raw.Date,
		Units:     raw.Units,
		UnitPrice: M(raw.UnitPrice, ""),
		Cost:      M(raw.Cost, ""),
		Agent:     raw.Agent,
	}
	return nil
}

func (ev SaleEvent) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", ev.ID).
		Append("holdingId", ev.HoldingID).
		Append("date", ev.Date).
		Append("units", ev.Units).
		Append("unitPrice", ev.UnitPrice.Decimal()).
		Append("proceeds", ev.Proceeds.Decimal()).
		Append("currency", ev.Proceeds.Currency()).
		Append("name", ev.Name).
		Optional("agent", ev.Agent)
	return w.MarshalJSON()
}

func (ev *SaleEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		HoldingID string          `json:"holdingId"`
		Date      Date            `json:"date"`
		Units     Quantity        `json:"units"`
		UnitPrice decimal.Decimal `json:"unitPrice"`
		Proceeds  decimal.Decimal `json:"proceeds"`
		Currency  string          `json:"currency"`
		Name      string          `json:"name"`
		Agent     string          `json:"agent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Currency == "" {
		raw.Currency = DefaultCurrency
	}
	*ev = SaleEvent{
		ID:        raw.ID,
		HoldingID: raw.HoldingID,
		Date:      raw.Date,
		Units:     raw.Units,
		UnitPrice: M(raw.UnitPrice, raw.Currency),
		Proceeds:  M(raw.Proceeds, raw.Currency),
		Name:      raw.Name,
		Agent:     raw.Agent,
	}
	return nil
}

func (ev DividendEvent) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", ev.ID).
		Append("holdingId", ev.HoldingID).
		Append("date", ev.Date).
		Append("amount", ev.Amount.Decimal()).
		Append("currency", ev.Amount.Currency()).
		Append("unitsHeld", ev.UnitsHeld).
		Optional("notes", ev.Notes)
	return w.MarshalJSON()
}

func (ev *DividendEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		HoldingID string          `json:"holdingId"`
		Date      Date            `json:"date"`
		Amount    decimal.Decimal `json:"amount"`
		Currency  string          `json:"currency"`
		UnitsHeld Quantity        `json:"unitsHeld"`
		Notes     string          `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Currency == "" {
		raw.Currency = DefaultCurrency
	}
	*ev = DividendEvent{
		ID:        raw.ID,
		HoldingID: raw.HoldingID,
		Date:      raw.Date,
		Amount:    M(raw.Amount, raw.Currency),
		UnitsHeld: raw.UnitsHeld,
		Notes:     raw.Notes,
	}
	return nil
}

func (s ValuationSnapshot) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", s.ID).
		Append("date", s.Date).
		Append("totalCost", s.TotalCost.Decimal()).
		Append("totalValue", s.TotalValue.Decimal()).
		Append("currency", s.TotalValue.Currency())
	return w.MarshalJSON()
}

func (s *ValuationSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string          `json:"id"`
		Date       Date            `json:"date"`
		TotalCost  decimal.Decimal `json:"totalCost"`
		TotalValue decimal.Decimal `json:"totalValue"`
		Currency   string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Currency == "" {
		raw.Currency = DefaultCurrency
	}
	*s = ValuationSnapshot{
		ID:         raw.ID,
		Date:       raw.Date,
		TotalCost:  M(raw.TotalCost, raw.Currency),
		TotalValue: M(raw.TotalValue, raw.Currency),
	}
	return nil
}

func (fd FixedDeposit) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", fd.ID).
		Append("bank", fd.Bank).
		Optional("slip", fd.Slip).
		Append("start", fd.Start).
		Append("maturity", fd.Maturity).
		Append("ratePct", fd.Rate).
		Append("principal", fd.Principal.Decimal()).
		Append("currency", fd.Principal.Currency()).
		Optional("remarks", fd.Remarks)
	return w.MarshalJSON()
}

func (fd *FixedDeposit) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		Bank      string          `json:"bank"`
		Slip      string          `json:"slip"`
		Start     Date            `json:"start"`
		Maturity  Date            `json:"maturity"`
		RatePct   decimal.Decimal `json:"ratePct"`
		Principal decimal.Decimal `json:"principal"`
		Currency  string          `json:"currency"`
		Remarks   string          `json:"remarks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Currency == "" {
		raw.Currency = DefaultCurrency
	}
	*fd = FixedDeposit{
		ID:        raw.ID,
		Bank:      raw.Bank,
		Slip:      raw.Slip,
		Start:     raw.Start,
		Maturity:  raw.Maturity,
		Rate:      raw.RatePct,
		Principal: M(raw.Principal, raw.Currency),
		Remarks:   raw.Remarks,
	}
	return nil
}

func (m MaturityLog) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", m.ID).
		Append("date", m.Date).
		Append("bank", m.Bank).
		Optional("slip", m.Slip).
		Append("principal", m.Principal.Decimal()).
		Append("interest", m.Interest.Decimal()).
		Append("ratePct", m.Rate).
		Append("currency", m.Principal.Currency()).
		Append("year", m.Year)
	return w.MarshalJSON()
}

func (m *MaturityLog) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		Date      Date            `json:"date"`
		Bank      string          `json:"bank"`
		Slip      string          `json:"slip"`
		Principal decimal.Decimal `json:"principal"`
		Interest  decimal.Decimal `json:"interest"`
		RatePct   decimal.Decimal `json:"ratePct"`
		Currency  string          `json:"currency"`
		Year      int             `json:"year"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Currency == "" {
		raw.Currency = DefaultCurrency
	}
	*m = MaturityLog{
		ID:        raw.ID,
		Date:      raw.Date,
		Bank:      raw.Bank,
		Slip:      raw.Slip,
		Principal: M(raw.Principal, raw.Currency),
		Interest:  M(raw.Interest, raw.Currency),
		Rate:      raw.RatePct,
		Year:      raw.Year,
	}
	return nil
}
