package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stpnv0/EventMarket/internal/domain"
)

// Price accepts a JSON number or a numeric string. Anything else fails
// decoding with domain.ErrValidation.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("%w: price is not a string", domain.ErrValidation)
		}
		raw = strings.TrimSpace(unquoted)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: price %q is not numeric", domain.ErrValidation, raw)
	}
	*p = Price(v)
	return nil
}

func (p *Price) Float() *float64 {
	if p == nil {
		return nil
	}
	v := float64(*p)
	return &v
}

type proposalItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Quantity    *int   `json:"quantity"`
}

// ParseProposalItems decodes the items field. Older clients send the list
// as a JSON-encoded string, so both shapes are accepted. Quantity defaults
// to 1.
func ParseProposalItems(raw json.RawMessage) ([]domain.ProposalItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.ProposalItem{}, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%w: items is not valid JSON", domain.ErrValidation)
		}
		raw = json.RawMessage(strings.TrimSpace(inner))
		if len(raw) == 0 {
			return []domain.ProposalItem{}, nil
		}
	}

	var wire []proposalItem
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: items must be an array: %v", domain.ErrValidation, err)
	}

	items := make([]domain.ProposalItem, 0, len(wire))
	for _, it := range wire {
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		items = append(items, domain.ProposalItem{
			Name:        it.Name,
			Description: it.Description,
			Price:       float64(it.Price),
			Quantity:    qty,
		})
	}
	return items, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime reads the date formats clients send. Values without a zone are
// taken as UTC.
func ParseTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s has invalid date format", domain.ErrValidation, field)
}
