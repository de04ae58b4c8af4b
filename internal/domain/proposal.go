package domain

import (
	"fmt"
	"math"
	"time"
)

type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExpired  ProposalStatus = "expired"
)

func ParseProposalStatus(s string) (ProposalStatus, bool) {
	switch st := ProposalStatus(s); st {
	case ProposalStatusDraft, ProposalStatusPending, ProposalStatusAccepted,
		ProposalStatusRejected, ProposalStatusExpired:
		return st, true
	}
	return "", false
}

var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalStatusDraft:    {ProposalStatusPending, ProposalStatusExpired},
	ProposalStatusPending:  {ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusExpired},
	ProposalStatusAccepted: {},
	ProposalStatusRejected: {},
	ProposalStatusExpired:  {},
}

func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	for _, st := range proposalTransitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// IsEditable reports whether staff may still change the proposal body.
func (s ProposalStatus) IsEditable() bool {
	return s == ProposalStatusDraft || s == ProposalStatusPending
}

// ProposalDecision is the customer's answer to a pending proposal.
type ProposalDecision string

const (
	DecisionAccept ProposalDecision = "accepted"
	DecisionReject ProposalDecision = "rejected"
)

func (d ProposalDecision) Status() (ProposalStatus, bool) {
	switch d {
	case DecisionAccept:
		return ProposalStatusAccepted, true
	case DecisionReject:
		return ProposalStatusRejected, true
	}
	return "", false
}

type ProposalItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type Proposal struct {
	ID          string         `json:"id"`
	EventID     string         `json:"event_id"`
	AdminID     string         `json:"admin_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Items       []ProposalItem `json:"items"`
	TotalPrice  float64        `json:"total_price"`
	ValidUntil  time.Time      `json:"valid_until"`
	Status      ProposalStatus `json:"status"`
	Feedback    *string        `json:"feedback,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsOverdue reports whether a pending proposal has outlived its validity.
func (p *Proposal) IsOverdue(now time.Time) bool {
	return p.Status == ProposalStatusPending && now.After(p.ValidUntil)
}

// MaxTotalCents bounds every line and the proposal sum so the total stays
// exact as a float64.
const MaxTotalCents int64 = 1 << 53

// ItemsTotal is the derived total price: sum of price*quantity in cents.
func ItemsTotal(items []ProposalItem) (float64, error) {
	var cents int64
	for i, it := range items {
		if it.Quantity < 1 {
			return 0, fmt.Errorf("%w: items[%d].quantity must be at least 1", ErrValidation, i)
		}
		unit := math.Round(it.Price * 100)
		if unit > float64(MaxTotalCents) {
			return 0, fmt.Errorf("%w: items[%d].price is too large", ErrValidation, i)
		}
		if int64(unit) > (MaxTotalCents-cents)/int64(it.Quantity) {
			return 0, fmt.Errorf("%w: total price is too large", ErrValidation)
		}
		cents += int64(unit) * int64(it.Quantity)
	}
	return float64(cents) / 100, nil
}

type ProposalInput struct {
	Title       string
	Description string
	Items       []ProposalItem
	// TotalPrice, when supplied, must agree with the item sum.
	TotalPrice *float64
	// ValidUntil is taken as sent by the client; absent or unparsable
	// values fall back to the default validity.
	ValidUntil string
}

// ProposalPatch carries the fields staff may change while a proposal is
// still draft or pending. Nil fields are left untouched.
type ProposalPatch struct {
	Title       *string
	Description *string
	Items       *[]ProposalItem
	TotalPrice  *float64
	ValidUntil  *string
}
