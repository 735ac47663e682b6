package domain

import (
	"strings"
	"time"
)

type PromotionType string

const (
	PromotionPercentage PromotionType = "percentage"
	PromotionFixed      PromotionType = "fixed"
)

// PromotionDefinition is a promo code as published by the product directory.
// StartDate is carried for display only; the apply rule checks EndDate alone.
type PromotionDefinition struct {
	Code      string        `json:"code" yaml:"code"`
	Type      PromotionType `json:"type" yaml:"type"`
	Value     float64       `json:"value" yaml:"value"`
	MinAmount *float64      `json:"minAmount,omitempty" yaml:"minAmount"`
	MaxUses   int           `json:"maxUses" yaml:"maxUses"`
	UsedCount int           `json:"usedCount" yaml:"usedCount"`
	StartDate time.Time     `json:"startDate" yaml:"startDate"`
	EndDate   time.Time     `json:"endDate" yaml:"endDate"`
	Active    bool          `json:"active" yaml:"active"`
}

// NormalizeCode trims and upper-cases a promo code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Expired reports whether the promotion ended before now. A zero EndDate never expires.
func (p PromotionDefinition) Expired(now time.Time) bool {
	return !p.EndDate.IsZero() && now.After(p.EndDate)
}

func (p PromotionDefinition) Exhausted() bool {
	return p.UsedCount >= p.MaxUses
}
