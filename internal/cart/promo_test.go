package cart

import (
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func amount(v float64) *float64 { return &v }

func testPromotions() []domain.PromotionDefinition {
	future := time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC)
	return []domain.PromotionDefinition{
		{Code: "BIENVENUE10", Type: domain.PromotionPercentage, Value: 10, MaxUses: 1000, UsedCount: 245, EndDate: future, Active: true},
		{Code: "VIP30", Type: domain.PromotionPercentage, Value: 30, MinAmount: amount(200), MaxUses: 100, UsedCount: 12, EndDate: future, Active: true},
		{Code: "LIVRAISON", Type: domain.PromotionFixed, Value: 9.9, MaxUses: 500, EndDate: future, Active: true},
		{Code: "GROS100", Type: domain.PromotionFixed, Value: 100, MaxUses: 5, EndDate: future, Active: true},
		{Code: "ETE2024", Type: domain.PromotionPercentage, Value: 20, MaxUses: 300, EndDate: time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), Active: true},
		{Code: "VIEUXPLEIN", Type: domain.PromotionPercentage, Value: 20, MaxUses: 10, UsedCount: 10, EndDate: time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), Active: true},
		{Code: "FIDELITE15", Type: domain.PromotionPercentage, Value: 15, MaxUses: 50, UsedCount: 50, EndDate: future, Active: true},
		{Code: "SOLDES50", Type: domain.PromotionPercentage, Value: 50, MaxUses: 200, EndDate: future, Active: false},
		{Code: "FUTUR5", Type: domain.PromotionFixed, Value: 5, MaxUses: 10, StartDate: future, Active: true},
	}
}

func TestEvaluatePromo(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		total   float64
		success bool
		disc    float64
		message string
	}{
		{"percentage applied", "BIENVENUE10", 200, true, 20, "Code BIENVENUE10 appliqué !"},
		{"input is trimmed and upper-cased", "  bienvenue10 ", 200, true, 20, "Code BIENVENUE10 appliqué !"},
		{"minimum amount not met", "VIP30", 150, false, 0, "Montant minimum de 200€ requis pour ce code"},
		{"minimum amount met exactly", "VIP30", 200, true, 60, "Code VIP30 appliqué !"},
		{"fixed amount", "LIVRAISON", 30, true, 9.9, "Code LIVRAISON appliqué !"},
		{"fixed amount may exceed total", "GROS100", 40, true, 100, "Code GROS100 appliqué !"},
		{"empty code", "   ", 100, false, 0, MsgInvalidCode},
		{"code too long", "ABCDEFGHIJKLMNOPQRSTU", 100, false, 0, MsgInvalidCode},
		{"unknown code", "NOPE", 100, false, 0, MsgUnknownCode},
		{"inactive code", "SOLDES50", 100, false, 0, MsgUnknownCode},
		{"expired code", "ETE2024", 100, false, 0, MsgExpired},
		{"expiry checked before usage", "VIEUXPLEIN", 100, false, 0, MsgExpired},
		{"usage limit reached", "FIDELITE15", 100, false, 0, MsgUsageExceeded},
		{"start date is not enforced", "FUTUR5", 10, true, 5, "Code FUTUR5 appliqué !"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePromo(tt.code, tt.total, testPromotions(), fixedNow)
			assert.Equal(t, tt.success, got.Success)
			assert.InDelta(t, tt.disc, got.Discount, 1e-9)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestEvaluatePromo_TwentyCharactersAccepted(t *testing.T) {
	promos := []domain.PromotionDefinition{
		{Code: "ABCDEFGHIJKLMNOPQRST", Type: domain.PromotionFixed, Value: 1, MaxUses: 1, Active: true},
	}

	got := EvaluatePromo("abcdefghijklmnopqrst", 10, promos, fixedNow)
	assert.True(t, got.Success)
}

func TestEvaluatePromo_MinimumMessageKeepsDecimals(t *testing.T) {
	promos := []domain.PromotionDefinition{
		{Code: "PETIT", Type: domain.PromotionFixed, Value: 2, MinAmount: amount(49.9), MaxUses: 1, Active: true},
	}

	got := EvaluatePromo("PETIT", 10, promos, fixedNow)
	assert.False(t, got.Success)
	assert.Contains(t, got.Message, "49.9")
}

func TestEvaluatePromo_Deterministic(t *testing.T) {
	promos := testPromotions()
	for _, code := range []string{"BIENVENUE10", "VIP30", "ETE2024", "nope", ""} {
		first := EvaluatePromo(code, 180, promos, fixedNow)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, EvaluatePromo(code, 180, promos, fixedNow), code)
		}
	}
}
