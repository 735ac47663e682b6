package cart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// MaxCodeLength is the longest promo code accepted after trimming.
const MaxCodeLength = 20

const (
	MsgInvalidCode   = "Code promo invalide"
	MsgUnknownCode   = "Code promo invalide ou inactif"
	MsgExpired       = "Ce code promo a expiré"
	MsgUsageExceeded = "Ce code promo a atteint sa limite d'utilisation"
)

// PromoResult is what ApplyPromoCode reports back. Rejections are results,
// never errors.
type PromoResult struct {
	Success  bool    `json:"success"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

func rejected(msg string) PromoResult {
	return PromoResult{Success: false, Discount: 0, Message: msg}
}

// EvaluatePromo runs the promotion rules against a cart total. It has no side
// effects: the same code, total, promotions and instant always give the same
// result. Checks run in order and the first failure wins.
func EvaluatePromo(code string, total float64, promotions []domain.PromotionDefinition, now time.Time) PromoResult {
	normalized := domain.NormalizeCode(code)
	if normalized == "" || len([]rune(normalized)) > MaxCodeLength {
		return rejected(MsgInvalidCode)
	}

	promo, ok := findActive(normalized, promotions)
	if !ok {
		return rejected(MsgUnknownCode)
	}

	if promo.Expired(now) {
		return rejected(MsgExpired)
	}

	if promo.Exhausted() {
		return rejected(MsgUsageExceeded)
	}

	if promo.MinAmount != nil && total < *promo.MinAmount {
		return rejected(fmt.Sprintf("Montant minimum de %s€ requis pour ce code", formatAmount(*promo.MinAmount)))
	}

	var discount float64
	switch promo.Type {
	case domain.PromotionPercentage:
		discount = total * promo.Value / 100
	case domain.PromotionFixed:
		discount = promo.Value
	default:
		return rejected(MsgUnknownCode)
	}

	return PromoResult{
		Success:  true,
		Discount: discount,
		Message:  fmt.Sprintf("Code %s appliqué !", normalized),
	}
}

func findActive(code string, promotions []domain.PromotionDefinition) (domain.PromotionDefinition, bool) {
	for _, p := range promotions {
		if p.Active && domain.NormalizeCode(p.Code) == code {
			return p, true
		}
	}
	return domain.PromotionDefinition{}, false
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
