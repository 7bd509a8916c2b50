package financials

import "github.com/shopspring/decimal"

type BonusStatus string

const (
	BonusStatusBelowQuota   BonusStatus = "below_quota"
	BonusStatusActive       BonusStatus = "active"
	BonusStatusQuotaReached BonusStatus = "quota_reached"
)

// BonusPolicy is the monthly quota and the rate paid on labor above it.
type BonusPolicy struct {
	QuotaAmount decimal.Decimal `json:"quota_amount"`
	BonusRate   decimal.Decimal `json:"bonus_rate"`
}

func DefaultBonusPolicy() BonusPolicy {
	return BonusPolicy{
		QuotaAmount: decimal.NewFromInt(6000),
		BonusRate:   decimal.RequireFromString("0.25"),
	}
}

func (p BonusPolicy) Validate() error {
	if p.QuotaAmount.IsNegative() {
		return fieldError("quota_amount", "must not be negative")
	}
	if p.BonusRate.IsNegative() {
		return fieldError("bonus_rate", "must not be negative")
	}
	return nil
}

// TechnicianPeriodSummary is a technician's standing against the policy for one period.
//
// QuotaProgress keeps full precision; QuotaProgressPercent is the whole-number
// value shown to users.
type TechnicianPeriodSummary struct {
	TechnicianID         string          `json:"technician_id"`
	TechnicianName       string          `json:"technician_name"`
	Orders               int             `json:"orders"`
	TotalLabor           decimal.Decimal `json:"total_labor"`
	BonusAmount          decimal.Decimal `json:"bonus_amount"`
	QuotaProgress        decimal.Decimal `json:"quota_progress"`
	QuotaProgressPercent int64           `json:"quota_progress_percent"`
	Status               BonusStatus     `json:"status"`
}

// CalculateTechnicianBonus applies policy to a period's labor revenue.
func CalculateTechnicianBonus(totalLabor decimal.Decimal, policy BonusPolicy) (TechnicianPeriodSummary, error) {
	if totalLabor.IsNegative() {
		return TechnicianPeriodSummary{}, fieldError("total_labor", "must not be negative")
	}
	if err := policy.Validate(); err != nil {
		return TechnicianPeriodSummary{}, err
	}

	progress := quotaProgress(totalLabor, policy.QuotaAmount)
	return TechnicianPeriodSummary{
		TotalLabor:           Round2(totalLabor),
		BonusAmount:          Round2(maxZero(totalLabor.Sub(policy.QuotaAmount)).Mul(policy.BonusRate)),
		QuotaProgress:        progress,
		QuotaProgressPercent: progress.Round(0).IntPart(),
		Status:               bonusStatus(totalLabor, policy.QuotaAmount),
	}, nil
}

func quotaProgress(labor, quota decimal.Decimal) decimal.Decimal {
	if quota.IsZero() {
		if labor.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return decimal.Min(hundred, labor.Div(quota).Mul(hundred))
}

func bonusStatus(labor, quota decimal.Decimal) BonusStatus {
	switch {
	case labor.IsZero():
		return BonusStatusBelowQuota
	case labor.GreaterThanOrEqual(quota):
		return BonusStatusQuotaReached
	default:
		return BonusStatusActive
	}
}
