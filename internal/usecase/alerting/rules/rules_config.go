package rules

import (
	"fmt"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/config"
	"github.com/esgpulse/supplier-compliance-service/internal/domain"
)

// AlertRules holds the thresholds used by every scanner. All values are days.
type AlertRules struct {
	CriticalWithinDays       int `json:"critical_within_days"`
	UrgentWithinDays         int `json:"urgent_within_days"`
	AttentionWithinDays      int `json:"attention_within_days"`
	MandatoryOverdueDays     int `json:"mandatory_overdue_days"`
	EvaluationStaleDays      int `json:"evaluation_stale_days"`
	FailureWindowDays        int `json:"failure_window_days"`
	MaxFailures              int `json:"max_failures"`
	ReactivationCooldownDays int `json:"reactivation_cooldown_days"`
}

func DefaultAlertRules() *AlertRules {
	return &AlertRules{
		CriticalWithinDays:       7,
		UrgentWithinDays:         15,
		AttentionWithinDays:      30,
		MandatoryOverdueDays:     30,
		EvaluationStaleDays:      330,
		FailureWindowDays:        365,
		MaxFailures:              3,
		ReactivationCooldownDays: 90,
	}
}

// FromConfig starts from DefaultAlertRules and overrides every threshold set in cfg.
func FromConfig(cfg config.Rules) *AlertRules {
	r := DefaultAlertRules()
	override(&r.CriticalWithinDays, cfg.CriticalWithinDays)
	override(&r.UrgentWithinDays, cfg.UrgentWithinDays)
	override(&r.AttentionWithinDays, cfg.AttentionWithinDays)
	override(&r.MandatoryOverdueDays, cfg.MandatoryOverdueDays)
	override(&r.EvaluationStaleDays, cfg.EvaluationStaleDays)
	override(&r.FailureWindowDays, cfg.FailureWindowDays)
	override(&r.MaxFailures, cfg.MaxFailures)
	override(&r.ReactivationCooldownDays, cfg.ReactivationCooldownDays)
	return r
}

func override(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func (r *AlertRules) Validate() error {
	if r.CriticalWithinDays < 0 {
		return fmt.Errorf("critical_within_days cannot be negative")
	}
	if r.UrgentWithinDays < r.CriticalWithinDays {
		return fmt.Errorf("urgent_within_days must be >= critical_within_days")
	}
	if r.AttentionWithinDays < r.UrgentWithinDays {
		return fmt.Errorf("attention_within_days must be >= urgent_within_days")
	}
	if r.MandatoryOverdueDays <= 0 {
		return fmt.Errorf("mandatory_overdue_days must be positive")
	}
	if r.EvaluationStaleDays <= 0 {
		return fmt.Errorf("evaluation_stale_days must be positive")
	}
	if r.FailureWindowDays <= 0 {
		return fmt.Errorf("failure_window_days must be positive")
	}
	if r.MaxFailures < 0 {
		return fmt.Errorf("max_failures cannot be negative")
	}
	if r.ReactivationCooldownDays < 0 {
		return fmt.Errorf("reactivation_cooldown_days cannot be negative")
	}
	return nil
}

// ClassifyExpiry maps days until expiry to a severity bucket. The second
// return value is false when the date is too far away to alert on.
func (r *AlertRules) ClassifyExpiry(daysUntilExpiry int) (domain.AlertCategory, bool) {
	switch {
	case daysUntilExpiry < 0:
		return domain.CategoryExpired, true
	case daysUntilExpiry <= r.CriticalWithinDays:
		return domain.CategoryCritical, true
	case daysUntilExpiry <= r.UrgentWithinDays:
		return domain.CategoryUrgent, true
	case daysUntilExpiry <= r.AttentionWithinDays:
		return domain.CategoryAttention, true
	default:
		return "", false
	}
}

// ShouldInactivateForDocument: mandatory documents expired for at least MandatoryOverdueDays.
func (r *AlertRules) ShouldInactivateForDocument(isMandatory bool, daysUntilExpiry int) bool {
	return isMandatory && daysUntilExpiry <= -r.MandatoryOverdueDays
}

func (r *AlertRules) IsEvaluationStale(daysSinceEvaluation int) bool {
	return daysSinceEvaluation >= r.EvaluationStaleDays
}

// ExceedsFailureLimit is strict: MaxFailures itself is still allowed.
func (r *AlertRules) ExceedsFailureLimit(failures int) bool {
	return failures > r.MaxFailures
}

func (r *AlertRules) FailureWindowStart(today time.Time) time.Time {
	return today.AddDate(0, 0, -r.FailureWindowDays)
}

func (r *AlertRules) ReactivationBlockedUntil(now time.Time) time.Time {
	return now.AddDate(0, 0, r.ReactivationCooldownDays)
}
