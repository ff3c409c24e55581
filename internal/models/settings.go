package models

// StrategyType names a payoff-strategy algorithm.
type StrategyType string

const (
	StrategyTypeSnowball  StrategyType = "snowball"
	StrategyTypeAvalanche StrategyType = "avalanche"
	StrategyTypeCustom    StrategyType = "custom"
)

// ValidStrategyType reports whether s is a known strategy type.
func ValidStrategyType(s StrategyType) bool {
	switch s {
	case StrategyTypeSnowball, StrategyTypeAvalanche, StrategyTypeCustom:
		return true
	}
	return false
}

// Settings holds the user's app configuration. A single row exists;
// the settings service creates it with defaults on first read.
type Settings struct {
	Base
	ExtraPayment float64      `gorm:"not null;default:0" json:"extra_payment"`
	Strategy     StrategyType `gorm:"not null;default:'snowball'" json:"strategy"`
	Currency     string       `gorm:"not null;default:'USD'" json:"currency"`
}
