package routers

import (
	"errors"

	"github.com/shopspring/decimal"
)

var errFractionalMinorUnit = errors.New("amount has more decimal places than the asset supports")

// toMinorUnits 人类可读金额换算为最小单位整数，换算只发生在API边界
func toMinorUnits(amount string, decimals int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, err
	}
	minor := d.Shift(decimals)
	if !minor.Equal(minor.Truncate(0)) {
		return decimal.Zero, errFractionalMinorUnit
	}
	return minor, nil
}

// parseMinorUnits 解析已经是最小单位的整数金额（链上监控方口径）
func parseMinorUnits(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.Equal(d.Truncate(0)) {
		return decimal.Zero, errFractionalMinorUnit
	}
	return d, nil
}

// optionalMinorUnits 同 parseMinorUnits，缺省为零
func optionalMinorUnits(amount string) (decimal.Decimal, error) {
	if amount == "" {
		return decimal.Zero, nil
	}
	return parseMinorUnits(amount)
}
