package models

import (
	"github.com/shopspring/decimal"
)

// CentsToAmount 将分转为带 2 位小数的金额
func CentsToAmount(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Round(2)
}

// CentsToDisplay 将分转为展示用的金额字符串（如 "12.50"）
func CentsToDisplay(cents int64) string {
	return CentsToAmount(cents).StringFixed(2)
}

// LineTotalCents 计算行小计（单价 × 数量）
func LineTotalCents(unitPriceCents int64, quantity int) int64 {
	return unitPriceCents * int64(quantity)
}
