package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number 宽松数字输入：JSON 数字或数字字符串（"5"、"50.5"）。
// 原文保留，校验通过后才转换类型。
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	*n = Number(b)
	return nil
}

func (n Number) Decimal() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(string(n)))
	return d, err == nil
}

// Int64 只接受 int64 范围内的整数值（"7"、7、"7.0"）
func (n Number) Int64() (int64, bool) {
	d, ok := n.Decimal()
	if !ok || !d.IsInteger() {
		return 0, false
	}
	b := d.BigInt()
	if !b.IsInt64() {
		return 0, false
	}
	return b.Int64(), true
}

func Num(v string) *Number {
	n := Number(v)
	return &n
}

func Str(v string) *string { return &v }

// 以下 *Fields 均为 merge-patch 语义：nil = 未提供

type UserFields struct {
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type ProductFields struct {
	Name            *string `json:"name"`
	Artist          *string `json:"artist"`
	GenreID         *Number `json:"genre_id"`
	Price           *Number `json:"price"`
	PublicationDate *string `json:"publication_date"`
	Description     *string `json:"description"`
}

type OrderFields struct {
	CustomerID *Number `json:"customer_id"`
	Total      *Number `json:"total"`
	OrderDate  *string `json:"order_date"`
	Status     *string `json:"status"`
	Notes      *string `json:"notes"`
}

type PaymentFields struct {
	OrderID     *Number `json:"order_id"`
	Method      *string `json:"method"`
	Amount      *Number `json:"amount"`
	PaymentDate *string `json:"payment_date"`
	Status      *string `json:"status"`
}
