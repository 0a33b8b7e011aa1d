package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"go-gin-gorm-shop/internal/domain"
)

const (
	minYear = 2000
	maxYear = 2100

	minPasswordLen = 6
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// blank 未提供或空串
func blank(s *string) bool { return s == nil || *s == "" }

func blankNum(n *Number) bool { return n == nil || strings.TrimSpace(string(*n)) == "" }

func requireID(id int64, msg string) error {
	if id <= 0 {
		return domain.Validation(msg)
	}
	return nil
}

// wholeNumber 引用类 id（customer_id / genre_id / order_id）
func wholeNumber(n Number, label string) (int64, error) {
	v, ok := n.Int64()
	if !ok {
		return 0, domain.Validation(label + " must be a valid number")
	}
	return v, nil
}

func wholeNumberString(s, label string) (int64, error) {
	return wholeNumber(Number(s), label)
}

// positive 金额类字段必须 > 0
func positive(n Number, label string) (decimal.Decimal, error) {
	d, ok := n.Decimal()
	if !ok {
		return decimal.Zero, domain.Validation(label + " must be a valid number")
	}
	if !d.IsPositive() {
		return decimal.Zero, domain.Validation(label + " must be greater than 0")
	}
	return d, nil
}

func date(s, label string) (domain.Date, error) {
	d, err := domain.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return domain.Date{}, domain.Validation("Invalid " + label + " format")
	}
	return d, nil
}

// dateOrToday 缺省为当天
func dateOrToday(s *string, label string, now time.Time) (domain.Date, error) {
	if blank(s) {
		return domain.Today(now), nil
	}
	return date(*s, label)
}

func dateRange(start, end string) (domain.Date, domain.Date, error) {
	if start == "" || end == "" {
		return domain.Date{}, domain.Date{}, domain.Validation("Start date and end date are required")
	}
	from, err := date(start, "start date")
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	to, err := date(end, "end date")
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	return from, to, nil
}

func year(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, domain.Validation("Year is required")
	}
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < minYear || y > maxYear {
		return 0, domain.Validation("Invalid year provided")
	}
	return y, nil
}

func notEmpty(s *string, label string) error {
	if s != nil && strings.TrimSpace(*s) == "" {
		return domain.Validation(label + " cannot be empty")
	}
	return nil
}
