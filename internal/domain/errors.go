package domain

import "errors"

// Kind 错误分类，决定 HTTP 层的状态码
type Kind int

const (
	KindStore Kind = iota // 存储层/未知错误
	KindValidation
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "store"
	}
}

// Error 带分类的业务错误。Msg 是对外可见的完整文本（调用方会按子串匹配）。
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error   { return &Error{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) error     { return &Error{Kind: KindConflict, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }

// StoreFailure 存储层返回了 ok=false（没有底层 error）
func StoreFailure(msg string) error { return &Error{Kind: KindStore, Msg: msg} }

// Wrap 在 service 边界加上操作前缀，保留内部错误的分类。
// 非 *Error 的错误（驱动/连接错误）归为 KindStore。
func Wrap(prefix string, err error) error {
	if err == nil {
		return nil
	}
	kind := KindStore
	var de *Error
	if errors.As(err, &de) {
		kind = de.Kind
	}
	return &Error{Kind: kind, Msg: prefix + err.Error(), Err: err}
}

// KindOf 取错误分类；非 *Error 返回 KindStore
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStore
}
