package apperr

import "errors"

// Kind 错误类别
type Kind int

const (
	KindInternal      Kind = 0 // 内部错误
	KindNotFound      Kind = 1 // 实体不存在或已禁用
	KindValidation    Kind = 2 // 业务规则校验失败
	KindConflict      Kind = 3 // 重复且矛盾的提交
	KindInsufficiency Kind = 4 // 可用余额不足
	KindAuth          Kind = 5 // 认证失败
)

// Error 业务错误，Name 原样返回给调用方
type Error struct {
	Kind    Kind
	Name    string
	Message string
}

// Error 实现error接口
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Name
}

// New 创建业务错误
func New(kind Kind, name, message string) *Error {
	return &Error{Kind: kind, Name: name, Message: message}
}

// 预定义错误，名称与对外错误码一一对应
var (
	ErrAssetNotFound        = New(KindNotFound, "AssetNotFound", "asset not found or inactive")
	ErrNetworkNotFound      = New(KindNotFound, "NetworkNotFound", "network not found or inactive")
	ErrAssetNetworkNotFound = New(KindNotFound, "AssetNetworkNotFound", "asset is not available on this network")
	ErrTransactionNotFound  = New(KindNotFound, "TransactionNotFound", "wallet transaction not found")
	ErrMinDeposit           = New(KindValidation, "MinDeposit", "amount is below the minimum deposit")
	ErrMinWithdraw          = New(KindValidation, "MinWithdraw", "amount is below the minimum withdrawal")
	ErrInvalidAmount        = New(KindValidation, "InvalidAmount", "amount must be greater than zero")
	ErrInvalidWalletAddress = New(KindValidation, "InvalidWalletAddress", "address is not valid for this network")
	ErrAlreadyProcessed     = New(KindConflict, "AlreadyExistsTransaction", "transaction was already processed")
	ErrAmountMismatch       = New(KindConflict, "AmountMismatch", "amount contradicts a previous submission for the same transaction")
	ErrLowWalletBalance     = New(KindInsufficiency, "LowWalletBalance", "available balance is too low")
	ErrUnauthorized         = New(KindAuth, "UnAuthorized", "unauthorized")
)

// KindOf 提取错误类别，非业务错误一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// NameOf 提取对外错误名
func NameOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Name
	}
	return "InternalError"
}
