package chain

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// Family 链家族，账本核心只依赖家族能力，不做具体链分支
type Family string

const (
	FamilyEVM     Family = "evm"
	FamilyBitcoin Family = "bitcoin"
	FamilyTron    Family = "tron"
	FamilySolana  Family = "solana"
)

var (
	btcRegexp  = regexp.MustCompile(`^(bc1[02-9ac-hj-np-z]{11,87}|[13][a-km-zA-HJ-NP-Z1-9]{25,34})$`)
	tronRegexp = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
	solRegexp  = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
)

// Valid 家族是否已知
func (f Family) Valid() bool {
	switch f {
	case FamilyEVM, FamilyBitcoin, FamilyTron, FamilySolana:
		return true
	}
	return false
}

// ValidateAddress 校验地址格式
func (f Family) ValidateAddress(address string) bool {
	switch f {
	case FamilyEVM:
		return common.IsHexAddress(address)
	case FamilyBitcoin:
		return btcRegexp.MatchString(address)
	case FamilyTron:
		return tronRegexp.MatchString(address)
	case FamilySolana:
		return solRegexp.MatchString(address)
	default:
		return false
	}
}
