package types

// AccountID identifies a participant, a pool holding address or a protocol account.
type AccountID string

func (a AccountID) String() string {
	return string(a)
}

type AssetID string

const (
	AssetDollar     AssetID = "dollar"
	AssetGovernance AssetID = "governance"
	AssetLiquidity  AssetID = "lp"
	// AssetQuote is the counter asset the Dollar is paired with on the liquidity venue.
	AssetQuote AssetID = "quote"
)

type PoolID string

const (
	PoolDAO     PoolID = "dao"
	PoolBonding PoolID = "bonding"
	PoolLP      PoolID = "lp"
	PoolGov     PoolID = "gov"
)

func (p PoolID) String() string {
	return string(p)
}

// PoolIDs lists the pools in the order they are reported.
func PoolIDs() []PoolID {
	return []PoolID{PoolDAO, PoolBonding, PoolLP, PoolGov}
}

// PoolAddress is the account that holds a pool's assets. The DAO pool is held
// by the DAO account itself.
func PoolAddress(dao AccountID, id PoolID) AccountID {
	if id == PoolDAO {
		return dao
	}
	return AccountID("pool:" + string(id))
}

type AccountStatus uint8

const (
	StatusFrozen AccountStatus = 0
	StatusFluid  AccountStatus = 1
	// StatusLocked is the governance-vote lock.
	StatusLocked AccountStatus = 2
)

func (s AccountStatus) String() string {
	switch s {
	case StatusFrozen:
		return "frozen"
	case StatusFluid:
		return "fluid"
	case StatusLocked:
		return "locked"
	default:
		return "unknown"
	}
}
