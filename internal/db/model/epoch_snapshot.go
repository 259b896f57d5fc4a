package model

// EpochSnapshotDocument is keyed by epoch. Amounts are decimal strings since
// they do not fit in a bson int64.
type EpochSnapshotDocument struct {
	Epoch         uint64            `bson:"_id"`
	TotalBonded   string            `bson:"total_bonded"`
	TotalSupply   string            `bson:"total_supply"`
	Debt          string            `bson:"debt"`
	Redeemable    string            `bson:"redeemable"`
	Price         string            `bson:"price"`
	PriceValid    bool              `bson:"price_valid"`
	ActiveVersion string            `bson:"active_version"`
	PoolsBonded   map[string]string `bson:"pools_bonded"`
	Timestamp     int64             `bson:"timestamp"`
}
