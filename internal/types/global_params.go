package types

import (
	"encoding/json"
	"fmt"
	"os"
)

// VersionedRegulatorParams configures one governance-selectable implementation.
type VersionedRegulatorParams struct {
	Version                  string  `json:"version"`
	SupplyChangeLimit        Decimal `json:"supply_change_limit"`
	MaxDebtRatio             Decimal `json:"max_debt_ratio"`
	PoolLPRewardPercent      uint64  `json:"pool_lp_reward_percent"`
	PoolBondingRewardPercent uint64  `json:"pool_bonding_reward_percent"`
	TreasuryRewardPercent    uint64  `json:"treasury_reward_percent"`
}

type GovernanceParams struct {
	VotePeriod            uint64  `json:"vote_period"`
	Expiration            uint64  `json:"expiration"`
	EmergencyCommitPeriod uint64  `json:"emergency_commit_period"`
	Quorum                Decimal `json:"quorum"`
	SuperMajority         Decimal `json:"super_majority"`
	ProposalThreshold     Decimal `json:"proposal_threshold"`
}

type GlobalParams struct {
	EpochStart           int64            `json:"epoch_start"`
	EpochPeriod          int64            `json:"epoch_period"`
	BootstrappingPeriod  uint64           `json:"bootstrapping_period"`
	InitialStakeMultiple uint64           `json:"initial_stake_multiple"`
	DaoExitLockupEpochs  uint64           `json:"dao_exit_lockup_epochs"`
	PoolExitLockupEpochs uint64           `json:"pool_exit_lockup_epochs"`
	Governance           GovernanceParams `json:"governance"`
	ActiveVersion        string           `json:"active_version"`

	Versions []*VersionedRegulatorParams `json:"versions"`
}

func DefaultGlobalParams() *GlobalParams {
	return &GlobalParams{
		EpochStart:           1600905600,
		EpochPeriod:          14400,
		BootstrappingPeriod:  72,
		InitialStakeMultiple: 1_000_000,
		DaoExitLockupEpochs:  1,
		PoolExitLockupEpochs: 5,
		Governance: GovernanceParams{
			VotePeriod:            9,
			Expiration:            3,
			EmergencyCommitPeriod: 6,
			Quorum:                NewPercent(33),
			SuperMajority:         NewPercent(66),
			ProposalThreshold:     NewDecimal(5, 1000),
		},
		ActiveVersion: "v1",
		Versions: []*VersionedRegulatorParams{
			{
				Version:                  "v1",
				SupplyChangeLimit:        NewDecimal(54, 1000),
				MaxDebtRatio:             NewPercent(20),
				PoolLPRewardPercent:      27,
				PoolBondingRewardPercent: 63,
				TreasuryRewardPercent:    10,
			},
		},
	}
}

func NewGlobalParams(filePath string) (*GlobalParams, error) {
	if filePath == "" {
		return DefaultGlobalParams(), nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var globalParams GlobalParams
	err = json.Unmarshal(data, &globalParams)
	if err != nil {
		return nil, err
	}
	err = Validate(&globalParams)
	if err != nil {
		return nil, err
	}

	return &globalParams, nil
}

// IsBootstrapping reports whether epoch is still inside the bootstrapping period.
func (g *GlobalParams) IsBootstrapping(epoch uint64) bool {
	return epoch <= g.BootstrappingPeriod
}

// Version returns the regulator params registered under version.
func (g *GlobalParams) Version(version string) (*VersionedRegulatorParams, bool) {
	for _, v := range g.Versions {
		if v.Version == version {
			return v, true
		}
	}
	return nil, false
}

// Validate the global params
func Validate(g *GlobalParams) error {
	if g.EpochPeriod <= 0 {
		return fmt.Errorf("epoch period should be positive")
	}
	if g.EpochStart < 0 {
		return fmt.Errorf("epoch start cannot be negative")
	}
	if g.InitialStakeMultiple == 0 {
		return fmt.Errorf("initial stake multiple should be positive")
	}

	gov := g.Governance
	if gov.VotePeriod == 0 {
		return fmt.Errorf("vote period should be positive")
	}
	if gov.Quorum.IsZero() || gov.Quorum.GreaterThanOne() {
		return fmt.Errorf("quorum must be within (0, 1]")
	}
	if gov.SuperMajority.Cmp(gov.Quorum) < 0 || gov.SuperMajority.GreaterThanOne() {
		return fmt.Errorf("super majority must be within [quorum, 1]")
	}
	if gov.ProposalThreshold.GreaterThanOne() {
		return fmt.Errorf("proposal threshold cannot exceed 1")
	}

	if len(g.Versions) == 0 {
		return fmt.Errorf("global params must have at least one version")
	}

	seen := make(map[string]bool, len(g.Versions))
	for _, p := range g.Versions {
		if p.Version == "" {
			return fmt.Errorf("version name cannot be empty")
		}
		if seen[p.Version] {
			return fmt.Errorf("duplicated version %s", p.Version)
		}
		seen[p.Version] = true

		if p.SupplyChangeLimit.IsZero() || p.SupplyChangeLimit.GreaterThanOne() {
			return fmt.Errorf("version %s: supply change limit must be within (0, 1]", p.Version)
		}
		if p.MaxDebtRatio.GreaterThanOne() {
			return fmt.Errorf("version %s: max debt ratio cannot exceed 1", p.Version)
		}
		total := p.PoolLPRewardPercent + p.PoolBondingRewardPercent + p.TreasuryRewardPercent
		if total != 100 {
			return fmt.Errorf("version %s: reward percentages must add up to 100, got %d", p.Version, total)
		}
	}

	if !seen[g.ActiveVersion] {
		return fmt.Errorf("active version %s is not declared", g.ActiveVersion)
	}
	return nil
}
