package service

import (
	"testing"

	"talent-be/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPercentOfCents(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		percent int
		want    int64
	}{
		{name: "exact division", amount: 1000, percent: 5, want: 50},
		{name: "rounds half up", amount: 1010, percent: 5, want: 51}, // 50.5 -> 51
		{name: "rounds down below half", amount: 1008, percent: 5, want: 50}, // 50.4 -> 50
		{name: "zero amount", amount: 0, percent: 35, want: 0},
		{name: "zero percent", amount: 12345, percent: 0, want: 0},
		{name: "full percent", amount: 12345, percent: 100, want: 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, percentOfCents(tt.amount, tt.percent))
		})
	}
}

func TestSplitRevenueWithTier(t *testing.T) {
	settings := &domain.Settings{SalesTaxPercent: 5, PlatformFeePercent: 30}
	tier := &domain.HostingTier{RevenueSharePercent: 35}

	// 1500 gross: tax 75, net 1425, host 499 (498.75 rounds up), platform 926
	split := splitRevenue(1500, settings.SalesTaxPercent, tier, settings)

	assert.Equal(t, int64(75), split.TaxCents)
	assert.Equal(t, int64(1425), split.NetCents)
	assert.Equal(t, int64(499), split.HostShareCents)
	assert.Equal(t, int64(926), split.PlatformShareCents)
	assert.Equal(t, 35, split.SharePercent)
}

func TestSplitRevenueWithoutTierFallsBackToPlatformFee(t *testing.T) {
	settings := &domain.Settings{SalesTaxPercent: 10, PlatformFeePercent: 30}

	// 2000 gross: tax 200, net 1800, platform fee 540, host 1260
	split := splitRevenue(2000, settings.SalesTaxPercent, nil, settings)

	assert.Equal(t, int64(200), split.TaxCents)
	assert.Equal(t, int64(1800), split.NetCents)
	assert.Equal(t, int64(1260), split.HostShareCents)
	assert.Equal(t, int64(540), split.PlatformShareCents)
	assert.Equal(t, 70, split.SharePercent)
}

func TestSplitRevenueIdentityHolds(t *testing.T) {
	settings := &domain.Settings{SalesTaxPercent: 7, PlatformFeePercent: 30}

	// The split must account for every cent of gross, across awkward amounts
	// with and without a tier
	amounts := []int64{0, 1, 99, 100, 101, 1500, 33333, 999999}
	tiers := []*domain.HostingTier{nil, {RevenueSharePercent: 33}, {RevenueSharePercent: 100}, {RevenueSharePercent: 0}}

	for _, gross := range amounts {
		for _, tier := range tiers {
			split := splitRevenue(gross, settings.SalesTaxPercent, tier, settings)
			assert.Equal(t, gross, split.TaxCents+split.HostShareCents+split.PlatformShareCents,
				"gross %d must equal tax+host+platform", gross)
			assert.GreaterOrEqual(t, split.HostShareCents, int64(0))
			assert.GreaterOrEqual(t, split.PlatformShareCents, int64(0))
		}
	}
}

func TestSplitRevenueZeroTax(t *testing.T) {
	settings := &domain.Settings{SalesTaxPercent: 0, PlatformFeePercent: 20}

	split := splitRevenue(1000, settings.SalesTaxPercent, nil, settings)
	assert.Equal(t, int64(0), split.TaxCents)
	assert.Equal(t, int64(1000), split.NetCents)
	assert.Equal(t, int64(800), split.HostShareCents)
	assert.Equal(t, int64(200), split.PlatformShareCents)
}
