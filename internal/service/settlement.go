package service

import "talent-be/internal/domain"

// percentOfCents computes amount*percent/100 in integer cents, rounding
// half up for determinism across platforms. Amounts are never negative.
func percentOfCents(amountCents int64, percent int) int64 {
	return (amountCents*int64(percent) + 50) / 100
}

// settlementSplit is the reconciled money split for a competition's gross
// revenue. gross == tax + host + platform always holds exactly.
type settlementSplit struct {
	TaxCents           int64
	NetCents           int64
	HostShareCents     int64
	PlatformShareCents int64
	SharePercent       int
}

// splitRevenue applies tax on gross, then divides the net between host and
// platform. The hosting tier's revenue share is authoritative; the global
// platform fee is consulted only when the competition has no resolved tier.
// The two are never applied to the same settlement.
func splitRevenue(grossCents int64, salesTaxPercent int, tier *domain.HostingTier, settings *domain.Settings) settlementSplit {
	tax := percentOfCents(grossCents, salesTaxPercent)
	net := grossCents - tax

	var host int64
	var sharePercent int
	if tier != nil {
		sharePercent = tier.RevenueSharePercent
		host = percentOfCents(net, sharePercent)
	} else {
		sharePercent = 100 - settings.PlatformFeePercent
		host = net - percentOfCents(net, settings.PlatformFeePercent)
	}

	return settlementSplit{
		TaxCents:           tax,
		NetCents:           net,
		HostShareCents:     host,
		PlatformShareCents: net - host,
		SharePercent:       sharePercent,
	}
}
