package gateway

// The gateway SDK expects amounts in minor units (paise for INR). Everything
// else in this service works in whole currency units; this file is the only
// place the conversion happens.

const minorUnitFactor = 100

func toMinorUnits(amount int64) int64 {
	return amount * minorUnitFactor
}
