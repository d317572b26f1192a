package statutory

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrTableVersionMissing = errors.New("statutory table version not loaded")

// TaxBracket - one band of the progressive resident tax table.
// UpTo is the cumulative chargeable income ceiling of the band; the
// last band has UpTo zero and applies to everything above the rest.
type TaxBracket struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// Tables - versioned statutory rates and reliefs, loaded once per
// process. Every computed payroll item records the version that
// produced its numbers.
type Tables struct {
	Version string

	// EPF
	EPFEmployeeRate          decimal.Decimal // below 60, Malaysian
	EPFEmployerRateLow       decimal.Decimal // wages <= EPFEmployerWageStep
	EPFEmployerRateHigh      decimal.Decimal // wages > EPFEmployerWageStep
	EPFEmployerWageStep      decimal.Decimal
	EPFSeniorEmployerRate    decimal.Decimal // Malaysian, 60 and above
	EPFSeniorForeignEmpRate  decimal.Decimal
	EPFSeniorForeignErRate   decimal.Decimal
	EPFForeignerEmployerFlat decimal.Decimal // below 60 opt-in
	EPFMaxVoluntaryRate      decimal.Decimal

	// SOCSO
	SocsoWageCeiling        decimal.Decimal
	SocsoBracketWidth       decimal.Decimal
	SocsoEmployeeRate       decimal.Decimal
	SocsoEmployerRate       decimal.Decimal
	SocsoSeniorEmployerRate decimal.Decimal // category 2, employer only

	// EIS
	EISRate        decimal.Decimal
	EISWageCeiling decimal.Decimal

	// PCB reliefs and rebates
	PersonalRelief      decimal.Decimal
	SpouseRelief        decimal.Decimal
	ChildRelief         decimal.Decimal
	EPFReliefCap        decimal.Decimal
	TaxRebate           decimal.Decimal
	RebateIncomeCeiling decimal.Decimal
	TaxBrackets         []TaxBracket
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("statutory: bad table constant %q: %v", s, err))
	}
	return v
}

var tableVersions = map[string]*Tables{
	"2025-01": {
		Version: "2025-01",

		EPFEmployeeRate:          d("0.11"),
		EPFEmployerRateLow:       d("0.12"),
		EPFEmployerRateHigh:      d("0.13"),
		EPFEmployerWageStep:      d("5000"),
		EPFSeniorEmployerRate:    d("0.04"),
		EPFSeniorForeignEmpRate:  d("0.055"),
		EPFSeniorForeignErRate:   d("0.065"),
		EPFForeignerEmployerFlat: d("5.00"),
		EPFMaxVoluntaryRate:      d("0.20"),

		SocsoWageCeiling:        d("6000"),
		SocsoBracketWidth:       d("100"),
		SocsoEmployeeRate:       d("0.005"),
		SocsoEmployerRate:       d("0.0175"),
		SocsoSeniorEmployerRate: d("0.0125"),

		EISRate:        d("0.002"),
		EISWageCeiling: d("6000"),

		PersonalRelief:      d("9000"),
		SpouseRelief:        d("4000"),
		ChildRelief:         d("2000"),
		EPFReliefCap:        d("4000"),
		TaxRebate:           d("400"),
		RebateIncomeCeiling: d("35000"),
		TaxBrackets: []TaxBracket{
			{UpTo: d("5000"), Rate: d("0")},
			{UpTo: d("20000"), Rate: d("0.01")},
			{UpTo: d("35000"), Rate: d("0.03")},
			{UpTo: d("50000"), Rate: d("0.06")},
			{UpTo: d("70000"), Rate: d("0.11")},
			{UpTo: d("100000"), Rate: d("0.19")},
			{UpTo: d("400000"), Rate: d("0.25")},
			{UpTo: d("600000"), Rate: d("0.26")},
			{UpTo: d("2000000"), Rate: d("0.28")},
			{UpTo: decimal.Zero, Rate: d("0.30")},
		},
	},
}

// Load returns the tables for a version identifier.
func Load(version string) (*Tables, error) {
	t, ok := tableVersions[version]
	if !ok {
		return nil, fmt.Errorf("version %q: %w", version, ErrTableVersionMissing)
	}
	return t, nil
}

// DefaultVersion is used when the environment does not pin one.
const DefaultVersion = "2025-01"
