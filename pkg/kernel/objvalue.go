package kernel

type PositionTitle string

// Money is a monetary amount in the currency's major unit. Salaries on the
// platform are whole figures (e.g. 500000 NGN), so no minor-unit scaling.
type Money int64

type AgencyName string
