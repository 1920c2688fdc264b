// Package reports aggregates transaction sets into report payloads.
//
// Every builder is a pure function over the data it is handed: nothing is
// read from or written to the database, so reports are safe for unbounded
// concurrent use against a consistent snapshot.
package reports

// Kind tags every report payload so consumers can match exhaustively on
// the report shape.
type Kind string

const (
	KindOverdue   Kind = "overdue"
	KindRevenue   Kind = "revenue"
	KindFinancial Kind = "financial"
	KindDRE       Kind = "dre"
)
