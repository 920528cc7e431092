// Package tripledger implements the shared-expense ledger of a two-person
// trip. It is designed to be local-first: every mutation lands in a durable
// local cache before any network traffic, and the remote spreadsheet is an
// eventually-consistent mirror rather than a dependency.
//
// The core functionalities include:
//   - Ledger Management: an ordered collection of expense records, each
//     denominated in exactly one of the two tracked currencies (JPY, TWD)
//     and paid by one of the two fixed participants.
//   - Split Calculation: dividing a record's amount between the participants,
//     either evenly or with an explicit manual share, such that the two
//     shares always sum back to the amount exactly.
//   - Settlement: a pure projection netting all records of a currency into
//     the single amount one participant owes the other.
//   - Sync Reconciliation: a fire-and-forget push of local mutations to a
//     remote tabular store, and a pull that replaces the local ledger
//     wholesale when, and only when, the remote snapshot decodes cleanly.
//
// This package serves as the foundational logic for the `tlc` command-line
// tool.
package tripledger
