// Package cryptotracker provides the core types and engines for
// tracking a personal crypto portfolio. It is designed to be
// local-first and auditable, so users keep full control and
// transparency over their trading history.
//
// The core functionalities include:
//   - Ledger Management: recording exchange operations (deposits,
//     trades, fees, staking movements and interest) in an append-only,
//     per-coin record with deterministic transaction identities.
//   - Import Validation: atomic batch validation of untrusted entries
//     covering coin registry lookups, quantity sign rules and
//     duplicate detection with an operator-managed allow-list.
//   - Analytics: a staged, per-coin pipeline deriving balances, fee
//     costs, staking earnings and FIFO gain/loss figures, frozen into
//     immutable snapshots.
//   - Data Persistence: encoding and decoding the ledger to and from a
//     human-readable, version-controllable JSONL file.
//
// This package serves as the foundational logic for the `ctk`
// command-line tool; market data access, statement imports and
// rendering live in the subpackages.
package cryptotracker
