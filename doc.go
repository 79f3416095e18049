// Package pfm provides the types and functions for managing a personal
// ledger of financial transactions backed by a single delimited text file
// held in object storage.
//
// The core functionalities include:
//   - Record Model: a validated Transaction record with an opaque unique
//     identifier, a kind (income or expense), an exact decimal amount, a
//     free-form category and a calendar date.
//   - Normalization: parsing a semi-structured ';'-delimited table into a
//     canonical record set, repairing missing identifiers and filtering
//     out rows with malformed numeric or date fields.
//   - Ledger Store: a per-process cached snapshot of the record set with
//     consistent add/update/delete mutations, each ending in one full
//     rewrite of the backing blob.
//   - Query Engine: filter predicates and aggregations (totals, grouped
//     sums, filtered listings) applied over the record set.
//
// This package serves as the foundational logic for the `pfm` command-line
// tool and its assistant, ensuring that all operations are consistent and
// based on a single source of truth.
package pfm
