// Package models defines the core domain models for the Smart Bills client.
//
// # Models
//
//   - Bill: a utility charge published by the server. Read-only; the client
//     never writes one.
//   - PaidBill: a payment record created by the client against a Bill. Owned
//     by exactly one principal (email) and always listed scoped to the
//     authenticated user.
//   - Session: the locally persisted principal plus the refresh token used to
//     mint short-lived bearer tokens.
//   - Amount: a decimal that tolerates the server's loose typing (JSON string
//     or number) with an explicit coercion step at the boundary.
//
// # Design Principles
//
//  1. JSON tags mirror the wire format exactly (the server uses Mongo-style
//     "_id" identifiers).
//  2. Loose server types are normalized here, once, so the rest of the code
//     works with real values.
//  3. No model holds a pointer to another; relationships are ID strings.
package models
