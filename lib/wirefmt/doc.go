// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

// Package wirefmt converts between the Driftline wire format and the
// client-side data shapes used by this library.
//
// The Driftline API uses snake_case field names and epoch-second
// timestamp fields with a "_ts" suffix (posted_ts, last_updated_ts).
// Untyped response data crosses two transforms on the way in:
// [CamelizeKeys] renames keys recursively to camelCase, and
// [FlattenTimestamps] converts "Ts"-suffixed numeric fields into
// time.Time values under the de-suffixed name. When the de-suffixed
// name is already taken, the converted value lands under an alternate
// "<name>Date" key instead of overwriting — response payloads are
// never lossy.
//
// Outbound parameter bags cross the boundary in the other direction:
// [Query] underscores each key and renders scalar, boolean, and slice
// values into a url.Values suitable for both direct GET requests and
// batched sub-request URLs. Both request paths use this one function
// so the naming conversion cannot drift between them.
package wirefmt
