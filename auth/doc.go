// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifier utilities.

There is no voter or creator authentication in this service: voter and
requester identifiers are opaque, caller-supplied strings compared
verbatim by the ledger. What lives here instead:

  - GenerateID: random hex IDs (used for option IDs)
  - HashIP: salted one-way IP hashing for privacy-preserving
    connection logs

Poll and vote IDs use github.com/google/uuid directly.
*/
package auth
