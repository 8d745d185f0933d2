// Package jwtclaims reads the bearer tokens issued by the Ticketbox IAM service.
//
// It has two entry points with very different guarantees:
//
//   - Codec (and the DecodeJWT / IsTokenExpired helpers) decodes the payload
//     segment of a compact JWT WITHOUT verifying its signature. Anyone can forge
//     a token that decodes cleanly. Use it only for display and routing hints,
//     for example to show the organizer name or to send a user with a stale
//     cookie back through login. Never use decoded claims to authorize anything.
//
//   - Verifier checks the signature, algorithm, and expiry. It is the only
//     trust boundary in this package, and the gin and gRPC middleware that
//     gate access are built on it.
//
// Both return the same Claims type.
package jwtclaims
