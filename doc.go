// Package auth is the authentication and authorization core for the
// LeagueLogik league management system: credential verification with
// brute-force lockout, JWT access/refresh token issuance, and role-based
// access checks with single-level role inheritance.
//
// Member lifecycle:
//   - Members carry a MemberStatus field that is persisted via Bun. Only
//     active members can authenticate; inactive members are refused with the
//     same external outcome as a bad password.
//   - Failed logins are counted per member. After the lockout threshold of
//     consecutive failures the account is locked for the lockout window; the
//     lock expires lazily on the next check, there is no background timer.
//
// Tokens:
//   - TokenService signs short-lived access tokens and longer-lived refresh
//     tokens (marked with a type=refresh claim). Tokens are stateless and
//     trusted until expiry; there is no server-side revocation list.
//
// Roles:
//   - A member holds at most one AdminRole tag. ExpandRoles computes the
//     effective capability set: admin implies every role, any other tag
//     implies only itself. Guards compare the expanded set against an
//     endpoint's requirements.
package auth
