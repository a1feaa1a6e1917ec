// Package tenantauth implements the credential lifecycle for a multi-tenant
// business registration API: account registration with derived usernames,
// password verification, and signed bearer-token issuance.
//
// Registration:
//   - RegisterTenantHandler derives the username from the email local part,
//     sets the initial password to the username, and flags the account with
//     MustChangePassword. The username is enforced unique by the Users
//     repository; a conflicting registration surfaces ErrDuplicateUsername.
//   - The tenant's business profile (names, tax id, branch, address) is
//     persisted separately, keyed by the new user id. A profile write that
//     fails after the identity committed does not undo the registration.
//
// Authentication:
//   - UserProvider verifies a username/password pair against the stored
//     bcrypt hash. Unknown usernames and wrong passwords surface the same
//     ErrMismatchedHashAndPassword so account existence never leaks.
//   - Auther.Login issues an HS256 JWT (subject = username, 10 hour window
//     by default) and reports the account's MustChangePassword state so
//     callers can gate access until the temporary password is replaced.
//
// Tokens:
//   - TokenService validates signature and expiry independently; a validly
//     signed but expired token fails with ErrTokenExpired, any signature or
//     structure problem with ErrTokenMalformed. ExtractSubject decodes the
//     subject claim without verification and must never gate access on its
//     own.
package tenantauth
