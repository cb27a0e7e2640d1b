// Package client talks to the MadHelp REST backend.
//
// # Overview
//
//  1. Client is the transport-agnostic API contract used by the services:
//     Ping, Signup, Login, Refresh, GetAccount, UpdateProfile,
//     UpdatePassword, ListFaculty and DownloadFile.
//  2. HTTPClient implements it over net/http. Authenticated calls carry the
//     stored access token as a Bearer credential. A 401 triggers exactly
//     one refresh through POST /api/token/refresh, after which the original
//     request is rebuilt and replayed once. If the refresh cannot happen,
//     both stored credentials are cleared and ErrSessionExpired is returned.
//     A 422 (token rejected as malformed) clears them without a refresh.
//  3. InitDatabase / RunMigrations bootstrap the local SQLite database that
//     backs the CredentialStore.
//
// # Error handling
//
// Non-2xx responses become *APIError, which matches ErrUnauthorized,
// ErrNotFound and ErrUnavailable through errors.Is. Transport failures are
// wrapped in ErrUnavailable.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. Refreshes are serialised, so a
// background ping and a foreground command never spend the same refresh
// token twice.
package client
