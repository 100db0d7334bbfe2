// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP request handling functionality for gramrelay.

Route definitions are centralized in the DefineRoutes function in the router
package, which sets up all paths and their corresponding handlers.
*/
package middleware
