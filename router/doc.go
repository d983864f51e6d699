// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires the HTTP route table. Routes use Go 1.22 method
// patterns on the standard library ServeMux; every application route is
// wrapped with request logging.
package router
