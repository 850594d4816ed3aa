// Package bank holds the immutable question catalog.
//
// A Bank is built once from a set of JSON definitions and never mutated;
// the Catalog wrapper publishes the active bank behind an atomic pointer
// so administrative reloads are a single swap. Loads are all-or-nothing:
// one malformed definition rejects the whole set and the previously
// active bank keeps serving.
package bank
