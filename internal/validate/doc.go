// Package validate normalizes loosely-specified user input before it is
// handed to the upstream energy APIs: UK postcodes are reduced to their
// outward code, and ISO-8601-ish date and datetime strings are parsed
// against a fixed allow-list of layouts.
//
// All functions are pure and total. They never panic and never perform
// I/O; malformed input is reported through a single sentinel error per
// input kind so callers can present one generic message.
package validate
