package booking

import (
    "crypto/rand"
    "errors"
)

// Confirmation codes are short public identifiers handed to the
// customer, so the alphabet omits characters that are easy to
// confuse when read aloud or written down (0/O, 1/I/L).
const (
    codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
    CodeLength   = 8

    // MaxCodeAttempts bounds how many times a caller should retry
    // generation after a uniqueness collision before giving up and
    // surfacing a server failure.
    MaxCodeAttempts = 5
)

// ErrCodeExhausted is returned when confirmation code generation
// collides MaxCodeAttempts times in a row.  At 31^8 possible codes
// this indicates a store problem rather than bad luck.
var ErrCodeExhausted = errors.New("confirmation code generation exhausted retries")

// NewConfirmationCode returns a random CodeLength-character code
// drawn from the unambiguous alphabet using crypto/rand.
// Uniqueness is not checked here; the store's unique index on
// bookings.confirmation_code is the authority and callers retry on
// a duplicate-key error.
func NewConfirmationCode() (string, error) {
    buf := make([]byte, CodeLength)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    for i, b := range buf {
        buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
    }
    return string(buf), nil
}
