package keysource

import "errors"

// EnvVar is where integration runs expect the test private key.
const EnvVar = "DORMBACK_TEST_PRIVATE_KEY"

// ErrKeyRequired is returned when integration mode runs without the
// required key material. The harness fails fast instead of generating
// a key silently.
var ErrKeyRequired = errors.New("keysource: " + EnvVar + " required for integration runs")
