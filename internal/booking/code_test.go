package booking

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewConfirmationCodeShape(t *testing.T) {
    code, err := NewConfirmationCode()
    require.NoError(t, err)
    assert.Len(t, code, CodeLength)
    for _, r := range code {
        assert.Containsf(t, codeAlphabet, string(r), "code %q contains %q outside the alphabet", code, r)
    }
}

func TestNewConfirmationCodeOmitsAmbiguousCharacters(t *testing.T) {
    for _, bad := range []string{"0", "O", "1", "I", "L"} {
        assert.NotContains(t, codeAlphabet, bad)
    }
}

func TestNewConfirmationCodeVariety(t *testing.T) {
    // Not a uniqueness guarantee (the DB index is), but 1000 draws
    // from a 31^8 space colliding would mean the generator is broken.
    seen := make(map[string]struct{})
    for i := 0; i < 1000; i++ {
        code, err := NewConfirmationCode()
        require.NoError(t, err)
        _, dup := seen[code]
        require.Falsef(t, dup, "duplicate code %q after %d draws", code, i)
        seen[code] = struct{}{}
    }
}

func TestCodeAlphabetIsUpperAlnum(t *testing.T) {
    assert.Equal(t, strings.ToUpper(codeAlphabet), codeAlphabet)
}
