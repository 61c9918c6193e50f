package secrets_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/secrets"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestToken(t *testing.T) {
	t.Parallel()

	var tests = map[string]struct {
		Entropy     int
		ExpectedLen int
		ExpectErr   bool
	}{
		"default": {
			Entropy:     secrets.DefaultEntropy,
			ExpectedLen: 43,
		},
		"high": {
			Entropy:     secrets.HighEntropy,
			ExpectedLen: 86,
		},
		"zero": {
			Entropy:   0,
			ExpectErr: true,
		},
		"negative": {
			Entropy:   -1,
			ExpectErr: true,
		},
	}

	for testname, tt := range tests {
		t.Run(testname, func(t *testing.T) {
			assert := assert.New(t)

			tok, err := secrets.Token(tt.Entropy)
			if tt.ExpectErr {
				assert.Error(err)
				return
			}
			require.NoError(t, err)
			assert.Len(tok, tt.ExpectedLen)
			assert.Equal(tt.ExpectedLen, secrets.EncodedLen(tt.Entropy))
			assert.Regexp(urlSafe, tok)
		})
	}
}

func TestToken_Fresh(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for range 64 {
		tok, err := secrets.Token(secrets.DefaultEntropy)
		require.NoError(t, err)

		_, dup := seen[tok]
		assert.False(t, dup, "token %s generated twice", tok)
		seen[tok] = struct{}{}
	}
}
