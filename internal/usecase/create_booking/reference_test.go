package create_booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReference_Format(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	reference, err := generateReference(date)
	require.NoError(t, err)

	parts := strings.Split(reference, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "FB", parts[0])
	assert.Equal(t, "20260831", parts[1])
	assert.Len(t, parts[2], referenceRandomLength)
}

func TestGenerateReference_CharsetExcludesAmbiguous(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		reference, err := generateReference(date)
		require.NoError(t, err)

		random := strings.TrimPrefix(reference, "FB-20260831-")
		for _, c := range random {
			assert.Contains(t, referenceCharset, string(c),
				"character %q outside the allowed charset", c)
		}
	}

	// Визуально похожие символы исключены из алфавита
	for _, banned := range []string{"0", "O", "1", "I", "L"} {
		assert.NotContains(t, referenceCharset, banned)
	}
}
