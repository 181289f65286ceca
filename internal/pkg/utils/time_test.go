package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDateAndClock(t *testing.T) {
	t.Run("Builds UTC Instant", func(t *testing.T) {
		day, err := ParseDateOnly("2025-03-10")
		require.NoError(t, err)

		instant, err := CombineDateAndClock(day, "09:30")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), instant)
	})

	t.Run("Invalid Clock Fails", func(t *testing.T) {
		day, err := ParseDateOnly("2025-03-10")
		require.NoError(t, err)

		_, err = CombineDateAndClock(day, "9:30am")
		assert.Error(t, err)
	})

	t.Run("Invalid Date Fails", func(t *testing.T) {
		_, err := ParseDateOnly("10-03-2025")
		assert.Error(t, err)
	})
}

func TestRangesOverlap(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Touching Ranges Do Not Overlap", func(t *testing.T) {
		assert.False(t, RangesOverlap(base, base.Add(30*time.Minute), base.Add(30*time.Minute), base.Add(time.Hour)))
	})

	t.Run("Contained Range Overlaps", func(t *testing.T) {
		assert.True(t, RangesOverlap(base, base.Add(time.Hour), base.Add(15*time.Minute), base.Add(30*time.Minute)))
	})

	t.Run("Disjoint Ranges Do Not Overlap", func(t *testing.T) {
		assert.False(t, RangesOverlap(base, base.Add(30*time.Minute), base.Add(time.Hour), base.Add(2*time.Hour)))
	})
}

func TestGenerateOTP(t *testing.T) {
	t.Run("Has Requested Length", func(t *testing.T) {
		otp, err := GenerateOTP(6)
		require.NoError(t, err)
		assert.Len(t, otp, 6)
	})

	t.Run("Digits Only", func(t *testing.T) {
		otp, err := GenerateOTP(6)
		require.NoError(t, err)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9', "OTP must contain digits only, got %q", c)
		}
	})
}

func TestSessionJWTRoundTrip(t *testing.T) {
	const secret = "test-secret"

	t.Run("Parse Returns Original Session ID", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-abc", secret, 1)
		require.NoError(t, err)

		sessionID, err := ParseSessionJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "session-abc", sessionID)
	})

	t.Run("Wrong Secret Fails", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-abc", secret, 1)
		require.NoError(t, err)

		_, err = ParseSessionJWT(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("Garbage Token Fails", func(t *testing.T) {
		_, err := ParseSessionJWT("not.a.token", secret)
		assert.Error(t, err)
	})
}
