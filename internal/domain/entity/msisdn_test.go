package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
)

func TestNormalizePhone(t *testing.T) {
	t.Run("Valid numbers", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"0241234567", "+233241234567"},
			{"233241234567", "+233241234567"},
			{"+233241234567", "+233241234567"},
			{"024 123 4567", "+233241234567"},
			{"024-123-4567", "+233241234567"},
			{"0551234567", "+233551234567"},
			{"0201234567", "+233201234567"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				normalized, err := NormalizePhone(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, normalized)
			})
		}
	})

	t.Run("Invalid numbers", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"", "Empty"},
			{"   ", "Whitespace"},
			{"024123456", "Too short"},
			{"02412345678", "Too long"},
			{"0141234567", "Bad subscriber prefix"},
			{"+234801234567", "Wrong country code"},
			{"abcdefghij", "Non-numeric"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := NormalizePhone(tc.input)
				assert.ErrorIs(t, err, errs.ErrInvalidPhone)
			})
		}
	})
}

func TestParseNetwork(t *testing.T) {
	t.Run("Supported networks", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected Network
		}{
			{"mtn", NetworkMTN},
			{"MTN", NetworkMTN},
			{" vodafone ", NetworkVodafone},
			{"telecel", NetworkTelecel},
			{"airteltigo", NetworkAirtelTigo},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				network, err := ParseNetwork(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, network)
			})
		}
	})

	t.Run("Unsupported networks", func(t *testing.T) {
		for _, in := range []string{"", "glo", "safaricom"} {
			_, err := ParseNetwork(in)
			assert.ErrorIs(t, err, errs.ErrInvalidNetwork)
		}
	})
}

func TestChannelCode(t *testing.T) {
	assert.Equal(t, "mtn", NetworkMTN.ChannelCode())
	assert.Equal(t, "vod", NetworkVodafone.ChannelCode())
	assert.Equal(t, "vod", NetworkTelecel.ChannelCode())
	assert.Equal(t, "atl", NetworkAirtelTigo.ChannelCode())
}
