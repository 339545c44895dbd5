package entity

import (
	"regexp"
	"strings"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
)

// Network represents a supported Ghanaian mobile-money network
type Network string

// Supported networks. Telecel is the rebranded Vodafone Ghana; both names are
// accepted and map to the same provider channel.
const (
	NetworkMTN        Network = "mtn"
	NetworkVodafone   Network = "vodafone"
	NetworkTelecel    Network = "telecel"
	NetworkAirtelTigo Network = "airteltigo"
)

// Provider channel codes understood by the gateway
const (
	ChannelMTN        = "mtn"
	ChannelVodafone   = "vod"
	ChannelAirtelTigo = "atl"
)

// ghanaMobilePattern matches a normalized Ghanaian mobile number:
// +233 followed by a 9-digit subscriber number starting with 2 or 5
var ghanaMobilePattern = regexp.MustCompile(`^\+233[25]\d{8}$`)

// NormalizePhone converts a Ghanaian mobile number to international +233
// format and validates it. Accepted inputs: "0241234567", "233241234567",
// "+233241234567", with or without spaces and dashes.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
	if cleaned == "" {
		return "", errs.ErrInvalidPhone
	}

	switch {
	case strings.HasPrefix(cleaned, "+233"):
		// already international
	case strings.HasPrefix(cleaned, "233"):
		cleaned = "+" + cleaned
	case strings.HasPrefix(cleaned, "0"):
		cleaned = "+233" + cleaned[1:]
	default:
		return "", errs.ErrInvalidPhone
	}

	if !ghanaMobilePattern.MatchString(cleaned) {
		return "", errs.ErrInvalidPhone
	}
	return cleaned, nil
}

// ParseNetwork validates a network name and returns the canonical Network
func ParseNetwork(network string) (Network, error) {
	switch Network(strings.ToLower(strings.TrimSpace(network))) {
	case NetworkMTN:
		return NetworkMTN, nil
	case NetworkVodafone:
		return NetworkVodafone, nil
	case NetworkTelecel:
		return NetworkTelecel, nil
	case NetworkAirtelTigo:
		return NetworkAirtelTigo, nil
	default:
		return "", errs.ErrInvalidNetwork
	}
}

// ChannelCode maps a network to the gateway's mobile-money channel code
func (n Network) ChannelCode() string {
	switch n {
	case NetworkVodafone, NetworkTelecel:
		return ChannelVodafone
	case NetworkAirtelTigo:
		return ChannelAirtelTigo
	default:
		return ChannelMTN
	}
}
