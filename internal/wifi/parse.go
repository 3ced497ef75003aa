package wifi

import (
	"bufio"
	"fmt"
	"strings"
)

const (
	hardwarePortPrefix = "Hardware Port: "
	devicePrefix       = "Device: "
	currentNetworkTag  = "Current Wi-Fi Network: "
	notAssociatedTag   = "You are not associated"
)

// parseHardwarePorts returns the device of the first Wi-Fi (or AirPort)
// hardware port in `networksetup -listallhardwareports` output.
func parseHardwarePorts(out string) (string, bool) {
	var port string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, hardwarePortPrefix):
			port = strings.TrimPrefix(line, hardwarePortPrefix)
		case strings.HasPrefix(line, devicePrefix):
			device := strings.TrimSpace(strings.TrimPrefix(line, devicePrefix))
			if device != "" && (strings.Contains(port, "Wi-Fi") || strings.Contains(port, "AirPort")) {
				return device, true
			}
		case line == "":
			port = ""
		}
	}
	return "", false
}

// parseAirportPower parses `networksetup -getairportpower <dev>`, which
// prints "Wi-Fi Power (en0): On".
func parseAirportPower(out string) (bool, error) {
	text := strings.TrimSpace(out)
	if strings.Contains(text, "is not a Wi-Fi interface") {
		return false, ErrNoInterface
	}
	idx := strings.LastIndex(text, ":")
	if idx < 0 {
		return false, fmt.Errorf("%w: %q", ErrUnexpectedOutput, text)
	}
	switch strings.ToLower(strings.TrimSpace(text[idx+1:])) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnexpectedOutput, text)
	}
}

// parseAirportNetwork parses `networksetup -getairportnetwork <dev>`.
// It returns "" when no network is associated.
func parseAirportNetwork(out string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, currentNetworkTag) {
			return strings.TrimPrefix(line, currentNetworkTag), nil
		}
		if strings.HasPrefix(line, notAssociatedTag) {
			return "", nil
		}
		if strings.Contains(line, "is not a Wi-Fi interface") {
			return "", ErrNoInterface
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnexpectedOutput, strings.TrimSpace(out))
}
