package fetch

import "errors"

var (
	// ErrInvalidProxyAddress is returned when the proxy address is not
	// "host:port" or a socks5:// URL with a valid port.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: expected host:port or socks5://host:port")

	// ErrUnsupportedProxyScheme is returned for proxy URLs that are not
	// socks5:// or socks5h://.
	ErrUnsupportedProxyScheme = errors.New("unsupported proxy scheme: only socks5 is supported")
)
