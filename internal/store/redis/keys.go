package redis

const (
	// KeyPrefixFavicon is the prefix for resolved favicon URL keys
	KeyPrefixFavicon = "anchormarks:favicon:"
)

// FaviconKey returns the Redis key for a host's resolved favicon URL
func FaviconKey(host string) string {
	return KeyPrefixFavicon + host
}
