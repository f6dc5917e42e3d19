package ratelimit

// defaultEndpoint is the bucket key for every request without its own
// endpoint entry, so unrouted paths share one bucket per client.
const defaultEndpoint = "default"

// MatchEndpoint returns the entry for method and path, or nil. Paths match
// exactly; the survey API has no parameterised routes.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}
	return nil
}

// bucketKey names the bucket a request draws from.
func bucketKey(clientID string, matched *EndpointConfig) string {
	if matched == nil {
		return clientID + ":" + defaultEndpoint
	}
	return clientID + ":" + matched.Method + " " + matched.Path
}
