package docker

import "github.com/docker/docker/api/types/container"

// Summarize exposes container summarization for tests.
func Summarize(ctr container.Summary) ServiceState {
	return summarize(ctr)
}

// PublishedPorts exposes port rendering for tests.
func PublishedPorts(ports []container.Port) []string {
	return publishedPorts(ports)
}
