package docker

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
)

// Compose labels set by docker compose on managed containers.
const (
	composeProjectLabel = "com.docker.compose.project"
	composeServiceLabel = "com.docker.compose.service"
)

// ServiceState summarizes one stack container for status output.
type ServiceState struct {
	// Service is the compose service name.
	Service string
	// ContainerName is the container's primary name without the leading slash.
	ContainerName string
	// State is the container state (running, exited, ...).
	State string
	// Status is Docker's human-readable status line (includes health).
	Status string
	// Ports lists published host ports as host:port->containerPort entries.
	Ports []string
}

// StackInspector lists containers belonging to a compose project.
type StackInspector struct {
	client client.APIClient
}

// NewStackInspector creates an inspector backed by the given Docker client.
func NewStackInspector(apiClient client.APIClient) *StackInspector {
	return &StackInspector{client: apiClient}
}

// ListServices returns the states of all containers labeled with the given
// compose project, sorted by service name.
func (si *StackInspector) ListServices(
	ctx context.Context,
	project string,
) ([]ServiceState, error) {
	filterArgs := filters.NewArgs()
	filterArgs.Add("label", composeProjectLabel+"="+project)

	containers, err := si.client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("list containers for project %s: %w", project, err)
	}

	states := make([]ServiceState, 0, len(containers))
	for _, ctr := range containers {
		states = append(states, summarize(ctr))
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].Service < states[j].Service
	})

	return states, nil
}

func summarize(ctr container.Summary) ServiceState {
	state := ServiceState{
		Service: ctr.Labels[composeServiceLabel],
		State:   ctr.State,
		Status:  ctr.Status,
		Ports:   publishedPorts(ctr.Ports),
	}

	if len(ctr.Names) > 0 {
		name := ctr.Names[0]
		if len(name) > 0 && name[0] == '/' {
			name = name[1:]
		}

		state.ContainerName = name
	}

	return state
}

// publishedPorts renders port bindings with published host ports, deduplicated
// and sorted.
func publishedPorts(ports []container.Port) []string {
	seen := make(map[string]struct{}, len(ports))
	out := make([]string, 0, len(ports))

	for _, port := range ports {
		if port.PublicPort == 0 {
			continue
		}

		hostAddr := net.JoinHostPort(port.IP, strconv.Itoa(int(port.PublicPort)))
		private := nat.Port(fmt.Sprintf("%d/%s", port.PrivatePort, port.Type))
		entry := fmt.Sprintf("%s->%s", hostAddr, private)

		if _, ok := seen[entry]; ok {
			continue
		}

		seen[entry] = struct{}{}
		out = append(out, entry)
	}

	sort.Strings(out)

	return out
}
