package main

import (
	"context"
	"fmt"

	"github.com/containers/podman/v5/pkg/bindings"
	"github.com/containers/podman/v5/pkg/bindings/containers"
	"github.com/containers/podman/v5/pkg/specgen"
	nettypes "go.podman.io/common/libnetwork/types"
)

type ContainerConfig struct {
	name    string
	image   string
	cmd     []string
	ports   map[int]int
	envVars map[string]string
}

// NewContainerConfig creates a new ContainerConfig with mandatory name and image.
func NewContainerConfig(name, image string) *ContainerConfig {
	return &ContainerConfig{
		name:    name,
		image:   image,
		ports:   make(map[int]int),
		envVars: make(map[string]string),
	}
}

// WithPort adds a port mapping (hostPort -> containerPort).
func (c *ContainerConfig) WithPort(hostPort, containerPort int) *ContainerConfig {
	c.ports[hostPort] = containerPort
	return c
}

// WithEnvVar adds a single environment variable.
func (c *ContainerConfig) WithEnvVar(key, value string) *ContainerConfig {
	c.envVars[key] = value
	return c
}

// WithCmd sets the command to run in the container.
func (c *ContainerConfig) WithCmd(cmd ...string) *ContainerConfig {
	c.cmd = cmd
	return c
}

type PodmanRunner struct {
	conn context.Context
}

func NewPodmanRunner(socket string) (*PodmanRunner, error) {
	conn, err := bindings.NewConnection(context.Background(), socket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to podman: %w", err)
	}
	return &PodmanRunner{conn: conn}, nil
}

func (p *PodmanRunner) StartContainer(cfg *ContainerConfig) (string, error) {
	s := specgen.NewSpecGenerator(cfg.image, false)
	s.Name = cfg.name
	s.Command = cfg.cmd
	s.Env = cfg.envVars
	// Host networking keeps MySQL reachable on localhost:3306 for both the
	// WordPress container and the test process.
	s.NetNS = specgen.Namespace{NSMode: specgen.Host}

	if len(cfg.ports) > 0 {
		s.PortMappings = make([]nettypes.PortMapping, 0, len(cfg.ports))
		for hostPort, containerPort := range cfg.ports {
			s.PortMappings = append(s.PortMappings, nettypes.PortMapping{
				HostPort:      uint16(hostPort),
				ContainerPort: uint16(containerPort),
				Protocol:      "tcp",
			})
		}
	}

	createResponse, err := containers.CreateWithSpec(p.conn, s, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := containers.Start(p.conn, createResponse.ID, nil); err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	return createResponse.ID, nil
}

func (p *PodmanRunner) StopContainer(id string) error {
	if err := containers.Stop(p.conn, id, nil); err != nil {
		return fmt.Errorf("failed to stop container: %w", err)
	}
	return nil
}

func (p *PodmanRunner) RemoveContainer(id string) error {
	force := true
	if _, err := containers.Remove(p.conn, id, &containers.RemoveOptions{Force: &force}); err != nil {
		return fmt.Errorf("failed to remove container: %w", err)
	}
	return nil
}
