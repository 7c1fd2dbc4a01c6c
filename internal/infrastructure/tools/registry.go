// Package tools implements the built-in devops tools reachable from model
// replies and the /tools builtin.
package tools

import (
	"context"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

type toolFunc func(ctx context.Context, args []string) (string, error)

type tool struct {
	info domain.ToolInfo
	run  toolFunc
}

// Registry dispatches tool invocations by name.
type Registry struct {
	order []string
	tools map[string]tool
}

// NewRegistry builds the registry with every built-in tool.
func NewRegistry() *Registry {
	r := &Registry{tools: make(map[string]tool)}
	r.register(domain.ToolInfo{
		Name:    "monitor_resources",
		Summary: "Sample CPU, memory and disk usage for a few seconds",
		Usage:   "monitor_resources [seconds]",
	}, monitorResources)
	r.register(domain.ToolInfo{
		Name:    "analyze_logs",
		Summary: "Slice a log file and filter it for a pattern",
		Usage:   "analyze_logs <file> [pattern] [tail=N|head=N]",
	}, analyzeLogs)
	r.register(domain.ToolInfo{
		Name:    "docker_info",
		Summary: "Report Docker version, containers and images",
		Usage:   "docker_info",
	}, dockerInfo)
	r.register(domain.ToolInfo{
		Name:    "k8s_info",
		Summary: "Report cluster nodes, pods, deployments and services",
		Usage:   "k8s_info",
	}, k8sInfo)
	r.register(domain.ToolInfo{
		Name:    "network_scan",
		Summary: "Ping a host and probe its common ports",
		Usage:   "network_scan <host>",
	}, networkScan)
	r.register(domain.ToolInfo{
		Name:    "generate_ssl_cert",
		Summary: "Create a self-signed certificate with openssl",
		Usage:   "generate_ssl_cert <domain> [output-dir]",
	}, generateSSLCert)
	return r
}

var _ ports.ToolRunner = (*Registry)(nil)

func (r *Registry) register(info domain.ToolInfo, fn toolFunc) {
	r.order = append(r.order, info.Name)
	r.tools[info.Name] = tool{info: info, run: fn}
}

// Run executes the named tool.
func (r *Registry) Run(ctx context.Context, name string, args []string) (string, error) {
	t, ok := r.tools[canonicalName(name)]
	if !ok {
		return "", &domain.UnknownToolError{Name: name, Known: r.names()}
	}
	return t.run(ctx, args)
}

// Tools lists the registered tools in registration order.
func (r *Registry) Tools() []domain.ToolInfo {
	infos := make([]domain.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, r.tools[name].info)
	}
	return infos
}

func (r *Registry) names() []string {
	return append([]string(nil), r.order...)
}

// canonicalName also accepts the historic misspelling some models emit.
func canonicalName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "monitor_ressources" {
		return "monitor_resources"
	}
	return name
}
