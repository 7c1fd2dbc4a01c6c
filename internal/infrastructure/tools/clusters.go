package tools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const kubectlTimeout = 5 * time.Second

// dockerInfo builds a sectioned report on the local Docker daemon.
func dockerInfo(ctx context.Context, _ []string) (string, error) {
	version, err := runTool(ctx, 0, "docker", "--version")
	if err != nil {
		return "", fmt.Errorf("docker is not installed or not reachable")
	}

	var sb strings.Builder
	writeSection(&sb, "docker", version)
	for _, section := range []struct {
		title string
		args  []string
	}{
		{"daemon", []string{"info"}},
		{"containers", []string{"ps", "-a"}},
		{"images", []string{"images"}},
	} {
		out, err := runTool(ctx, 0, "docker", section.args...)
		if err != nil {
			out = "unavailable: " + err.Error()
		}
		writeSection(&sb, section.title, out)
	}
	return sb.String(), nil
}

// k8sInfo builds a sectioned report on the current cluster. Each kubectl
// call is bounded so an unreachable apiserver cannot hang the session.
func k8sInfo(ctx context.Context, _ []string) (string, error) {
	version, err := runTool(ctx, 0, "kubectl", "version", "--client")
	if err != nil {
		return "", fmt.Errorf("kubectl is not installed or not reachable")
	}

	var sb strings.Builder
	writeSection(&sb, "kubectl", version)
	for _, section := range []struct {
		title string
		args  []string
	}{
		{"nodes", []string{"get", "nodes"}},
		{"pods", []string{"get", "pods", "--all-namespaces"}},
		{"deployments", []string{"get", "deployments", "--all-namespaces"}},
		{"services", []string{"get", "services", "--all-namespaces"}},
	} {
		out, err := runTool(ctx, kubectlTimeout, "kubectl", section.args...)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return sb.String(), fmt.Errorf("kubectl timed out; is the cluster reachable?")
			}
			out = "unavailable: " + err.Error()
		}
		writeSection(&sb, section.title, out)
	}
	return sb.String(), nil
}

func writeSection(sb *strings.Builder, title, body string) {
	fmt.Fprintf(sb, "=== %s ===\n%s\n\n", title, strings.TrimSpace(body))
}

func runTool(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return string(out), ctx.Err()
		}
		return string(out), err
	}
	return string(out), nil
}
