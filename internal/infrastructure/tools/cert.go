package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// generateSSLCert shells out to openssl for a one-year self-signed pair.
func generateSSLCert(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("generate_ssl_cert needs a domain name")
	}
	domain := args[0]
	outputDir := ""
	if len(args) > 1 {
		outputDir = args[1]
	}
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		outputDir = wd
	}

	keyFile := filepath.Join(outputDir, domain+".key")
	certFile := filepath.Join(outputDir, domain+".crt")

	out, err := runTool(ctx, 0, "openssl",
		"req", "-x509", "-nodes", "-days", "365",
		"-newkey", "rsa:2048",
		"-keyout", keyFile,
		"-out", certFile,
		"-subj", "/CN="+domain,
	)
	if err != nil {
		return "", fmt.Errorf("openssl failed: %v\n%s", err, strings.TrimSpace(out))
	}

	return fmt.Sprintf(
		"self-signed certificate generated:\n- key: %s\n- cert: %s\n- valid: 365 days\n- domain: %s",
		keyFile, certFile, domain,
	), nil
}
