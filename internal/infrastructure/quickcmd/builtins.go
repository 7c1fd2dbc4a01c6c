package quickcmd

// builtinCommands is the stock quick-command table. Templates may contain
// {name} placeholders bound from directive arguments; user-configured
// commands shadow entries of the same name.
var builtinCommands = map[string]string{
	// Service management
	"service-status":  "systemctl status {service}",
	"service-start":   "systemctl start {service}",
	"service-stop":    "systemctl stop {service}",
	"service-restart": "systemctl restart {service}",
	"service-enable":  "systemctl enable {service}",
	"service-disable": "systemctl disable {service}",
	"service-list":    "systemctl list-units --type=service",

	// System monitoring
	"cpu-info":      "lscpu",
	"mem-info":      "free -h",
	"disk-usage":    "df -h",
	"top-processes": "ps aux | sort -nrk 3,3 | head -n 10",
	"check-port":    "ss -tuln | grep {port}",
	"cpu-load":      "mpstat 1 5",
	"io-stats":      "iostat -xz 1 5",

	// Network
	"ping-host":   "ping -c 4 {host}",
	"check-ip":    "ip addr show",
	"route-table": "ip route",
	"dns-lookup":  "dig {domain}",
	"open-ports":  "netstat -tuln",
	"traceroute":  "traceroute {host}",

	// Docker
	"docker-ps":     "docker ps",
	"docker-images": "docker images",
	"docker-stats":  "docker stats --no-stream",
	"docker-prune":  "docker system prune -f",

	// Kubernetes
	"k8s-pods":        "kubectl get pods",
	"k8s-nodes":       "kubectl get nodes",
	"k8s-deployments": "kubectl get deployments",
	"k8s-services":    "kubectl get services",

	// Logs
	"logs-system":  "journalctl -xe",
	"logs-service": "journalctl -u {service} -f",
	"logs-auth":    "tail -n 50 /var/log/auth.log",
	"logs-kernel":  "dmesg | tail -n 50",

	// Package management
	"apt-update":    "sudo apt update && sudo apt list --upgradable",
	"apt-upgrade":   "sudo apt upgrade -y",
	"pkg-installed": "dpkg -l | grep {package}",

	// File watching
	"find-large-files": "find {path} -type f -size +{size}M -exec ls -lh {} \\;",
	"tail-file":        "tail -f {file}",
	"find-modified":    "find {path} -type f -mtime -{days} -ls",

	// Git
	"git-status": "git status",
	"git-log":    "git log --oneline --graph --decorate -n 10",
}
