package scripts

// scaffolds are the built-in template bodies, materialized verbatim by
// MaterializeTemplate.
var scaffolds = map[string]string{
	"docker": `FROM alpine:latest

LABEL maintainer="Your Name <your.email@example.com>"

RUN apk --no-cache add ca-certificates

WORKDIR /app

COPY . .

CMD ["sh"]
`,
	"terraform": `provider "aws" {
  region = "us-west-2"
}

resource "aws_instance" "example" {
  ami           = "ami-0c55b159cbfafe1f0"
  instance_type = "t2.micro"

  tags = {
    Name = "example-instance"
  }
}
`,
	"kubernetes": `apiVersion: apps/v1
kind: Deployment
metadata:
  name: nginx-deployment
  labels:
    app: nginx
spec:
  replicas: 3
  selector:
    matchLabels:
      app: nginx
  template:
    metadata:
      labels:
        app: nginx
    spec:
      containers:
      - name: nginx
        image: nginx:1.14.2
        ports:
        - containerPort: 80
`,
	"ansible": `---
- name: Example Playbook
  hosts: all
  become: yes
  tasks:
    - name: Ensure a package is installed
      apt:
        name: nginx
        state: present
      when: ansible_os_family == "Debian"

    - name: Ensure a service is running
      service:
        name: nginx
        state: started
        enabled: yes
`,
}
