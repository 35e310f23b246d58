package cmd

import "github.com/josephgoksu/tasktrack/store"

type backupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

type restoreResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	Backup    string `json:"backup,omitempty"`
	TaskCount int    `json:"taskCount"`
}

type doctorReport struct {
	Healthy bool            `json:"healthy"`
	Checks  []DoctorCheck   `json:"checks"`
	File    *store.FileInfo `json:"file,omitempty"`
}

type versionResponse struct {
	Version string `json:"version"`
}

type configEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}
