package cli

import (
	"taskhorizon/internal/core"
	"taskhorizon/internal/observability"
)

// Service instances, set during app initialization in internal/app.go.
var (
	TaskMgr   core.TaskManager
	EventLog  observability.EventLog
	BasePath  string
	StorePath string
)
