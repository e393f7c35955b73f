// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task manager operations as tools for conversational agents.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"taskhorizon/internal/core"
	"taskhorizon/pkg/models"
)

// Server wraps the task manager and exposes it as MCP tools.
type Server struct {
	server  *gomcp.Server
	taskMgr core.TaskManager
}

// NewServer creates a new MCP server over the given task manager.
func NewServer(taskMgr core.TaskManager, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{taskMgr: taskMgr}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskhorizon", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type createTaskInput struct {
	Summary         string   `json:"summary" jsonschema:"required,one sentence summary of the task"`
	Details         string   `json:"details" jsonschema:"required,detailed description of the task"`
	IsRecurring     bool     `json:"is_recurring,omitempty" jsonschema:"whether this is a recurring task"`
	DueTime         string   `json:"due_time" jsonschema:"required,due time in ISO format (YYYY-MM-DDTHH:MM:SS)"`
	RecurrenceType  string   `json:"recurrence_type,omitempty" jsonschema:"type of recurrence (daily, weekly, monthly, yearly, days, weeks, months)"`
	RecurrenceValue int      `json:"recurrence_value,omitempty" jsonschema:"number of units for days, weeks, months recurrence types"`
	AlertTimes      []string `json:"alert_times,omitempty" jsonschema:"alert times in ISO format (defaults to the due time)"`
}

type createTaskOutput struct {
	Message string `json:"message"`
}

type updateTaskInput struct {
	TaskID          string   `json:"task_id" jsonschema:"required,ID of the task to update"`
	Summary         *string  `json:"summary,omitempty" jsonschema:"new summary"`
	Details         *string  `json:"details,omitempty" jsonschema:"new details"`
	IsRecurring     *bool    `json:"is_recurring,omitempty" jsonschema:"new recurring flag"`
	RecurrenceType  *string  `json:"recurrence_type,omitempty" jsonschema:"new recurrence type"`
	RecurrenceValue *int     `json:"recurrence_value,omitempty" jsonschema:"new recurrence value"`
	DueTime         *string  `json:"due_time,omitempty" jsonschema:"new due time in ISO format, must be in the future"`
	AlertTimes      []string `json:"alert_times,omitempty" jsonschema:"new alert times in ISO format"`
}

type taskOutput struct {
	TaskID          string   `json:"task_id"`
	Summary         string   `json:"summary"`
	Details         string   `json:"details"`
	IsRecurring     bool     `json:"is_recurring"`
	RecurrenceType  string   `json:"recurrence_type,omitempty"`
	RecurrenceValue int      `json:"recurrence_value,omitempty"`
	DueTime         string   `json:"due_time"`
	AlertTimes      []string `json:"alert_times"`
	CreatedAt       string   `json:"created_at"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the unique task identifier"`
}

type deleteTaskOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type timeframeInput struct {
	StartTime string `json:"start_time" jsonschema:"required,start time in ISO format (YYYY-MM-DDTHH:MM:SS)"`
	EndTime   string `json:"end_time" jsonschema:"required,end time in ISO format (YYYY-MM-DDTHH:MM:SS)"`
}

type upcomingInput struct {
	DaysAhead int `json:"days_ahead,omitempty" jsonschema:"number of days to look ahead (default 7)"`
}

type emptyInput struct{}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type currentTimeOutput struct {
	CurrentTime string `json:"current_time"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a new task. Recurring tasks are expanded into their future occurrences immediately. Returns a confirmation message.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task",
		Description: "Update fields of an existing task. A changed due time repositions the task; its identifier is unchanged.",
	}, s.handleUpdateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID. Reports success false if the task does not exist.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_all_tasks",
		Description: "Delete every task. Reports success false if the store was already empty.",
	}, s.handleDeleteAllTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get a specific task by ID.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_all_tasks",
		Description: "Get all tasks sorted by due time.",
	}, s.handleGetAllTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_tasks_in_timeframe",
		Description: "Get tasks whose due time falls within a time window. Both boundaries are inclusive.",
	}, s.handleGetTasksInTimeframe)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_upcoming_tasks",
		Description: "Get tasks due within the next N days (default 7).",
	}, s.handleListUpcomingTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_current_time",
		Description: "Get the current time in ISO format.",
	}, s.handleGetCurrentTime)
}

// --- Tool handlers ---

// handleCreateTask returns a human-readable confirmation rather than a task
// payload; this mirrors the historical tool surface that agents rely on.
func (s *Server) handleCreateTask(_ context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, createTaskOutput, error) {
	task, err := s.taskMgr.Create(core.CreateRequest{
		Summary:         input.Summary,
		Details:         input.Details,
		IsRecurring:     input.IsRecurring,
		RecurrenceType:  input.RecurrenceType,
		RecurrenceValue: input.RecurrenceValue,
		DueTime:         input.DueTime,
		AlertTimes:      input.AlertTimes,
	})
	if err != nil {
		return errorResult(err.Error()), createTaskOutput{}, nil
	}

	out := createTaskOutput{
		Message: fmt.Sprintf("Task created successfully: %s (ID: %s, Due: %s)", task.Summary, task.ID, task.DueTime),
	}
	return textResult(out.Message), out, nil
}

func (s *Server) handleUpdateTask(_ context.Context, _ *gomcp.CallToolRequest, input updateTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}

	req := core.UpdateRequest{
		Summary:         input.Summary,
		Details:         input.Details,
		IsRecurring:     input.IsRecurring,
		RecurrenceType:  input.RecurrenceType,
		RecurrenceValue: input.RecurrenceValue,
		DueTime:         input.DueTime,
		AlertTimes:      input.AlertTimes,
	}
	if req.Empty() {
		return errorResult("no fields to update: provide at least one field"), taskOutput{}, nil
	}

	task, err := s.taskMgr.Update(input.TaskID, req)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, deleteTaskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), deleteTaskOutput{}, nil
	}

	ok, err := s.taskMgr.Delete(input.TaskID)
	if err != nil {
		return errorResult(err.Error()), deleteTaskOutput{}, nil
	}

	out := deleteTaskOutput{Success: ok, Message: "Task deleted successfully"}
	if !ok {
		out.Message = "Task not found"
	}
	return nil, out, nil
}

func (s *Server) handleDeleteAllTasks(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, deleteTaskOutput, error) {
	ok, err := s.taskMgr.DeleteAll()
	if err != nil {
		return errorResult(err.Error()), deleteTaskOutput{}, nil
	}

	out := deleteTaskOutput{Success: ok, Message: "All tasks deleted successfully"}
	if !ok {
		out.Message = "No tasks to delete"
	}
	return nil, out, nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}

	task, err := s.taskMgr.Get(input.TaskID)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleGetAllTasks(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks, err := s.taskMgr.GetAll()
	if err != nil {
		return errorResult(err.Error()), listTasksOutput{}, nil
	}
	return nil, tasksToOutput(tasks), nil
}

func (s *Server) handleGetTasksInTimeframe(_ context.Context, _ *gomcp.CallToolRequest, input timeframeInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks, err := s.taskMgr.ListInTimeframe(input.StartTime, input.EndTime)
	if err != nil {
		return errorResult(err.Error()), listTasksOutput{}, nil
	}
	return nil, tasksToOutput(tasks), nil
}

func (s *Server) handleListUpcomingTasks(_ context.Context, _ *gomcp.CallToolRequest, input upcomingInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks, err := s.taskMgr.ListUpcoming(input.DaysAhead)
	if err != nil {
		return errorResult(err.Error()), listTasksOutput{}, nil
	}
	return nil, tasksToOutput(tasks), nil
}

func (s *Server) handleGetCurrentTime(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, currentTimeOutput, error) {
	now := time.Now().Format(models.TimeLayout)
	return textResult("current time: " + now), currentTimeOutput{CurrentTime: now}, nil
}

// --- Helpers ---

func taskToOutput(t *models.Task) taskOutput {
	return taskOutput{
		TaskID:          t.ID,
		Summary:         t.Summary,
		Details:         t.Details,
		IsRecurring:     t.IsRecurring,
		RecurrenceType:  string(t.RecurrenceType),
		RecurrenceValue: t.RecurrenceValue,
		DueTime:         t.DueTime,
		AlertTimes:      t.AlertTimes,
		CreatedAt:       t.CreatedAt,
	}
}

func tasksToOutput(tasks []models.Task) listTasksOutput {
	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i := range tasks {
		out.Tasks[i] = taskToOutput(&tasks[i])
	}
	return out
}

func textResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
