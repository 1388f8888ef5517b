package exec

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockExecutor records invocations and replays canned results.
type MockExecutor struct {
	mu sync.Mutex

	// Commands maps "name arg1 arg2" to a result. A "*" segment matches any
	// single argument.
	Commands map[string]*CommandResult

	// DefaultResult answers commands with no entry in Commands.
	DefaultResult *CommandResult

	ExecutedCommands []ExecutedCommand
}

type CommandResult struct {
	Stdout string
	Stderr string
	Error  error
}

type ExecutedCommand struct {
	Name string
	Args []string
}

func NewMockExecutor() *MockExecutor {
	return &MockExecutor{Commands: make(map[string]*CommandResult)}
}

func (m *MockExecutor) Execute(_ context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExecutedCommands = append(m.ExecutedCommands, ExecutedCommand{Name: name, Args: args})

	key := commandKey(name, args)
	if result, ok := m.Commands[key]; ok {
		return result.Stdout, result.Stderr, result.Error
	}
	for pattern, result := range m.Commands {
		if matchesPattern(key, pattern) {
			return result.Stdout, result.Stderr, result.Error
		}
	}
	if m.DefaultResult != nil {
		return m.DefaultResult.Stdout, m.DefaultResult.Stderr, m.DefaultResult.Error
	}
	return "", "", fmt.Errorf("mock executor: no result configured for command: %s", key)
}

// AddCommand registers the result for an exact invocation.
func (m *MockExecutor) AddCommand(name string, args []string, stdout, stderr string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands[commandKey(name, args)] = &CommandResult{Stdout: stdout, Stderr: stderr, Error: err}
}

// Executed returns a copy of the recorded invocations.
func (m *MockExecutor) Executed() []ExecutedCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedCommand(nil), m.ExecutedCommands...)
}

func commandKey(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func matchesPattern(cmd, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return cmd == pattern
	}

	patternParts := strings.Split(pattern, " ")
	cmdParts := strings.Split(cmd, " ")
	if len(patternParts) != len(cmdParts) {
		return false
	}
	for i, pp := range patternParts {
		if pp != "*" && pp != cmdParts[i] {
			return false
		}
	}
	return true
}
