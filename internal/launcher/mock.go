package launcher

import (
	"sync"

	"github.com/LeLocTai/unityhub-launcher/internal/models"
)

// MockLauncher implements Launcher for testing
type MockLauncher struct {
	mu    sync.Mutex
	calls []Call

	// StartError, when set, fails every start
	StartError error
}

// Call is one recorded StartDetached invocation
type Call struct {
	Executable string
	Args       []string
}

// NewMockLauncher creates a new MockLauncher
func NewMockLauncher() *MockLauncher {
	return &MockLauncher{}
}

func (m *MockLauncher) StartDetached(executable string, args []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StartError != nil {
		return models.NewWarning(models.ErrLaunchFailure, executable, m.StartError)
	}

	m.calls = append(m.calls, Call{
		Executable: executable,
		Args:       append([]string(nil), args...),
	})
	return nil
}

// Calls returns the successful starts in order.
func (m *MockLauncher) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Call(nil), m.calls...)
}
