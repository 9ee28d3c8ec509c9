package testing

import (
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
)

// StoreTestSuite is a comprehensive test suite for Store implementations.
// It tests the interface contract, not implementation details, making it reusable
// across different implementations (memory, badger, etc.).
type StoreTestSuite struct {
	// NewStore is a factory function that creates a fresh Store instance
	// for each test. This ensures test isolation.
	NewStore func() timeline.Store
}

// Run executes all tests in the suite.
func (suite *StoreTestSuite) Run(test *testing.T) {
	test.Run("Upload", suite.RunUploadTests)
	test.Run("Get", suite.RunGetTests)
	test.Run("Copy", suite.RunCopyTests)
	test.Run("Search", suite.RunSearchTests)
	test.Run("Rollback", suite.RunRollbackTests)
	test.Run("Admin", suite.RunAdminTests)
}
