// Package testutils provides a set of standardized helper functions for testing
// across the codebase.
//
// Helper functions follow these naming conventions:
//   - SetupEnv: Configure environment variables for testing
//   - CreateTempConfigFile: Create temporary configuration files
//   - DiscardLogger / TestSlogHandler: Silence or capture structured logs
//
// HTTP assertions live in the testutils/api subpackage so that packages below
// the API layer can use these helpers without import cycles.
package testutils
