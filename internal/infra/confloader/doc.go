// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader that supports
// multiple sources using koanf as the underlying library.
//
// Features:
//
//   - Multiple Sources: YAML files, environment variables, flag overrides
//   - Type Safety: Unmarshaling into typed structs
//   - Defaults: values already present in the target survive missing keys
//
// Priority (highest to lowest):
//
//  1. Overrides (command line flags)
//  2. Environment variables
//  3. Configuration files
//  4. Default values
package confloader
