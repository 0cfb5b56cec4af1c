// SPDX-License-Identifier: MIT

// Package snapshot captures the state of a particle store as a plain value,
// renders it as YAML and persists it per frame in a badger database keyed
// by run id.
package snapshot
