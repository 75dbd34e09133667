// SPDX-License-Identifier: MPL-2.0

// Package report builds the documents the CLI prints: the environment summary
// and special-path resolutions. The summary has a published JSON Schema so
// scripts can rely on its shape.
package report
