// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample value conversions shared by generators and
// format adapters.
package utils
