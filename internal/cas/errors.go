// SPDX-License-Identifier: Apache-2.0

package cas

import "github.com/joomcode/errorx"

var (
	ErrNamespace = errorx.NewNamespace("cas")

	ErrDeviceNotPresent = ErrNamespace.NewType("device_not_present", errorx.NotFound())
	ErrSetup            = ErrNamespace.NewType("setup_failed")

	PropertyDevice = errorx.RegisterProperty("device")
)
