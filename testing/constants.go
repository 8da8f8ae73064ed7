// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"time"
)

// ShortWait bounds waits for events that should not arrive.
const ShortWait = 50 * time.Millisecond

// LongWait bounds waits for events that should already have arrived.
const LongWait = 10 * time.Second

// Epoch is the time test clocks start at.
var Epoch = time.Date(2016, time.April, 1, 12, 0, 0, 0, time.UTC)
