// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package auth

import "time"

// SetClock replaces the service clock in tests.
func (service *Service) SetClock(now func() time.Time) {
	service.now = now
}
