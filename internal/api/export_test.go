// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package api

var (
	Unauthorized    = unauthorized
	FrontendHandler = frontendHandler
)
