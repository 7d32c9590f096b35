// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTokenLength is the byte length of the random session token.
	SessionTokenLength = 32

	// InviteTokenTTL is how long a first-access invitation stays usable.
	InviteTokenTTL = 24 * time.Hour

	// InviteTokenLength is the byte length of the random invitation token.
	InviteTokenLength = 32
)

// # Client Messages

const (
	msgInvalidCredentials = "Credenciais inválidas"
	msgInactiveUser       = "Usuário não está ativo"
	msgInvalidSession     = "Sessão inválida"
	msgInvalidInvite      = "Convite inválido ou expirado"
	msgAlreadyActivated   = "Usuário já realizou o primeiro acesso"
	msgWrongPassword      = "Senha atual incorreta"
	msgBranchNotAllowed   = "Filial não pertence ao usuário"
)
