// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package invite

import (
	"bytes"
)

// RenderActivation executes the e-mail template for message.
func RenderActivation(message Message) (string, error) {
	var buffer bytes.Buffer
	if err := activationTemplate.Execute(&buffer, message); err != nil {
		return "", err
	}
	return buffer.String(), nil
}
