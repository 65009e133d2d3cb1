package planner

import (
	"strings"

	ai "tripplanner/services/intelligence"

	"github.com/spf13/viper"
)

// Credentials are the two keys a planning run needs.
type Credentials struct {
	LLMKeyName    string
	LLMKey        string
	SearchKeyName string
	SearchKey     string
}

// Missing lists the names of absent keys.
func (c Credentials) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.LLMKey) == "" {
		missing = append(missing, c.LLMKeyName)
	}
	if strings.TrimSpace(c.SearchKey) == "" {
		missing = append(missing, c.SearchKeyName)
	}
	return missing
}

// CredentialSource is consulted on every run so rotated keys apply without a restart.
type CredentialSource func() Credentials

// EnvCredentials reads the provider's key and the Serper key through viper.
func EnvCredentials(v *viper.Viper, provider string) CredentialSource {
	llmKey := ai.CredentialKey(provider)
	return func() Credentials {
		return Credentials{
			LLMKeyName:    llmKey,
			LLMKey:        v.GetString(llmKey),
			SearchKeyName: "SERPER_API_KEY",
			SearchKey:     v.GetString("SERPER_API_KEY"),
		}
	}
}
