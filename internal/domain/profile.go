package domain

import (
	"fmt"
	"strings"
)

type Photo struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CropRect is sent verbatim to users.setPhoto; the zero value keeps the full
// image.
type CropRect struct {
	X int
	Y int
	W int
}

type CredentialField string

const (
	CredentialBaseURL CredentialField = "base_url"
	CredentialToken   CredentialField = "token"
	CredentialDCookie CredentialField = "d_cookie"
)

func ChatCredentialFields() []CredentialField {
	return []CredentialField{CredentialBaseURL, CredentialToken, CredentialDCookie}
}

type ChatCredentials struct {
	BaseURL string
	Token   string
	DCookie string
}

func (c ChatCredentials) Get(field CredentialField) string {
	switch field {
	case CredentialBaseURL:
		return c.BaseURL
	case CredentialToken:
		return c.Token
	case CredentialDCookie:
		return c.DCookie
	default:
		return ""
	}
}

func (c *ChatCredentials) Set(field CredentialField, value string) {
	value = strings.TrimSpace(value)
	switch field {
	case CredentialBaseURL:
		c.BaseURL = value
	case CredentialToken:
		c.Token = value
	case CredentialDCookie:
		c.DCookie = value
	}
}

// Missing lists absent fields in prompt order.
func (c ChatCredentials) Missing() []CredentialField {
	var missing []CredentialField
	for _, field := range ChatCredentialFields() {
		if strings.TrimSpace(c.Get(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

type MusicCredentials struct {
	ClientID     string
	ClientSecret string
}

func (c MusicCredentials) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return &ConfigError{Field: "spotify.client_id"}
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return &ConfigError{Field: "spotify.client_secret"}
	}
	return nil
}

// ChatLocalConfigKey is the local storage entry of the Slack web client holding
// the workspace URL and token.
const ChatLocalConfigKey = "localConfig_v2"

// ConsoleOneLiner returns a browser console snippet printing the given
// property of the first workspace stored by the Slack web client.
func ConsoleOneLiner(property string) string {
	return fmt.Sprintf(`Object.values(JSON.parse(globalThis.localStorage.getItem(%q)).teams)[0].%s`, ChatLocalConfigKey, property)
}
