package sezzle

import "fmt"

// AuthCredentials is the merchant's API key pair.
type AuthCredentials struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// AuthCredentialsFromMap reads the public_key and private_key entries. Missing
// keys yield empty fields.
func AuthCredentialsFromMap(data map[string]string) AuthCredentials {
	return AuthCredentials{
		PublicKey:  data["public_key"],
		PrivateKey: data["private_key"],
	}
}

func (c AuthCredentials) ToMap() map[string]string {
	return map[string]string{
		"public_key":  c.PublicKey,
		"private_key": c.PrivateKey,
	}
}

func (c AuthCredentials) Validate() error {
	if c.PublicKey == "" || c.PrivateKey == "" {
		return fmt.Errorf("sezzle public and private keys are required")
	}
	return nil
}
