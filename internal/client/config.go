package client

import (
	"encoding/json"
	"os"

	sargon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const saltKeyLength = 16

// ErrNotLoggedIn is returned when no credentials file exists.
var ErrNotLoggedIn = errors.New("not logged in, run `cmsadmin login` first")

// Credentials are the client's persisted session: the token and the backend it belongs to.
type Credentials struct {
	Endpoint string `json:"endpoint"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Seal encrypts the credentials with a key derived from the passphrase.
// The result is salt || nonce || ciphertext.
func Seal(creds Credentials, passphrase []byte) ([]byte, error) {
	payload, err := json.Marshal(creds)
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize credentials")
	}

	//
	// Key derivation of passphrase

	salt, err := sargon2.GenerateRandomBytes(saltKeyLength)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate salt for credentials")
	}
	hash := argon2.IDKey(passphrase, salt, 3, 64<<10, 2, 32)

	//
	// Seal credentials

	aead, err := chacha20poly1305.NewX(hash)
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}
	nonce, err := sargon2.GenerateRandomBytes(uint32(aead.NonceSize()))
	if err != nil {
		return nil, errors.Wrap(err, "could not generate nonce for credentials")
	}

	ciphertext := aead.Seal(nil, nonce, payload, nil)
	ciphertext = append(nonce, ciphertext...)
	ciphertext = append(salt, ciphertext...)
	return ciphertext, nil
}

// Unseal decrypts credentials sealed by Seal.
func Unseal(ciphertext, passphrase []byte) (Credentials, error) {
	var creds Credentials

	if len(ciphertext) < saltKeyLength+chacha20poly1305.NonceSizeX {
		return creds, errors.New("credentials file is truncated")
	}

	//
	// Key derivation of passphrase

	salt := ciphertext[:saltKeyLength]
	ciphertext = ciphertext[saltKeyLength:]
	hash := argon2.IDKey(passphrase, salt, 3, 64<<10, 2, 32)

	//
	// Open credentials

	aead, err := chacha20poly1305.NewX(hash)
	if err != nil {
		return creds, errors.Wrap(err, "could not create AEAD")
	}

	nonce := ciphertext[:aead.NonceSize()]
	ciphertext = ciphertext[aead.NonceSize():]

	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return creds, errors.Wrap(err, "could not decrypt credentials file")
	}

	err = json.Unmarshal(payload, &creds)
	return creds, errors.Wrap(err, "could not parse credentials")
}

// LoadCredentials reads the given sealed credentials file, asking for its passphrase.
func LoadCredentials(filename string, prompt Prompter) (Credentials, error) {
	ciphertext, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, ErrNotLoggedIn
	}
	if err != nil {
		return Credentials{}, errors.Wrap(err, "could not read credentials file")
	}

	passphrase, err := prompt.Password("passphrase: ")
	if err != nil {
		return Credentials{}, errors.Wrap(err, "could not read passphrase")
	}

	return Unseal(ciphertext, passphrase)
}

// SaveCredentials seals the credentials in the given file, asking for a passphrase.
func SaveCredentials(filename string, creds Credentials, prompt Prompter) error {
	passphrase, err := prompt.Password("passphrase: ")
	if err != nil {
		return errors.Wrap(err, "could not read passphrase")
	}

	ciphertext, err := Seal(creds, passphrase)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", filename)
	}
	defer f.Close()

	_, err = f.Write(ciphertext)
	if err != nil {
		return errors.Wrap(err, "could not store credentials")
	}

	return errors.Wrap(f.Sync(), "could not store credentials")
}

// RemoveCredentials removes the given credentials file. A missing file is not an error.
func RemoveCredentials(filename string) error {
	err := os.Remove(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Wrap(err, "could not remove credentials file")
}
