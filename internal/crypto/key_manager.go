package crypto

import (
	"encoding/base64"
	"errors"
	"os"
	"sync"
)

var (
	ErrMasterKeyNotSet      = errors.New("master key not set in environment")
	ErrInvalidMasterKey     = errors.New("invalid master key: must be base64 of 32 bytes")
	ErrDataKeyDecryptFailed = errors.New("failed to decrypt data key")
)

// KeyManager wraps per-user data keys with a process-wide master key.
// Evidence descriptions are encrypted with the owner's data key; the data
// key itself is stored encrypted under the master key.
type KeyManager struct {
	masterKey []byte

	mu sync.RWMutex
	// Decrypted data keys cached per user id.
	dataKeys map[string][]byte
}

// NewKeyManager reads MASTER_KEY (base64, 32 bytes) from the environment.
func NewKeyManager() (*KeyManager, error) {
	encoded := os.Getenv("MASTER_KEY")
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	masterKey, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(masterKey) != 32 {
		return nil, ErrInvalidMasterKey
	}

	return &KeyManager{
		masterKey: masterKey,
		dataKeys:  make(map[string][]byte),
	}, nil
}

// GenerateAndEncryptDataKey creates a fresh data key for a new user and
// returns it encrypted under the master key, ready for storage.
func (km *KeyManager) GenerateAndEncryptDataKey() (string, error) {
	dataKey, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return Encrypt(base64.StdEncoding.EncodeToString(dataKey), km.masterKey)
}

// EncryptForUser encrypts plaintext with the user's data key.
func (km *KeyManager) EncryptForUser(plaintext, userID, dkEncrypted string) (string, error) {
	dataKey, err := km.dataKey(userID, dkEncrypted)
	if err != nil {
		return "", err
	}
	return Encrypt(plaintext, dataKey)
}

// DecryptForUser decrypts a value previously produced by EncryptForUser.
func (km *KeyManager) DecryptForUser(ciphertext, userID, dkEncrypted string) (string, error) {
	dataKey, err := km.dataKey(userID, dkEncrypted)
	if err != nil {
		return "", err
	}
	return Decrypt(ciphertext, dataKey)
}

// dataKey returns the user's decrypted data key, caching it after the
// first unwrap.
func (km *KeyManager) dataKey(userID, dkEncrypted string) ([]byte, error) {
	km.mu.RLock()
	cached, ok := km.dataKeys[userID]
	km.mu.RUnlock()
	if ok {
		return cached, nil
	}

	decoded, err := Decrypt(dkEncrypted, km.masterKey)
	if err != nil {
		return nil, ErrDataKeyDecryptFailed
	}
	dataKey, err := base64.StdEncoding.DecodeString(decoded)
	if err != nil || len(dataKey) != 32 {
		return nil, ErrDataKeyDecryptFailed
	}

	km.mu.Lock()
	km.dataKeys[userID] = dataKey
	km.mu.Unlock()
	return dataKey, nil
}
