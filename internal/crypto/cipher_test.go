package crypto

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEncryptDecrypt(t *testing.T) {
	key := randomKey(t)
	aad := []byte(`{"format":"fieldkeeper-sealed"}`)

	testCases := map[string][]byte{
		"text":    []byte("Hello, World!"),
		"unicode": []byte("Отчет с площадки №7 🌍"),
		"json":    []byte(`{"offline_pending_actions":"[]"}`),
		"empty":   {},
		"large":   make([]byte, 4096),
	}

	for name, plaintext := range testCases {
		t.Run(name, func(t *testing.T) {
			encrypted, err := Encrypt(plaintext, key, aad)
			require.NoError(t, err)
			assert.Len(t, encrypted, NonceSize+len(plaintext)+TagSize)

			decrypted, err := Decrypt(encrypted, key, aad)
			require.NoError(t, err)
			assert.Equal(t, len(plaintext), len(decrypted))
			if len(plaintext) > 0 {
				assert.Equal(t, plaintext, decrypted)
			}
		})
	}
}

func TestEncrypt_InvalidKey(t *testing.T) {
	for _, size := range []int{0, 16, 64} {
		_, err := Encrypt([]byte("test"), make([]byte, size), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "encryption key must be 32 bytes")
	}
}

func TestEncrypt_Randomness(t *testing.T) {
	// Одинаковые данные шифруются по-разному из-за случайного nonce
	key := randomKey(t)

	a, err := Encrypt([]byte("same data"), key, nil)
	require.NoError(t, err)
	b, err := Encrypt([]byte("same data"), key, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a[:NonceSize], b[:NonceSize])
}

func TestDecrypt_Errors(t *testing.T) {
	key := randomKey(t)
	encrypted, err := Encrypt([]byte("test message"), key, []byte("header"))
	require.NoError(t, err)

	tests := []struct {
		name      string
		errMsg    string
		encrypted []byte
		key       []byte
		aad       []byte
		wantIs    error
	}{
		{name: "too short", encrypted: make([]byte, 5), key: key, aad: []byte("header"), errMsg: "encrypted data too short"},
		{name: "invalid key length", encrypted: encrypted, key: make([]byte, 16), aad: []byte("header"), errMsg: "encryption key must be 32 bytes"},
		{name: "wrong key", encrypted: encrypted, key: make([]byte, KeySize), aad: []byte("header"), wantIs: ErrDecrypt},
		{name: "tampered aad", encrypted: encrypted, key: key, aad: []byte("HEADER"), wantIs: ErrDecrypt},
		{name: "truncated", encrypted: encrypted[:len(encrypted)-1], key: key, aad: []byte("header"), wantIs: ErrDecrypt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decrypted, err := Decrypt(tt.encrypted, tt.key, tt.aad)
			require.Error(t, err)
			assert.Nil(t, decrypted)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			} else {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}
