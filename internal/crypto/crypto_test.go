package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	plaintext := "meeting notes: buy milk, call dentist 电话"
	password := "correct horse battery staple"

	for _, algo := range Algorithms {
		t.Run(string(algo), func(t *testing.T) {
			res, err := Encrypt(plaintext, password, algo)
			require.NoError(t, err)
			require.NotEmpty(t, res.Ciphertext)
			require.NotEmpty(t, res.Salt)
			require.NotEmpty(t, res.IV)

			got, err := Decrypt(res.Ciphertext, password, res.Salt, res.IV, algo)
			require.NoError(t, err)
			assert.Equal(t, plaintext, got)
		})
	}
}

func TestEncrypt_FreshSaltAndIV(t *testing.T) {
	a, err := Encrypt("same text", "pw", AES256GCM)
	require.NoError(t, err)
	b, err := Encrypt("same text", "pw", AES256GCM)
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.IV, b.IV)
	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
}

func TestDecrypt_WrongPassword(t *testing.T) {
	plaintext := "secret contents"

	for _, algo := range Algorithms {
		t.Run(string(algo), func(t *testing.T) {
			res, err := Encrypt(plaintext, "right password", algo)
			require.NoError(t, err)

			got, err := Decrypt(res.Ciphertext, "wrong password", res.Salt, res.IV, algo)
			if algo.Authenticated() {
				// GCM detects the bad key via the auth tag
				assert.ErrorIs(t, err, ErrDecrypt)
			} else if err == nil {
				// Confidentiality-only modes may return garbage, never the plaintext
				assert.NotEqual(t, plaintext, got)
			}
		})
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	res, err := Encrypt("tamper me", "pw", AES256GCM)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(res.Ciphertext)
	require.NoError(t, err)
	raw[0] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = Decrypt(tampered, "pw", res.Salt, res.IV, AES256GCM)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDecrypt_GarbageInputs(t *testing.T) {
	_, err := Decrypt("not base64!!", "pw", "also not", "nope", AES256CBC)
	assert.ErrorIs(t, err, ErrDecrypt)

	res, err := Encrypt("x", "pw", AES256CBC)
	require.NoError(t, err)

	// CBC ciphertext must be block aligned
	_, err = Decrypt(base64.StdEncoding.EncodeToString([]byte("short")), "pw", res.Salt, res.IV, AES256CBC)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("aes-256-ofb")
	require.NoError(t, err)
	assert.Equal(t, AES256OFB, a)
	assert.False(t, a.Authenticated())

	_, err = ParseAlgorithm("rot13")
	assert.Error(t, err)
}

func TestAlgorithm_Authenticated(t *testing.T) {
	assert.True(t, AES256GCM.Authenticated())
	for _, algo := range []Algorithm{AES256CBC, AES256CTR, AES256CFB, AES256OFB} {
		assert.False(t, algo.Authenticated())
	}
}

func TestEncrypt_UnsupportedAlgorithm(t *testing.T) {
	_, err := Encrypt("x", "pw", Algorithm("des-ecb"))
	assert.Error(t, err)
}

func TestEncryptDecrypt_EmptyPlaintext(t *testing.T) {
	for _, algo := range Algorithms {
		res, err := Encrypt("", "pw", algo)
		require.NoError(t, err)

		got, err := Decrypt(res.Ciphertext, "pw", res.Salt, res.IV, algo)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	}
}
