// Package crypto protects note content at rest under a user-supplied
// password. Keys are derived with PBKDF2-SHA256; the ciphertext, salt
// and IV are returned base64-encoded so they can live in text columns.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize          = 32 // AES-256
	saltSize         = 16
	gcmNonceSize     = 12 // GCM standard nonce size
	blockIVSize      = aes.BlockSize
	pbkdf2Iterations = 100000
)

// ErrDecrypt is returned for every decryption failure. Wrong password and
// corrupted ciphertext are deliberately indistinguishable.
var ErrDecrypt = errors.New("decryption failed: wrong password or corrupted data")

// Algorithm identifies one of the supported symmetric cipher configurations.
type Algorithm string

const (
	AES256GCM Algorithm = "aes-256-gcm"
	AES256CBC Algorithm = "aes-256-cbc"
	AES256CTR Algorithm = "aes-256-ctr"
	AES256CFB Algorithm = "aes-256-cfb"
	AES256OFB Algorithm = "aes-256-ofb"
)

// Algorithms lists every supported cipher configuration.
var Algorithms = []Algorithm{AES256GCM, AES256CBC, AES256CTR, AES256CFB, AES256OFB}

// ParseAlgorithm validates a stored algorithm identifier.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unsupported encryption algorithm: %q", s)
}

// Authenticated reports whether the algorithm provides tamper detection.
// Only GCM does; the other four modes are confidentiality-only, and
// decrypting with a wrong password yields garbage rather than an error.
func (a Algorithm) Authenticated() bool {
	return a == AES256GCM
}

func (a Algorithm) ivSize() int {
	if a == AES256GCM {
		return gcmNonceSize
	}
	return blockIVSize
}

// Result carries the storable output of Encrypt.
type Result struct {
	Ciphertext string
	Salt       string
	IV         string
}

// deriveKey stretches a password into an AES-256 key
func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)
}

// Encrypt encrypts plaintext under a key derived from password. A fresh
// random salt and IV are generated per call. For GCM the 16-byte auth tag
// is appended to the ciphertext.
func Encrypt(plaintext, password string, algo Algorithm) (*Result, error) {
	if _, err := ParseAlgorithm(string(algo)); err != nil {
		return nil, err
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	iv := make([]byte, algo.ivSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, err
	}

	var ciphertext []byte
	switch algo {
	case AES256GCM:
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		// Seal appends the auth tag to the ciphertext
		ciphertext = gcm.Seal(nil, iv, []byte(plaintext), nil)
	case AES256CBC:
		padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
		ciphertext = make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	default:
		ciphertext = make([]byte, len(plaintext))
		streamFor(algo, block, iv, true).XORKeyStream(ciphertext, []byte(plaintext))
	}

	return &Result{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// Decrypt reverses Encrypt. Every failure path returns ErrDecrypt so the
// caller cannot distinguish a wrong password from corrupted data.
func Decrypt(ciphertext, password, salt, iv string, algo Algorithm) (string, error) {
	if _, err := ParseAlgorithm(string(algo)); err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecrypt
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", ErrDecrypt
	}
	ivBytes, err := base64.StdEncoding.DecodeString(iv)
	if err != nil || len(ivBytes) != algo.ivSize() {
		return "", ErrDecrypt
	}

	block, err := aes.NewCipher(deriveKey(password, saltBytes))
	if err != nil {
		return "", ErrDecrypt
	}

	switch algo {
	case AES256GCM:
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return "", ErrDecrypt
		}
		// Open splits off and verifies the trailing auth tag
		plaintext, err := gcm.Open(nil, ivBytes, data, nil)
		if err != nil {
			return "", ErrDecrypt
		}
		return string(plaintext), nil
	case AES256CBC:
		if len(data) == 0 || len(data)%aes.BlockSize != 0 {
			return "", ErrDecrypt
		}
		plaintext := make([]byte, len(data))
		cipher.NewCBCDecrypter(block, ivBytes).CryptBlocks(plaintext, data)
		unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
		if err != nil {
			return "", ErrDecrypt
		}
		return string(unpadded), nil
	default:
		plaintext := make([]byte, len(data))
		streamFor(algo, block, ivBytes, false).XORKeyStream(plaintext, data)
		return string(plaintext), nil
	}
}

// streamFor builds the stream cipher for the non-block modes
func streamFor(algo Algorithm, block cipher.Block, iv []byte, encrypt bool) cipher.Stream {
	switch algo {
	case AES256CTR:
		return cipher.NewCTR(block, iv)
	case AES256CFB:
		if encrypt {
			return cipher.NewCFBEncrypter(block, iv)
		}
		return cipher.NewCFBDecrypter(block, iv)
	default: // AES256OFB
		return cipher.NewOFB(block, iv)
	}
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padding")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
