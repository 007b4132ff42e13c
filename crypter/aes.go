package crypter

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidKey     = errors.New("invalid key")
	ErrInvalidPadding = errors.New("invalid padding")
	ErrEmptyInput     = errors.New("input is empty")
)

type Crypter interface {
	EnCrypt(plainText []byte) ([]byte, error)
	DeCrypt(cipherText []byte) ([]byte, error)
}

type Aes struct {
	aesKey []byte
	aesIv  []byte
}

// NewAes コンストラクタ key は 16, 24, 32 バイト、iv は 16 バイト
func NewAes(key []byte, iv []byte) (Crypter, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, errors.Wrapf(ErrInvalidKey, "key length %d bytes; must be 16, 24, or 32 bytes", len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, errors.Wrapf(ErrInvalidKey, "iv length %d bytes; must be %d bytes", len(iv), aes.BlockSize)
	}

	return &Aes{
		aesKey: bytes.Clone(key),
		aesIv:  bytes.Clone(iv),
	}, nil
}

// NewAesFromSecret 共有鍵などのバイト列から SHA-256 で AES-256 の鍵と IV を導出する
// 同じ secret からは常に同じ鍵と IV になる
func NewAesFromSecret(secret []byte) (Crypter, error) {
	if len(secret) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "secret")
	}
	key := sha256.Sum256(secret)
	iv := sha256.Sum256(append(bytes.Clone(secret), "iv"...))
	return NewAes(key[:], iv[:aes.BlockSize])
}

// pkcs7Pad 暗号化のパディング追加
func (ae *Aes) pkcs7Pad(plainText []byte) []byte {
	length := aes.BlockSize - len(plainText)%aes.BlockSize

	// 3バイトのパディングが必要な場合、`[3,3,3]`
	trailing := bytes.Repeat([]byte{byte(length)}, length)
	return append(bytes.Clone(plainText), trailing...)
}

// pkcs7RemovePad 複合時のパディング除去
func (ae *Aes) pkcs7RemovePad(src []byte) ([]byte, error) {
	length := len(src)
	if length == 0 {
		return nil, errors.Wrap(ErrInvalidPadding, "empty block")
	}

	paddingLen := int(src[length-1])
	if paddingLen == 0 || paddingLen > aes.BlockSize || paddingLen > length {
		return nil, errors.Wrapf(ErrInvalidPadding, "padding length %d", paddingLen)
	}

	// 追加されたパディングは全て同じか検証
	for i := length - paddingLen; i < length; i++ {
		if src[i] != byte(paddingLen) {
			return nil, ErrInvalidPadding
		}
	}
	return src[:length-paddingLen], nil
}

// EnCrypt 暗号化 (CBC)
func (ae *Aes) EnCrypt(plainText []byte) ([]byte, error) {
	if len(plainText) < 1 {
		return nil, errors.Wrap(ErrEmptyInput, "encrypt")
	}

	padded := ae.pkcs7Pad(plainText)
	block, err := aes.NewCipher(ae.aesKey)
	if err != nil {
		return nil, errors.Errorf("aes new cipher: %w", err)
	}

	cipherText := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, ae.aesIv).CryptBlocks(cipherText, padded)
	return cipherText, nil
}

// DeCrypt 複合化 (CBC)
func (ae *Aes) DeCrypt(cipherText []byte) ([]byte, error) {
	if len(cipherText) < 1 {
		return nil, errors.Wrap(ErrEmptyInput, "decrypt")
	}
	// ブロックサイズチェック
	if len(cipherText)%aes.BlockSize != 0 {
		return nil, errors.Newf("input is not block-aligned: %d bytes", len(cipherText))
	}

	block, err := aes.NewCipher(ae.aesKey)
	if err != nil {
		return nil, errors.Errorf("aes new cipher: %w", err)
	}

	plainText := make([]byte, len(cipherText))
	cipher.NewCBCDecrypter(block, ae.aesIv).CryptBlocks(plainText, cipherText)
	return ae.pkcs7RemovePad(plainText)
}
