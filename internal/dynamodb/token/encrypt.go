package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"fridgepick.pl/api/internal/data"
	"fridgepick.pl/api/internal/exceptions"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type EncryptMode func(cipher.Block) (cipher.AEAD, error)

// EncryptionTokenMarshaler seals pagination keys with a key derived from a
// deployment secret and the partition, which is also bound as additional
// data, so a token cannot be replayed against another account or resource.
type EncryptionTokenMarshaler struct {
	Mode   EncryptMode
	Secret []byte
}

func NewGCM(secret string) *EncryptionTokenMarshaler {
	return &EncryptionTokenMarshaler{
		Mode:   cipher.NewGCM,
		Secret: []byte(secret),
	}
}

type sealedToken struct {
	Nonce      []byte `json:"n"`
	Ciphertext []byte `json:"c"`
}

func encodeKey(lastKey map[string]types.AttributeValue) ([]byte, error) {
	if len(lastKey) == 0 {
		return nil, nil
	}
	plain := make(data.NextToken, len(lastKey))
	for field, value := range lastKey {
		switch v := value.(type) {
		case *types.AttributeValueMemberS:
			plain[field] = map[string]string{"S": v.Value}
		case *types.AttributeValueMemberN:
			plain[field] = map[string]string{"N": v.Value}
		case *types.AttributeValueMemberB:
			plain[field] = map[string]string{"B": base64.StdEncoding.EncodeToString(v.Value)}
		default:
			return nil, fmt.Errorf("unsupported key attribute %s of type %T", field, value)
		}
	}
	return json.Marshal(plain)
}

func decodeKey(serialized []byte) (map[string]types.AttributeValue, error) {
	var plain data.NextToken
	if err := json.Unmarshal(serialized, &plain); err != nil {
		return nil, err
	}
	lastKey := make(map[string]types.AttributeValue, len(plain))
	for field, typed := range plain {
		if s, ok := typed["S"]; ok {
			lastKey[field] = &types.AttributeValueMemberS{Value: s}
		} else if n, ok := typed["N"]; ok {
			lastKey[field] = &types.AttributeValueMemberN{Value: n}
		} else if b, ok := typed["B"]; ok {
			raw, err := base64.StdEncoding.DecodeString(b)
			if err != nil {
				return nil, err
			}
			lastKey[field] = &types.AttributeValueMemberB{Value: raw}
		}
	}
	return lastKey, nil
}

func (em *EncryptionTokenMarshaler) aead(partition string) (cipher.AEAD, error) {
	mac := hmac.New(sha256.New, em.Secret)
	mac.Write([]byte(partition))
	block, err := aes.NewCipher(mac.Sum(nil))
	if err != nil {
		return nil, err
	}
	return em.Mode(block)
}

func (em *EncryptionTokenMarshaler) Marshal(partition string, lastKey map[string]types.AttributeValue) ([]byte, error) {
	serialized, err := encodeKey(lastKey)
	if err != nil || serialized == nil {
		return nil, err
	}
	aead, err := em.aead(partition)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed, err := json.Marshal(sealedToken{
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, serialized, []byte(partition)),
	})
	if err != nil {
		return nil, err
	}
	return []byte(base64.RawURLEncoding.EncodeToString(sealed)), nil
}

// Unmarshal reports any token it cannot open as invalid input.
func (em *EncryptionTokenMarshaler) Unmarshal(partition string, token []byte) (map[string]types.AttributeValue, error) {
	if len(token) == 0 {
		return nil, nil
	}
	invalid := exceptions.InvalidInput("nextToken is not valid")
	decoded, err := base64.RawURLEncoding.DecodeString(string(token))
	if err != nil {
		return nil, invalid
	}
	var sealed sealedToken
	if err := json.Unmarshal(decoded, &sealed); err != nil {
		return nil, invalid
	}
	aead, err := em.aead(partition)
	if err != nil {
		return nil, err
	}
	if len(sealed.Nonce) != aead.NonceSize() {
		return nil, invalid
	}
	plaintext, err := aead.Open(nil, sealed.Nonce, sealed.Ciphertext, []byte(partition))
	if err != nil {
		return nil, invalid
	}
	return decodeKey(plaintext)
}
