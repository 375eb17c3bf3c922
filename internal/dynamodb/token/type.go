package token

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// TokenMarshaler turns a LastEvaluatedKey into an opaque nextToken that only
// decodes for the partition it was issued for.
type TokenMarshaler interface {
	Marshal(partition string, lastKey map[string]types.AttributeValue) ([]byte, error)

	Unmarshal(partition string, token []byte) (map[string]types.AttributeValue, error)
}
