package expressions

import (
	"reflect"

	"github.com/brunoga/deep"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// renderLiteral returns the wire form of a literal operand value.
//
// uuid.UUID values are normalized to the driver's binary representation
// (subtype 4). Mutable values (maps, slices, pointers) are deep-copied so
// that a rendered document stays isolated from later mutation of the
// caller's value.
func renderLiteral(value any) any {
	if id, ok := value.(uuid.UUID); ok {
		return bson.Binary{Subtype: bson.TypeBinaryUUID, Data: id[:]}
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		copied, copyErr := deep.Copy(value)
		if copyErr != nil {
			// values the copier does not support render as supplied
			return value
		}

		return copied

	default:
		return value
	}
}
