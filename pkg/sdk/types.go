package sdk

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// ObjectID is the hex form of a MongoDB ObjectID.
// It is stored as a native ObjectID and rendered in JSON as a plain string.
type ObjectID string

func (id ObjectID) String() string {
	return string(id)
}

func (id ObjectID) IsEmpty() bool {
	return id == ""
}

// ParseObjectID validates s and returns a BadRequest error wrapping ErrMalformedID
// when it is not a 24 character hex ObjectID.
func ParseObjectID(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, NewBadRequestError(fmt.Errorf("%w %q: %v", ErrMalformedID, s, err))
	}
	return oid, nil
}

// IDFilter returns the `_id` equality filter for s.
func IDFilter(s string) (bson.M, error) {
	oid, err := ParseObjectID(s)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid}, nil
}

func NewObjectID(oid primitive.ObjectID) ObjectID {
	return ObjectID(oid.Hex())
}

// MarshalBSONValue implements bson.ValueMarshaler.
func (id ObjectID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if id.IsEmpty() {
		return bsontype.Null, nil, nil
	}

	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return bsontype.Null, nil, err
	}

	return bsontype.ObjectID, bsoncore.AppendObjectID(nil, oid), nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (id *ObjectID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*id = ""
		return nil
	case bsontype.ObjectID:
		oid, _, ok := bsoncore.ReadObjectID(data)
		if !ok {
			return ErrInvalidBSONType
		}
		*id = NewObjectID(oid)
		return nil
	default:
		return ErrInvalidBSONType
	}
}

var ErrInvalidBSONType = fmt.Errorf("invalid BSON type for ObjectID")
