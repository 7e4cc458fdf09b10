package sdk_records

import (
	"time"

	"github.com/mattiabonardi/endor-records/pkg/sdk"
)

const (
	DefaultUserName        = "Default Name"
	DefaultUserEmail       = "default@example.com"
	DefaultUserUsername    = "defaultUsername"
	DefaultUserPassword    = "defaultPassword"
	DefaultUserAge         = 30
	DefaultUserPhone       = "+1234567890"
	DefaultUserNationality = "Default Nationality"
)

type User struct {
	ID          sdk.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string       `json:"name" bson:"name"`
	Email       string       `json:"email" bson:"email"`
	Username    string       `json:"username" bson:"username"`
	Password    string       `json:"password" bson:"password"`
	Age         float64      `json:"age" bson:"age"`
	Phone       string       `json:"phone" bson:"phone"`
	Nationality string       `json:"nationality" bson:"nationality"`
}

type UserPatch struct {
	Name        *string `json:"name,omitempty" yaml:"name"`
	Email       *string `json:"email,omitempty" yaml:"email"`
	Username    *string `json:"username,omitempty" yaml:"username"`
	Password    *string `json:"password,omitempty" yaml:"password"`
	Age         *Number `json:"age,omitempty" yaml:"age"`
	Phone       *string `json:"phone,omitempty" yaml:"phone"`
	Nationality *string `json:"nationality,omitempty" yaml:"nationality"`
}

func (p UserPatch) Resolve(_ time.Time) User {
	return User{
		Name:        valueOr(p.Name, DefaultUserName),
		Email:       valueOr(p.Email, DefaultUserEmail),
		Username:    valueOr(p.Username, DefaultUserUsername),
		Password:    valueOr(p.Password, DefaultUserPassword),
		Age:         numberOr(p.Age, DefaultUserAge),
		Phone:       valueOr(p.Phone, DefaultUserPhone),
		Nationality: valueOr(p.Nationality, DefaultUserNationality),
	}
}

func (p UserPatch) Changes() map[string]any {
	changes := map[string]any{}
	setIfPresent(changes, "name", p.Name)
	setIfPresent(changes, "email", p.Email)
	setIfPresent(changes, "username", p.Username)
	setIfPresent(changes, "password", p.Password)
	setNumberIfPresent(changes, "age", p.Age)
	setIfPresent(changes, "phone", p.Phone)
	setIfPresent(changes, "nationality", p.Nationality)
	return changes
}

var _ Patch[User] = UserPatch{}
