package hash

import (
	"golang.org/x/crypto/bcrypt"

	"plume/contexts/content-sharing/publishing-service/ports"
)

// MinCost is the cheapest supported cost, for tests and dev wiring.
const MinCost = bcrypt.MinCost

// Bcrypt implements ports.PasswordHasher. The zero value uses the library
// default cost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (b Bcrypt) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var _ ports.PasswordHasher = Bcrypt{}
