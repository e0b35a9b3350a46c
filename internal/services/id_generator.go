package services

import (
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderIDPattern matches ids produced by RandomIDGenerator.
var OrderIDPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{16}$`)

type IDGenerator interface {
	Next() string
}

// RandomIDGenerator issues ORD-<yyyymmdd>-<16 hex> ids. The hex part is the
// first half of a random UUID (60 random bits), so ids need no coordination
// between instances.
type RandomIDGenerator struct {
	now func() time.Time
}

func NewRandomIDGenerator() *RandomIDGenerator {
	return &RandomIDGenerator{now: time.Now}
}

func (g *RandomIDGenerator) Next() string {
	u := uuid.New()
	return "ORD-" + g.now().UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(u[:8]))
}
