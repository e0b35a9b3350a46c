package services

import (
	"fmt"
	"sync/atomic"
)

const (
	TestName     = "Ana K"
	TestEmail    = "ana@example.com"
	TestPhone    = "+995555000111"
	TestAddress  = "1 Main St, Tbilisi"
	TestQuantity = 2
)

func ValidPayload() map[string]any {
	return map[string]any{
		"name":     TestName,
		"email":    TestEmail,
		"phone":    TestPhone,
		"address":  TestAddress,
		"quantity": float64(TestQuantity),
	}
}

func ValidSubmission() Submission {
	return Submission{
		Name:     TestName,
		Email:    TestEmail,
		Phone:    TestPhone,
		Address:  TestAddress,
		Quantity: TestQuantity,
	}
}

// SequenceIDGenerator hands out ORD-TEST-1, ORD-TEST-2, ... and is safe for
// concurrent use.
type SequenceIDGenerator struct {
	n atomic.Int64
}

func (g *SequenceIDGenerator) Next() string {
	return fmt.Sprintf("ORD-TEST-%d", g.n.Add(1))
}
