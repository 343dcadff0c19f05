//go:build unit || e2e

package stripetest

import (
	"context"
	"fmt"
	"sync"

	"rental-booking/internal/usecase/commands"
)

// FakeGateway is an in-memory processor gateway. Invoices are numbered in
// issue order (in_test_1, in_test_2, ...) and payment intents likewise.
type FakeGateway struct {
	mu       sync.Mutex
	seq      int
	Requests []commands.InvoiceRequest
	Charges  []commands.ChargeRequest
	Sent     []string
	Drafts   []string
	// FailOn makes the named step fail: "item", "draft", "finalize", "send" or "charge".
	FailOn string
}

var (
	_ commands.InvoiceGateway = (*FakeGateway)(nil)
	_ commands.ChargeGateway  = (*FakeGateway)(nil)
)

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (g *FakeGateway) fail(step string) error {
	if g.FailOn == step {
		return fmt.Errorf("stripe %s: api_connection_error", step)
	}
	return nil
}

func (g *FakeGateway) CreateInvoiceItem(_ context.Context, req commands.InvoiceRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("item"); err != nil {
		return err
	}
	g.Requests = append(g.Requests, req)
	return nil
}

func (g *FakeGateway) CreateDraftInvoice(context.Context, commands.InvoiceRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("draft"); err != nil {
		return "", err
	}
	g.seq++
	return fmt.Sprintf("in_test_%d", g.seq), nil
}

func (g *FakeGateway) FinalizeInvoice(context.Context, commands.InvoiceRequest, string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fail("finalize")
}

func (g *FakeGateway) SendInvoice(_ context.Context, _ commands.InvoiceRequest, invoiceID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("send"); err != nil {
		return err
	}
	g.Sent = append(g.Sent, invoiceID)
	return nil
}

func (g *FakeGateway) KeepDraft(_ context.Context, invoiceID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Drafts = append(g.Drafts, invoiceID)
	return nil
}

func (g *FakeGateway) ChargeDirect(_ context.Context, req commands.ChargeRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fail("charge"); err != nil {
		return "", err
	}
	g.seq++
	g.Charges = append(g.Charges, req)
	return fmt.Sprintf("pi_test_%d", g.seq), nil
}

// Reset clears recorded calls between subtests.
func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
	g.Requests = nil
	g.Charges = nil
	g.Sent = nil
	g.Drafts = nil
	g.FailOn = ""
}

// LastRequest returns the most recent invoice request, if any.
func (g *FakeGateway) LastRequest() (commands.InvoiceRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Requests) == 0 {
		return commands.InvoiceRequest{}, false
	}
	return g.Requests[len(g.Requests)-1], true
}
