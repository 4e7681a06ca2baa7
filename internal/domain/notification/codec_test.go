package notification

import (
	"errors"
	"strings"
	"testing"
	"time"

	storefront_errors "storefront-events/pkg/errors"
)

func TestDecode_StockEventCamelCase(t *testing.T) {
	payload := `{"productId":"P1","productName":"Widget","previousStock":12,"newStock":3,"updatedBy":"sys","updateDate":"2024-01-01T00:00:00Z"}`

	e, err := Decode[StockEvent]([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.ProductID != "P1" || e.ProductName != "Widget" || e.PreviousStock != 12 || e.NewStock != 3 {
		t.Fatalf("unexpected event: %+v", e)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !e.UpdateDate.Equal(want) {
		t.Fatalf("updateDate = %s, want %s", e.UpdateDate, want)
	}
	if e.Movement() != StockDepleted {
		t.Fatalf("movement = %s", e.Movement())
	}
}

func TestDecode_AcceptsPascalCaseAndZonelessTimestamps(t *testing.T) {
	payload := `{"OrderId":"o-1","CustomerName":"Ann","Quantity":2,"TotalPrice":19.98,"OrderDate":"2024-03-05T10:11:12.1234567","Status":"Submitted"}`

	e, err := Decode[OrderEvent]([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.OrderID != "o-1" || e.Status != OrderSubmitted || e.TotalPrice != 19.98 {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.OrderDate.Location() != time.UTC || e.OrderDate.Hour() != 10 {
		t.Fatalf("orderDate = %s", e.OrderDate)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `this is not json`,
		"empty":           ``,
		"null":            `null`,
		"missing id":      `{"productName":"Widget","newStock":4}`,
		"negative stock":  `{"productId":"P1","previousStock":-1,"newStock":4}`,
		"bad timestamp":   `{"productId":"P1","updateDate":"yesterday"}`,
		"wrong type":      `{"productId":"P1","newStock":"many"}`,
		"array top-level": `[1,2,3]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode[StockEvent]([]byte(payload))
			if !errors.Is(err, storefront_errors.ErrMalformedMessage) {
				t.Fatalf("err = %v, want ErrMalformedMessage", err)
			}
		})
	}
}

func TestDecode_InvalidEnvelopeIsAlsoMalformed(t *testing.T) {
	_, err := Decode[ImageEvent]([]byte(`{"productId":"P1","fileSize":-10}`))
	if !errors.Is(err, storefront_errors.ErrMalformedMessage) || !errors.Is(err, storefront_errors.ErrInvalidEnvelope) {
		t.Fatalf("err = %v", err)
	}
}

func TestEncode_UsesWireFieldNames(t *testing.T) {
	out, err := Encode(ImageEvent{
		ProductID:   "P9",
		ProductName: "Lamp",
		ImageURL:    "https://cdn.example.com/product-images/lamp.png",
		Action:      ImageCreate,
		ProcessTime: NewTimestamp(time.Date(2024, 5, 1, 8, 0, 0, 0, time.FixedZone("SAST", 2*3600))),
		FileName:    "lamp.png",
		FileSize:    2048,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, want := range []string{`"productId":"P9"`, `"imageUrl":`, `"action":"CREATE"`, `"processTime":"2024-05-01T06:00:00Z"`, `"fileSize":2048`} {
		if !strings.Contains(out, want) {
			t.Fatalf("encoded %s missing %s", out, want)
		}
	}
}

func TestOrderEvent_TransitionOmittedWhenUnset(t *testing.T) {
	out, err := Encode(OrderEvent{OrderID: "o-2", Status: OrderSubmitted})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(out, "previousStatus") || strings.Contains(out, "newStatus") {
		t.Fatalf("unexpected transition fields in %s", out)
	}
}

func TestIsKnownQueue(t *testing.T) {
	if !IsKnownQueue("stock-updates") {
		t.Fatal("stock-updates should be known")
	}
	if IsKnownQueue("Stock-Updates") {
		t.Fatal("queue names are case-sensitive")
	}
}

func TestOrderEvent_EffectiveStatus(t *testing.T) {
	cases := []struct {
		e    OrderEvent
		want OrderStatus
	}{
		{OrderEvent{Status: OrderShipped}, OrderShipped},
		{OrderEvent{PreviousStatus: OrderSubmitted, NewStatus: OrderCompleted}, OrderCompleted},
		{OrderEvent{Status: OrderPending, NewStatus: OrderConfirmed}, OrderPending},
		{OrderEvent{}, ""},
	}
	for _, tc := range cases {
		if got := tc.e.EffectiveStatus(); got != tc.want {
			t.Errorf("EffectiveStatus(%+v) = %q, want %q", tc.e, got, tc.want)
		}
	}
}
