package auth

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRole_IsAdmin(t *testing.T) {
	if !RoleAdmin.IsAdmin() {
		t.Fatalf("expected admin")
	}
	if !Role("admin").IsAdmin() {
		t.Fatalf("expected case-insensitive admin match")
	}
	if RoleUser.IsAdmin() {
		t.Fatalf("did not expect admin")
	}
}

func TestCredential_Expired(t *testing.T) {
	now := time.Now()
	if (Credential{Token: "t", ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatalf("did not expect expiry")
	}
	if !(Credential{Token: "t", ExpiresAt: now}).Expired(now) {
		t.Fatalf("expected expiry at the boundary")
	}
	if (Credential{Token: "t"}).Expired(now) {
		t.Fatalf("zero expiry should never expire")
	}
}

func TestAuthResult_DecodesAPIShape(t *testing.T) {
	body := `{"token":"t1","user":{"id":"u1","email":"a@b.com","name":"A","role":"ADMIN"},` +
		`"tenant":{"id":"te1","name":"Shop","shopifyDomain":"shop.myshopify.com","hasShopifyToken":true}}`

	var res AuthResult
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token != "t1" || res.User == nil || res.User.ID != "u1" || res.Tenant == nil || res.Tenant.ID != "te1" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !res.User.Role.IsAdmin() || !res.Tenant.HasShopifyToken {
		t.Fatalf("unexpected flags: %+v %+v", res.User, res.Tenant)
	}
}
