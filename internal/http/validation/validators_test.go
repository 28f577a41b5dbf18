package validation

import (
	"testing"

	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
)

const errNameRequired = "Name is required."

func TestRequired(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		errMsg string
	}{
		{name: "valid input", value: "valid"},
		{name: "empty string", value: "", errMsg: errNameRequired},
		{name: "whitespace only", value: "   ", errMsg: errNameRequired},
		{name: "too long", value: "abcdefghijk", errMsg: "Name cannot exceed 10 characters."},
		{name: "unicode counted as runes", value: "ééééééééé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Required("Name", 10)(tt.value); got != tt.errMsg {
				t.Errorf("Required() = %q, want %q", got, tt.errMsg)
			}
		})
	}
}

func TestMinLength(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		errMsg string
	}{
		{name: "long enough", value: "secret1"},
		{name: "empty", value: "", errMsg: "Password is required."},
		{name: "too short", value: "abc", errMsg: "Password must be at least 6 characters."},
		{name: "whitespace counts", value: "      "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinLength("Password", 6)(tt.value); got != tt.errMsg {
				t.Errorf("MinLength() = %q, want %q", got, tt.errMsg)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain address", value: "a@b.com"},
		{name: "surrounding whitespace", value: "  a@b.com "},
		{name: "empty", value: "", wantErr: true},
		{name: "missing at", value: "ab.com", wantErr: true},
		{name: "missing tld", value: "a@localhost", wantErr: true},
		{name: "display name", value: "Alice <a@b.com>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Email("Email")(tt.value)
			if tt.wantErr && got == "" {
				t.Errorf("Email(%q) expected error but got none", tt.value)
			}
			if !tt.wantErr && got != "" {
				t.Errorf("Email(%q) unexpected error: %v", tt.value, got)
			}
		})
	}
}

func TestShopifyDomain(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "store domain", value: "acme.myshopify.com"},
		{name: "mixed case", value: "Acme-Goods.MyShopify.com"},
		{name: "empty", value: "", wantErr: true},
		{name: "custom domain", value: "shop.acme.com", wantErr: true},
		{name: "with scheme", value: "https://acme.myshopify.com", wantErr: true},
		{name: "leading hyphen", value: "-acme.myshopify.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShopifyDomain("Shopify domain")(tt.value)
			if tt.wantErr && got == "" {
				t.Errorf("ShopifyDomain(%q) expected error but got none", tt.value)
			}
			if !tt.wantErr && got != "" {
				t.Errorf("ShopifyDomain(%q) unexpected error: %v", tt.value, got)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	v := Matches("Passwords do not match.", "secret1")
	if got := v("secret1"); got != "" {
		t.Errorf("Matches() unexpected error: %v", got)
	}
	if got := v("secret2"); got != "Passwords do not match." {
		t.Errorf("Matches() = %q, want mismatch message", got)
	}
}

func TestOneOf(t *testing.T) {
	options := []string{"CUSTOMERS", "PRODUCTS", "ORDERS"}
	tests := []struct {
		name   string
		value  string
		errMsg string
	}{
		{name: "exact case", value: "ORDERS"},
		{name: "different case", value: "orders"},
		{name: "whitespace trimmed", value: "  PRODUCTS  "},
		{name: "invalid option", value: "REFUNDS", errMsg: "Type must be one of: CUSTOMERS, PRODUCTS, ORDERS"},
		{name: "empty", value: "", errMsg: "Type must be one of: CUSTOMERS, PRODUCTS, ORDERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OneOf("Type", options)(tt.value); got != tt.errMsg {
				t.Errorf("OneOf() = %q, want %q", got, tt.errMsg)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	if got := Optional("Key", 5)(""); got != "" {
		t.Errorf("Optional() should allow empty, got %q", got)
	}
	if got := Optional("Key", 5)("abcdef"); got != "Key cannot exceed 5 characters." {
		t.Errorf("Optional() = %q", got)
	}
}

func TestFieldValidator_MultipleFieldsWithErrors(t *testing.T) {
	fv := New().
		Validate("name", "", Required("Name", 10)).
		Validate("email", "nope", Email("Email")).
		Validate("password", "secret1", MinLength("Password", 6))
	errs := fv.Errors()
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs["name"] != errNameRequired {
		t.Errorf("Expected %q, got %v", errNameRequired, errs["name"])
	}
	if fv.Valid() {
		t.Errorf("Valid() should be false")
	}
}

func TestFieldValidator_StopsAtFirstError(t *testing.T) {
	fv := New().Validate("name", "", Required("Name", 10), Optional("Name", 0))
	errs := fv.Errors()
	if len(errs) != 1 {
		t.Errorf("Expected 1 error, got %d", len(errs))
	}
	// Should stop at Required error, not reach Optional
	if errs["name"] != errNameRequired {
		t.Errorf("Expected %q, got %v", errNameRequired, errs["name"])
	}
}

func TestFieldValidator_EmptyErrors(t *testing.T) {
	fv := New()
	if len(fv.Errors()) != 0 || !fv.Valid() {
		t.Errorf("Expected empty errors map, got %v", fv.Errors())
	}
}

func TestFieldValidator_FieldErrors(t *testing.T) {
	fv := New().
		Validate("shopify_domain", "nope", ShopifyDomain("Shopify domain")).
		Validate("email", "", Email("Email")).
		Validate("name", "Ops", Required("Name", 10))

	errs := fv.FieldErrors()
	if len(errs) != 2 {
		t.Fatalf("Expected 2 field errors, got %d", len(errs))
	}
	if got := apperrors.GetField(errs[0]); got != "email" {
		t.Errorf("first field = %q, want email", got)
	}
	if got := apperrors.GetField(errs[1]); got != "shopify_domain" {
		t.Errorf("second field = %q, want shopify_domain", got)
	}
	if !apperrors.IsValidation(errs[0]) || errs[0].Message != "Email is required." {
		t.Errorf("unexpected error %v", errs[0])
	}
	if len(New().FieldErrors()) != 0 {
		t.Errorf("valid input should have no field errors")
	}
}
