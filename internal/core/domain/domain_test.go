package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestRole_Dashboard(t *testing.T) {
	cases := map[Role]string{
		RoleStudent:    "/student/dashboard",
		RoleEmployer:   "/employer/dashboard",
		RoleAdmin:      "/admin/dashboard",
		RoleSuperAdmin: "/superadmin/dashboard",
	}
	for role, want := range cases {
		got, ok := role.Dashboard()
		if !ok || got != want {
			t.Fatalf("%s: expected %s, got %s (ok=%v)", role, want, got, ok)
		}
	}
	if _, ok := Role("GUEST").Dashboard(); ok {
		t.Fatalf("unknown role should have no dashboard")
	}
}

func TestSession_Valid(t *testing.T) {
	var nilSession *Session
	if nilSession.Valid() {
		t.Fatalf("nil session must be invalid")
	}
	if (&Session{Token: "t"}).Valid() {
		t.Fatalf("token without role must be invalid")
	}
	if (&Session{Role: RoleAdmin}).Valid() {
		t.Fatalf("role without token must be invalid")
	}
	if !(&Session{Token: "t", Role: RoleAdmin}).Valid() {
		t.Fatalf("complete session must be valid")
	}
}

func TestAdminAccount_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want AdminAccount
	}{
		{"numeric userId", `{"userId":1,"fullName":"A","email":"a@x.com"}`, AdminAccount{ID: "1", FullName: "A", Email: "a@x.com"}},
		{"numeric id", `{"id":42,"fullName":"B","email":"b@x.com"}`, AdminAccount{ID: "42", FullName: "B", Email: "b@x.com"}},
		{"string id", `{"id":"abc","fullName":"C","email":"c@x.com"}`, AdminAccount{ID: "abc", FullName: "C", Email: "c@x.com"}},
		{"userId wins", `{"userId":7,"id":8,"fullName":"D","email":"d@x.com"}`, AdminAccount{ID: "7", FullName: "D", Email: "d@x.com"}},
		{"null userId", `{"userId":null,"id":9,"fullName":"E","email":"e@x.com"}`, AdminAccount{ID: "9", FullName: "E", Email: "e@x.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got AdminAccount
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestAdminQuota(t *testing.T) {
	if NewAdminQuota(2).Full() {
		t.Fatalf("2 of 3 should not be full")
	}
	if !NewAdminQuota(3).Full() {
		t.Fatalf("3 of 3 should be full")
	}
}

func TestFieldErrors_AddKeepsFirst(t *testing.T) {
	fe := FieldErrors{}
	fe.Add(FieldEmail, "first")
	fe.Add(FieldEmail, "second")
	fe.Add(FieldPassword, "")
	if fe.Get(FieldEmail) != "first" {
		t.Fatalf("expected first message to win, got %q", fe.Get(FieldEmail))
	}
	if _, ok := fe[FieldPassword]; ok {
		t.Fatalf("empty messages must not be recorded")
	}
}

func TestParseAPIError(t *testing.T) {
	e := ParseAPIError(400, []byte(`{"email":"Email is already registered.","message":"Registration failed."}`))
	if e.Fields.Get(FieldEmail) != "Email is already registered." {
		t.Fatalf("unexpected fields: %+v", e.Fields)
	}
	if e.Message != "Registration failed." {
		t.Fatalf("unexpected message: %q", e.Message)
	}

	e = ParseAPIError(400, []byte(`{"error":"Maximum of 3 admin accounts allowed."}`))
	if e.Message != "Maximum of 3 admin accounts allowed." || !e.Fields.Empty() {
		t.Fatalf("unexpected parse: %+v", e)
	}

	e = ParseAPIError(409, []byte("Email already in use\n"))
	if e.Message != "Email already in use" {
		t.Fatalf("expected plain text message, got %q", e.Message)
	}

	e = ParseAPIError(500, []byte(`"boom"`))
	if e.Message != "boom" {
		t.Fatalf("expected JSON string message, got %q", e.Message)
	}
}

func TestRequiresLogin(t *testing.T) {
	for _, err := range []error{ErrNoSession, ErrSessionExpired, ErrRoleDenied, fmt.Errorf("wrapped: %w", ErrSessionExpired)} {
		if !RequiresLogin(err) {
			t.Fatalf("expected %v to require login", err)
		}
	}
	if RequiresLogin(errors.New("other")) || RequiresLogin(ErrUpstreamUnavailable) {
		t.Fatalf("unrelated errors must not require login")
	}
}
