package domain

import (
	"errors"
	"testing"
)

func TestPhotoStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to PhotoStatus
		want     bool
	}{
		{PhotoPending, PhotoApproved, true},
		{PhotoPending, PhotoRejected, true},
		{PhotoApproved, PhotoRejected, false},
		{PhotoRejected, PhotoApproved, false},
		{PhotoApproved, PhotoPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSafeFileName(t *testing.T) {
	cases := map[string]string{
		"IMG_0001.jpg":        "IMG_0001.jpg",
		"class photo (1).png": "class_photo__1_.png",
		"año-2024.jpeg":       "a_o-2024.jpeg",
		"../../etc/passwd":    ".._.._etc_passwd",
	}
	for in, want := range cases {
		if got := SafeFileName(in); got != want {
			t.Errorf("SafeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFolderName(t *testing.T) {
	if got := FolderName("West High"); got != "West High" {
		t.Errorf("got %q", got)
	}
	if got := FolderName("   "); got != UncategorizedFolder {
		t.Errorf("got %q", got)
	}
}

func TestPrincipal_Scope(t *testing.T) {
	admin := &Principal{Role: RoleAdmin, SchoolCode: "1000"}
	client := &Principal{Role: RoleClient, SchoolCode: "1000"}

	if admin.ScopedSchool() != "" {
		t.Errorf("admin should be unscoped")
	}
	if client.ScopedSchool() != "1000" {
		t.Errorf("client should be scoped to its school")
	}
	if !admin.HasRole(RoleAdmin) || admin.HasRole(RoleClient) {
		t.Errorf("unexpected HasRole result for admin")
	}
	var nobody *Principal
	if nobody.HasRole(RoleAdmin, RoleClient) || nobody.IsAdmin() {
		t.Errorf("nil principal must not match any role")
	}
}

func TestValidationError_IsErrValidation(t *testing.T) {
	err := Invalid("file is required")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is(err, ErrValidation)")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Reason != "file is required" {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
